package model

import "io"

// MediaInput is an uploaded video container. Reader is consumed once.
type MediaInput struct {
	Reader   io.Reader
	Filename string
}
