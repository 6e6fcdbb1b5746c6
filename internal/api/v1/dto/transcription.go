package dto

import (
	"video2csv/internal/app/model"
)

// TranscriptionResponse is returned after a successful upload
type TranscriptionResponse struct {
	RunID         string            `json:"run_id"`
	Backend       string            `json:"backend"`
	OutputName    string            `json:"output_name"`
	DownloadURL   string            `json:"download_url"`
	AudioDuration float64           `json:"audio_duration_sec"`
	FullText      string            `json:"full_text"`
	Rows          []model.ExportRow `json:"rows"`
}
