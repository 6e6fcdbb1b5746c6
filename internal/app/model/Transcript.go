package model

// Resolution is the time granularity a backend reports segment starts in.
type Resolution int

const (
	// ResolutionSeconds rounds starts to the nearest whole second.
	ResolutionSeconds Resolution = iota
	// ResolutionCentiseconds keeps two decimal places.
	ResolutionCentiseconds
)

// Segment is one timestamped unit of transcribed speech.
type Segment struct {
	Start float64 `json:"start"`
	Text  string  `json:"text"`
	// SpeakerTag is the 0-based diarization tag reported by the backend, nil
	// when the backend does not diarize.
	SpeakerTag *int       `json:"speaker_tag,omitempty"`
	Resolution Resolution `json:"resolution"`
}

// Transcript is the canonical, backend independent transcription result.
// Segments are kept in backend emission order.
type Transcript struct {
	FullText string    `json:"full_text"`
	Segments []Segment `json:"segments"`
}

// ExportRow is one line of the exported table.
type ExportRow struct {
	Seconds string `json:"seconds"`
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}
