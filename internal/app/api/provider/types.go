package provider

import (
	"encoding/json"
)

// PayloadKind tags the shape of a RawPayload body.
type PayloadKind int

const (
	// PayloadJSON holds a JSON document, either a verbose segment list or a
	// streaming recognition result set.
	PayloadJSON PayloadKind = iota
	// PayloadText holds a bare final transcript recovered from text output.
	PayloadText
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadJSON:
		return "json"
	case PayloadText:
		return "text"
	default:
		return "unknown"
	}
}

// RawPayload is what a backend hands to the normalizer. Backend is kept for
// logging only; normalization looks at Kind and Body.
type RawPayload struct {
	Kind    PayloadKind
	Backend string
	Body    []byte
}

// NewJSONPayload wraps a JSON document.
func NewJSONPayload(backend string, body []byte) *RawPayload {
	return &RawPayload{Kind: PayloadJSON, Backend: backend, Body: body}
}

// NewTextPayload wraps a plain transcript string.
func NewTextPayload(backend string, text string) *RawPayload {
	return &RawPayload{Kind: PayloadText, Backend: backend, Body: []byte(text)}
}

// Document is the union of every JSON shape the backends produce. Absent keys
// decode to nil, which is how the normalizer tells shapes apart.
type Document struct {
	Text     *string           `json:"text,omitempty"`
	Segments []VerboseSegment  `json:"segments,omitempty"`
	Results  []StreamingResult `json:"results,omitempty"`
}

// VerboseSegment is an entry of a verbose_json "segments" array.
type VerboseSegment struct {
	ID    int     `json:"id,omitempty"`
	Start float64 `json:"start"`
	End   float64 `json:"end,omitempty"`
	Text  string  `json:"text"`
}

// StreamingResult is one entry of the streaming recognizer "results" array.
type StreamingResult struct {
	Alternatives   []Alternative `json:"alternatives"`
	IsFinal        bool          `json:"isFinal,omitempty"`
	ChannelTag     int           `json:"channelTag,omitempty"`
	AudioProcessed float64       `json:"audioProcessed,omitempty"`
}

// Alternative is one recognition hypothesis of a streaming result.
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence,omitempty"`
	Words      []Word  `json:"words,omitempty"`
}

// Word carries word level timing and the diarization tag.
type Word struct {
	Word       string  `json:"word,omitempty"`
	StartTime  float64 `json:"startTime,omitempty"`
	EndTime    float64 `json:"endTime,omitempty"`
	SpeakerTag int     `json:"speakerTag,omitempty"`
}

// DecodeDocument parses a JSON payload body.
func DecodeDocument(body []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
