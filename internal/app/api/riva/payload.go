package riva

import (
	"encoding/json"
	"strings"

	"video2csv/internal/app/api/provider"
	apperrors "video2csv/internal/app/errors"
)

// FinalTranscriptMarker introduces the plain text transcript the client
// prints after the structured results.
const FinalTranscriptMarker = "Final transcript:"

// ExtractPayload locates the recognition results in raw client output. The
// JSON region spans the first '{' to the last '}'. When that region parses
// but holds no "results", the text is scanned for FinalTranscriptMarker
// lines instead.
func ExtractPayload(output string) (*provider.RawPayload, error) {
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start < 0 || end < start {
		return nil, apperrors.Wrap(apperrors.ErrParse, "no JSON object in client output")
	}

	region := output[start : end+1]
	var doc provider.Document
	if err := json.Unmarshal([]byte(region), &doc); err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrParse, "decode client JSON: %v", err)
	}

	if doc.Results != nil {
		return provider.NewJSONPayload(backendName, []byte(region)), nil
	}

	if text, ok := findFinalTranscript(output); ok {
		return provider.NewTextPayload(backendName, text), nil
	}
	return nil, apperrors.Wrap(apperrors.ErrParse, "client output has neither recognition results nor a final transcript")
}

// findFinalTranscript joins the text of every marker line, in order.
func findFinalTranscript(output string) (string, bool) {
	var parts []string
	found := false
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "#> ")
		if !strings.HasPrefix(line, FinalTranscriptMarker) {
			continue
		}
		found = true
		if text := strings.TrimSpace(strings.TrimPrefix(line, FinalTranscriptMarker)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), found
}
