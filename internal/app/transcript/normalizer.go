package transcript

import (
	"math"
	"strings"

	"github.com/samber/lo"
	"video2csv/internal/app/api/provider"
	apperrors "video2csv/internal/app/errors"
	"video2csv/internal/app/model"
)

// Normalize maps a backend payload onto the canonical Transcript. It looks at
// the payload shape only, never at which backend produced it:
//
//  1. a "segments" list of {start, text} gives one segment per entry
//  2. a "results[].alternatives[0]" structure gives one segment per result
//     with non-empty text, starting at the result's audioProcessed
//  3. with no segments, a non-empty full text gives one segment at zero
//  4. otherwise the result is ErrEmptyTranscript
//
// Normalize is pure; the same payload always yields an identical Transcript.
func Normalize(payload *provider.RawPayload) (*model.Transcript, error) {
	if payload == nil {
		return nil, apperrors.Wrap(apperrors.ErrParse, "nil payload")
	}

	switch payload.Kind {
	case provider.PayloadText:
		return fromFullText(string(payload.Body))
	case provider.PayloadJSON:
		doc, err := provider.DecodeDocument(payload.Body)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrParse, "decode %s payload: %v", payload.Backend, err)
		}
		return fromDocument(doc)
	default:
		return nil, apperrors.Wrapf(apperrors.ErrParse, "unknown payload kind %s", payload.Kind)
	}
}

func fromDocument(doc *provider.Document) (*model.Transcript, error) {
	var segments []model.Segment
	switch {
	case doc.Segments != nil:
		segments = fromVerboseSegments(doc.Segments)
	case doc.Results != nil:
		segments = fromStreamingResults(doc.Results)
	}

	if len(segments) > 0 {
		return &model.Transcript{FullText: joinText(segments), Segments: segments}, nil
	}
	return fromFullText(lo.FromPtr(doc.Text))
}

func fromVerboseSegments(entries []provider.VerboseSegment) []model.Segment {
	segments := lo.Map(entries, func(entry provider.VerboseSegment, _ int) model.Segment {
		return model.Segment{
			Start:      clampStart(entry.Start),
			Text:       strings.TrimSpace(entry.Text),
			Resolution: model.ResolutionCentiseconds,
		}
	})
	// An all-blank list carries no speech; let the full text decide.
	if lo.EveryBy(segments, func(s model.Segment) bool { return s.Text == "" }) {
		return nil
	}
	return segments
}

func fromStreamingResults(results []provider.StreamingResult) []model.Segment {
	return lo.FilterMap(results, func(result provider.StreamingResult, _ int) (model.Segment, bool) {
		if len(result.Alternatives) == 0 {
			return model.Segment{}, false
		}
		alt := result.Alternatives[0]
		text := strings.TrimSpace(alt.Transcript)
		if text == "" {
			return model.Segment{}, false
		}

		segment := model.Segment{
			Start:      clampStart(result.AudioProcessed),
			Text:       text,
			Resolution: model.ResolutionSeconds,
		}
		if len(alt.Words) > 0 {
			segment.SpeakerTag = lo.ToPtr(alt.Words[0].SpeakerTag)
		}
		return segment, true
	})
}

func fromFullText(text string) (*model.Transcript, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.ErrEmptyTranscript
	}
	return &model.Transcript{
		FullText: text,
		Segments: []model.Segment{{Start: 0, Text: text, Resolution: model.ResolutionSeconds}},
	}, nil
}

func joinText(segments []model.Segment) string {
	texts := lo.FilterMap(segments, func(s model.Segment, _ int) (string, bool) {
		return s.Text, s.Text != ""
	})
	return strings.Join(texts, " ")
}

func clampStart(start float64) float64 {
	if start < 0 || math.IsNaN(start) {
		return 0
	}
	return start
}
