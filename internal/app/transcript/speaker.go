package transcript

import (
	"fmt"
	"math"
	"strconv"

	"video2csv/internal/app/model"
)

// MaxSyntheticSpeakers is the ceiling of the cyclic label fallback.
const MaxSyntheticSpeakers = 5

// SpeakerLabel returns the display label of the segment at index. A backend
// diarization tag is used when present (0-based, shown 1-based). Without one
// the label cycles through MaxSyntheticSpeakers by position; this is a display
// convenience, no speaker inference is involved.
func SpeakerLabel(segment model.Segment, index int) string {
	if segment.SpeakerTag != nil && *segment.SpeakerTag >= 0 {
		return fmt.Sprintf("Speaker %d", *segment.SpeakerTag+1)
	}
	return fmt.Sprintf("Speaker %d", index%MaxSyntheticSpeakers+1)
}

// FormatSeconds renders a start time at the segment's resolution: two
// decimals, or whole seconds rounded half away from zero.
func FormatSeconds(segment model.Segment) string {
	switch segment.Resolution {
	case model.ResolutionCentiseconds:
		return strconv.FormatFloat(segment.Start, 'f', 2, 64)
	default:
		return strconv.FormatFloat(math.Round(segment.Start), 'f', 0, 64)
	}
}
