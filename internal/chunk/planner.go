package chunk

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Policy controls whether and how an input is split into bounded units.
type Policy struct {
	SizeThresholdMB float64       // audio: file size above which chunking activates
	MaxUnitDuration time.Duration // audio: upper bound per unit
	MaxUnitChars    int           // text: upper bound per unit
	Overlap         time.Duration // audio: trailing overlap carried into the next unit
	Force           bool          // bypass the threshold check
}

// AudioUnit is one bounded time range within a decoded recording.
// For every unit after the first, Start reaches back into the previous
// unit's tail by the configured overlap so context survives the split.
type AudioUnit struct {
	Index int
	Start time.Duration
	End   time.Duration
}

// ShouldChunkAudio applies the chunking decision rule for audio inputs:
// chunk when the file size exceeds the threshold or chunking is forced,
// except that a large file whose decoded duration fits inside a single
// unit is not split (size alone over-triggers for high-bitrate short
// clips). When the duration could not be determined the size decision
// stands.
func ShouldChunkAudio(fileSizeMB float64, duration time.Duration, durationKnown bool, p Policy) bool {
	if !p.Force && fileSizeMB <= p.SizeThresholdMB {
		return false
	}
	if durationKnown && duration < p.MaxUnitDuration && !p.Force {
		return false
	}
	return true
}

// PlanAudio walks the total duration in fixed strides of MaxUnitDuration.
// The final unit's end is clamped to the total duration.
func PlanAudio(total time.Duration, p Policy) []AudioUnit {
	var units []AudioUnit

	for pos := time.Duration(0); pos < total; pos += p.MaxUnitDuration {
		start := pos
		if pos > 0 {
			start = pos - p.Overlap
			if start < 0 {
				start = 0
			}
		}

		end := pos + p.MaxUnitDuration
		if end > total {
			end = total
		}

		units = append(units, AudioUnit{Index: len(units), Start: start, End: end})
	}

	return units
}

// PlanText splits text on sentence boundaries and greedily packs
// consecutive sentences into units of at most maxChars characters.
// A single sentence longer than maxChars becomes its own oversized unit;
// breaking mid-sentence would cost more than the overflow does.
func PlanText(text string, maxChars int) []string {
	sentences := strings.Split(text, ". ")

	var units []string
	var current string

	for _, sentence := range sentences {
		if current == "" {
			current = sentence
			continue
		}

		// +2 accounts for the ". " joiner consumed by the split
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(sentence)+2 > maxChars {
			units = append(units, closeUnit(current))
			current = sentence
		} else {
			current += ". " + sentence
		}
	}

	if current != "" {
		units = append(units, closeUnit(current))
	}

	return units
}

// closeUnit re-appends the trailing period consumed by the delimiter
// split. The text's final sentence keeps its own period, so the last
// unit ends with a doubled one.
func closeUnit(unit string) string {
	return unit + "."
}
