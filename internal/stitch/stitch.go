// Package stitch recombines independently transcribed text fragments
// into one continuous transcript by detecting and collapsing the content
// duplicated across unit boundaries by the overlap window.
package stitch

import (
	"strings"
	"unicode/utf8"
)

const (
	// minOverlapChars is the exclusive lower bound of the overlap search.
	// Overlaps of 10 characters or fewer are never trusted; common short
	// words produce too many false positives at that length.
	minOverlapChars = 10

	// maxOverlapChars bounds how far back into the running result the
	// search looks for duplicated boundary content.
	maxOverlapChars = 100
)

// Join combines ordered fragments into one text. Boundary duplication is
// detected heuristically: candidate overlap lengths are searched from
// longest to shortest and the first match wins. Fragments sharing no
// detectable overlap are joined with a single space.
//
// The detection is fuzzy by design. A missed overlap leaves a duplicated
// phrase and a spurious short match can drop one; both are accepted
// failure modes of the heuristic.
func Join(fragments []string) string {
	if len(fragments) == 0 {
		return ""
	}
	if len(fragments) == 1 {
		return fragments[0]
	}

	result := fragments[0]
	for _, next := range fragments[1:] {
		result = merge(result, next)
	}

	return result
}

// merge splices next onto running, collapsing duplicated boundary content.
// Operates on runes; transcripts are not ASCII.
func merge(running, next string) string {
	head := []rune(running)
	tail := []rune(next)

	maxLen := maxOverlapChars
	if len(head) < maxLen {
		maxLen = len(head)
	}

	for overlap := maxLen; overlap > minOverlapChars; overlap-- {
		endOfPrev := string(head[len(head)-overlap:])
		startOfCurr := string(tail[:min(overlap, len(tail))])

		if pos := strings.Index(startOfCurr, endOfPrev); pos >= 0 {
			// The next fragment's head contains the running tail plus
			// some prefix before it; splice past the duplicated span.
			runePos := utf8.RuneCountInString(startOfCurr[:pos])
			return running + string(tail[overlap-runePos:])
		}
		if pos := strings.Index(endOfPrev, startOfCurr); pos >= 0 {
			// The running tail contains the next fragment's head;
			// drop the matched suffix and append the full fragment.
			runePos := utf8.RuneCountInString(endOfPrev[:pos])
			return string(head[:len(head)-overlap+runePos]) + next
		}
	}

	return running + " " + next
}
