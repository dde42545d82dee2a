package stitch

import (
	"strings"
	"testing"
)

func TestJoinDegenerate(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      string
	}{
		{"empty input", nil, ""},
		{"empty slice", []string{}, ""},
		{"single fragment unchanged", []string{"the entire lecture transcript"}, "the entire lecture transcript"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Join(tt.fragments); got != tt.want {
				t.Errorf("Join(%v) = %q, want %q", tt.fragments, got, tt.want)
			}
		})
	}
}

func TestJoinCollapsesOverlap(t *testing.T) {
	running := "and then we discussed how the quick brown fox"
	next := "the quick brown fox jumps over the lazy dog"

	got := Join([]string{running, next})
	want := "and then we discussed how the quick brown fox jumps over the lazy dog"

	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
	if strings.Count(got, "the quick brown fox") != 1 {
		t.Errorf("overlap duplicated: %q", got)
	}
}

func TestJoinExactBoundaryRepeat(t *testing.T) {
	running := "lecture one covered sorting algorithms briefly"
	next := "sorting algorithms briefly and then in depth"

	got := Join([]string{running, next})
	want := "lecture one covered sorting algorithms briefly and then in depth"

	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestJoinNextContainedInTail(t *testing.T) {
	// The whole next fragment already appears inside the running tail:
	// the matched suffix is dropped and the fragment is kept whole.
	running := "alpha beta gamma delta epsilon"
	next := "gamma delta"

	got := Join([]string{running, next})
	want := "alpha beta gamma delta"

	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestJoinNoOverlapFallsBackToSpace(t *testing.T) {
	a := "completely unrelated opening words"
	b := "zxqv different closing phrase"

	if got := Join([]string{a, b}); got != a+" "+b {
		t.Errorf("Join() = %q, want %q", got, a+" "+b)
	}
}

func TestJoinShortOverlapNotTrusted(t *testing.T) {
	// Shared substrings of 10 or fewer characters must never splice;
	// common short words would collide constantly.
	a := "the speaker paused and said"
	b := "and said something entirely new"

	// "and said" is 8 chars: below the trust threshold.
	if got := Join([]string{a, b}); got != a+" "+b {
		t.Errorf("Join() = %q, want space join", got)
	}
}

func TestJoinLongestOverlapWins(t *testing.T) {
	// Both a long and a short overlap candidate exist; the search runs
	// longest-to-shortest so the long one is collapsed.
	a := "we repeat this exact phrase often, this exact phrase often"
	b := "this exact phrase often appears again"

	got := Join([]string{a, b})
	want := "we repeat this exact phrase often, this exact phrase often appears again"
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestJoinMultipleFragments(t *testing.T) {
	fragments := []string{
		"first part of the lecture ends with shared boundary text",
		"shared boundary text continues into the second part",
		"totally disjoint third part",
	}

	got := Join(fragments)
	want := "first part of the lecture ends with shared boundary text continues into the second part totally disjoint third part"
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestJoinShortRunningTotal(t *testing.T) {
	// A running total of 10 chars or fewer leaves no candidate lengths
	// to search, so the fallback applies.
	if got := Join([]string{"short", "another fragment"}); got != "short another fragment" {
		t.Errorf("Join() = %q", got)
	}
}

func TestJoinNonASCII(t *testing.T) {
	a := "přednáška pokračovala výkladem o řazení čísel"
	b := "o řazení čísel a jejich porovnávání"

	got := Join([]string{a, b})
	want := "přednáška pokračovala výkladem o řazení čísel a jejich porovnávání"
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}
