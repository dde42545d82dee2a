package paraphrase

import (
	"strings"
	"sync"
	"testing"

	"github.com/lectureflow/lectureflow/internal/logger"
)

func TestNewRequiresKeys(t *testing.T) {
	if _, err := New(nil, "", logger.New("error")); err == nil {
		t.Error("New() without API keys should return error")
	}
}

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name         string
		opts         Options
		wantLanguage string
		wantFragment string
	}{
		{
			name:         "czech standard",
			opts:         Options{Style: "standard", Language: "cs"},
			wantLanguage: "Čeština",
			wantFragment: "Maintain a balanced tone",
		},
		{
			name:         "english formal",
			opts:         Options{Style: "formal", Language: "en"},
			wantLanguage: "Angličtina",
			wantFragment: "Use formal language",
		},
		{
			name:         "unknown style falls back to standard",
			opts:         Options{Style: "poetic", Language: "cs"},
			wantLanguage: "Čeština",
			wantFragment: "Maintain a balanced tone",
		},
		{
			name:         "unknown language falls back to czech",
			opts:         Options{Style: "simple", Language: "xx"},
			wantLanguage: "Čeština",
			wantFragment: "Simplify the language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := buildPrompt("original lecture text", tt.opts)

			if !strings.Contains(prompt, tt.wantLanguage) {
				t.Errorf("prompt missing language %q: %s", tt.wantLanguage, prompt)
			}
			if !strings.Contains(prompt, tt.wantFragment) {
				t.Errorf("prompt missing style instruction %q: %s", tt.wantFragment, prompt)
			}
			if !strings.Contains(prompt, "original lecture text") {
				t.Errorf("prompt missing source text: %s", prompt)
			}
		})
	}
}

func TestKeyRotation(t *testing.T) {
	p := &implParaphraser{apiKeys: []string{"a", "b", "c"}, logger: logger.New("error")}

	if p.keyIndex() != 0 {
		t.Fatalf("keyIndex() = %d, want 0", p.keyIndex())
	}
	p.rotateKey()
	p.rotateKey()
	if p.keyIndex() != 2 {
		t.Errorf("keyIndex() = %d, want 2", p.keyIndex())
	}
	p.rotateKey()
	if p.keyIndex() != 0 {
		t.Errorf("keyIndex() = %d, want wrap to 0", p.keyIndex())
	}
}

// Concurrent watch-folder jobs share one client; rotation must stay
// race-free and always resolve to a valid key.
func TestKeyRotationConcurrent(t *testing.T) {
	p := &implParaphraser{apiKeys: []string{"a", "b", "c"}, logger: logger.New("error")}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 250 {
				idx := p.keyIndex()
				if idx < 0 || idx >= len(p.apiKeys) {
					t.Errorf("keyIndex() = %d, out of range", idx)
					return
				}
				_ = p.apiKeys[idx]
				p.rotateKey()
			}
		}()
	}
	wg.Wait()

	if got := p.rotations.Load(); got != 1000 {
		t.Errorf("rotations = %d, want 1000", got)
	}
	if p.keyIndex() != 1000%3 {
		t.Errorf("keyIndex() = %d, want %d", p.keyIndex(), 1000%3)
	}
}

func TestAvailableStyles(t *testing.T) {
	styles := AvailableStyles()
	if len(styles) != 5 {
		t.Fatalf("got %d styles, want 5", len(styles))
	}
	for _, s := range styles {
		if _, ok := styleInstructions[s.Code]; !ok {
			t.Errorf("style %q has no prompt instruction", s.Code)
		}
	}
}
