package tts

import "context"

// Synthesizer defines the interface for the external text-to-speech service
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice, format string) ([]byte, error)
}
