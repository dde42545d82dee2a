package stt

import "context"

// Transcriber defines the interface for the external speech-to-text service
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, opts Options) (string, error)
}
