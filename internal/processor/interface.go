package processor

import "context"

// Processor defines the interface for end-to-end audio file processing
type Processor interface {
	Process(ctx context.Context, audioPath string) error
}
