package paraphrase

import "context"

// Paraphraser defines the interface for the external text rewriting service
type Paraphraser interface {
	Paraphrase(ctx context.Context, text string, opts Options) (string, error)
}

// Options select the rewriting style and target language for one call.
type Options struct {
	Style    string
	Language string
}
