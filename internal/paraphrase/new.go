package paraphrase

import (
	"fmt"
	"sync/atomic"

	"github.com/lectureflow/lectureflow/internal/logger"
)

type implParaphraser struct {
	apiKeys []string
	// rotations counts key rotations monotonically; the active key is
	// rotations mod len(apiKeys). Atomic because one client instance is
	// shared across concurrent watch-folder jobs.
	rotations atomic.Int64
	logger    logger.Logger
	model     string
}

// New creates a Paraphraser that rotates through the supplied API keys
// when the model reports rate limiting or quota exhaustion.
func New(apiKeys []string, model string, log logger.Logger) (Paraphraser, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("at least one paraphrasing API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &implParaphraser{
		apiKeys: apiKeys,
		logger:  log,
		model:   model,
	}, nil
}
