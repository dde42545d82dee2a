package stt

import (
	"fmt"
	"net/http"

	"github.com/lectureflow/lectureflow/internal/logger"
)

// Config contains the speech-to-text client configuration
type Config struct {
	APIKey  string
	BaseURL string
}

type implTranscriber struct {
	cfg        Config
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Transcriber backed by the remote transcription API.
// A missing API key is a configuration error and fails construction.
func New(cfg Config, log logger.Logger) (Transcriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("transcription API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepgram.com/v1/listen"
	}

	return &implTranscriber{
		cfg: cfg,
		// Per-request deadlines come from Options.Timeout via context.
		httpClient: &http.Client{},
		logger:     log,
	}, nil
}
