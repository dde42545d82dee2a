package tts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lectureflow/lectureflow/internal/logger"
)

// Config contains the speech-synthesis client configuration
type Config struct {
	Endpoint string
	Username string
	Password string
}

type implSynthesizer struct {
	cfg        Config
	httpClient *http.Client
	logger     logger.Logger
}

// New creates a Synthesizer backed by the remote synthesis endpoint.
func New(cfg Config, log logger.Logger) (Synthesizer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("synthesis endpoint is required")
	}
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("synthesis credentials are required")
	}

	return &implSynthesizer{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     log,
	}, nil
}

// Synthesize converts one text unit to audio bytes in the requested
// container format.
func (s *implSynthesizer) Synthesize(ctx context.Context, text, voice, format string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	engine, err := resolveVoice(voice)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("engine", engine)
	form.Set("format", format)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.cfg.Username, s.cfg.Password)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("synthesis API returned HTTP %d: %s", resp.StatusCode, body)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio response: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis API returned no audio")
	}

	return audio, nil
}
