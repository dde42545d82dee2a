package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// transcriptionResponse mirrors the relevant subset of the service's
// JSON response envelope.
type transcriptionResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe submits audio bytes for pre-recorded transcription and
// returns the flat transcript of the first channel. A response missing
// the expected result structure yields an empty transcript, not an error.
func (t *implTranscriber) Transcribe(ctx context.Context, audio []byte, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	endpoint, err := t.buildURL(opts)
	if err != nil {
		return "", fmt.Errorf("build request URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+t.cfg.APIKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("transcription API returned HTTP %d: %s", resp.StatusCode, body)
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parse response JSON: %w", err)
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}

	return parsed.Results.Channels[0].Alternatives[0].Transcript, nil
}

func (t *implTranscriber) buildURL(opts Options) (string, error) {
	u, err := url.Parse(t.cfg.BaseURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("model", opts.Model)
	q.Set("language", opts.Language)
	q.Set("punctuate", strconv.FormatBool(opts.Punctuate))
	q.Set("diarize", strconv.FormatBool(opts.Diarize))
	q.Set("smart_format", strconv.FormatBool(opts.SmartFormat))
	q.Set("utterances", strconv.FormatBool(opts.Utterances))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
