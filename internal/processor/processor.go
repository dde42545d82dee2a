package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lectureflow/lectureflow/internal/paraphrase"
	"github.com/lectureflow/lectureflow/internal/pipeline"
	"github.com/lectureflow/lectureflow/internal/stt"
)

// Process runs one audio file through the whole pipeline: transcription,
// optional paraphrasing, and export of the result as docx and plain text
// into the output folder.
func (p *implProcessor) Process(ctx context.Context, audioPath string) error {
	startTime := time.Now()
	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting audio processing: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Transcribe
	transcript, err := p.transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	if transcript == "" {
		return errors.New("transcription produced no text")
	}

	// Step 2: Paraphrase when a rewriter is configured
	text := transcript
	if p.rewriter != nil {
		rewritten, err := p.paraphrase(ctx, transcript)
		if err != nil {
			p.logger.Warn(ctx, "Paraphrasing failed, exporting raw transcript: %v", err)
		} else {
			text = rewritten
		}
	}

	// Step 3: Export docx and plain text with the original base name
	docxPath := filepath.Join(p.cfg.Paths.Output, baseName+".docx")
	txtPath := filepath.Join(p.cfg.Paths.Output, baseName+".txt")

	if err := p.writer.Transcript(baseName, text, docxPath); err != nil {
		return fmt.Errorf("export docx: %w", err)
	}
	if err := p.writer.Text(text, txtPath); err != nil {
		p.logger.Warn(ctx, "Failed to write plain text copy: %v", err)
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Output document: %s", docxPath)
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return nil
}

// transcribe drives a transcription run to completion. Each call builds
// its own runner so concurrent watch-folder jobs never contend for the
// single-run lock.
func (p *implProcessor) transcribe(ctx context.Context, audioPath string) (string, error) {
	runner := pipeline.NewTranscriber(p.cfg, p.transcriber, p.decoder, p.logger, p.metrics)
	return p.await(ctx, runner, func(onProgress pipeline.ProgressFunc, onDone pipeline.CompletionFunc) error {
		return runner.Start(ctx, audioPath, stt.Overrides{}, false, onProgress, onDone)
	})
}

// paraphrase drives a rewriting run to completion.
func (p *implProcessor) paraphrase(ctx context.Context, transcript string) (string, error) {
	runner := pipeline.NewRewriter(p.cfg, p.rewriter, p.logger, p.metrics)
	opts := paraphrase.Options{Style: p.cfg.Paraphrase.Style, Language: p.cfg.Paraphrase.Language}
	return p.await(ctx, runner, func(onProgress pipeline.ProgressFunc, onDone pipeline.CompletionFunc) error {
		return runner.Start(ctx, transcript, opts, onProgress, onDone)
	})
}

// canceller is the slice of a pipeline runner the await helper needs.
type canceller interface {
	Cancel()
}

// await starts an asynchronous run and blocks until its completion
// callback fires, translating the callback protocol back into a plain
// result/error pair. Context cancellation is forwarded to the runner.
func (p *implProcessor) await(ctx context.Context, runner canceller, start func(pipeline.ProgressFunc, pipeline.CompletionFunc) error) (string, error) {
	done := make(chan struct{})
	var result string

	onProgress := func(fraction float64) {
		p.logger.Debug(ctx, "Progress: %.0f%%", fraction*100)
	}
	onDone := func(res string, elapsed time.Duration) {
		result = res
		close(done)
	}

	if err := start(onProgress, onDone); err != nil {
		return "", err
	}

	select {
	case <-done:
	case <-ctx.Done():
		runner.Cancel()
		<-done
		return "", ctx.Err()
	}

	if strings.HasPrefix(result, "Error: ") {
		return "", errors.New(strings.TrimPrefix(result, "Error: "))
	}
	return result, nil
}
