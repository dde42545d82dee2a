package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/lectureflow/lectureflow/internal/audio"
	"github.com/lectureflow/lectureflow/internal/chunk"
	"github.com/lectureflow/lectureflow/internal/config"
	"github.com/lectureflow/lectureflow/internal/logger"
	"github.com/lectureflow/lectureflow/internal/metrics"
	"github.com/lectureflow/lectureflow/internal/tts"
)

// Voicer runs the text-to-speech pipeline. Short texts go to the service
// in one request; long texts are split on sentence boundaries, converted
// chunk by chunk and concatenated into a single output file.
type Voicer struct {
	runner
	obs      observer
	service  tts.Synthesizer
	voice    string
	format   string
	maxChars int
	tempDir  string
	logger   logger.Logger
}

// NewVoicer builds the synthesis runner.
func NewVoicer(cfg *config.Config, service tts.Synthesizer, log logger.Logger, m *metrics.Metrics) *Voicer {
	maxChars := cfg.TTS.MaxChunkChars
	if maxChars <= 0 {
		maxChars = 4000
	}
	tempDir := cfg.Paths.Temp
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Voicer{
		obs:      observer{m: m, pipeline: "synthesis"},
		service:  service,
		voice:    cfg.TTS.Voice,
		format:   cfg.TTS.Format,
		maxChars: maxChars,
		tempDir:  tempDir,
		logger:   log,
	}
}

// Start launches a synthesis run in the background. An empty voice
// selects the configured default.
func (v *Voicer) Start(ctx context.Context, text, outputPath, voice string, onProgress ProgressFunc, onDone CompletionFunc) error {
	if err := v.begin(); err != nil {
		return err
	}
	v.obs.runStarted()
	if voice == "" {
		voice = v.voice
	}
	go v.run(ctx, text, outputPath, voice, onProgress, onDone)
	return nil
}

func (v *Voicer) run(ctx context.Context, text, outputPath, voice string, onProgress ProgressFunc, onDone CompletionFunc) {
	start := time.Now()
	defer v.recoverToFailure(onProgress, onDone)

	if text == "" {
		v.failRun(v.obs, onProgress, onDone, errors.New("text cannot be empty"), start)
		return
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		v.failRun(v.obs, onProgress, onDone, fmt.Errorf("creating output directory: %w", err), start)
		return
	}

	if utf8.RuneCountInString(text) <= v.maxChars {
		emitProgress(onProgress, 0.1)
		data, err := v.service.Synthesize(ctx, text, voice, v.format)
		if err == nil {
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				v.failRun(v.obs, onProgress, onDone, fmt.Errorf("writing output file: %w", err), start)
				return
			}
			emitProgress(onProgress, 1.0)
			v.completeRun(v.obs, onDone, outputPath, start)
			return
		}
		// A single request can still exceed the service's own limits,
		// so retry the same text through the chunked path.
		v.logger.Warn(ctx, "Direct conversion failed, falling back to chunking: %v", err)
	}

	v.runChunked(ctx, text, outputPath, voice, onProgress, onDone, start)
}

func (v *Voicer) runChunked(ctx context.Context, text, outputPath, voice string, onProgress ProgressFunc, onDone CompletionFunc, start time.Time) {
	units := chunk.PlanText(text, v.maxChars)
	v.obs.unitsPlanned(len(units))
	v.logger.Info(ctx, "Synthesizing in %d chunks of up to %d characters", len(units), v.maxChars)
	emitProgress(onProgress, 0.1)

	workDir, err := os.MkdirTemp(v.tempDir, "synth-*")
	if err != nil {
		v.failRun(v.obs, onProgress, onDone, fmt.Errorf("creating temp directory: %w", err), start)
		return
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			v.logger.Warn(ctx, "Could not remove temp directory %s: %v", workDir, err)
		}
	}()

	segments := make([]string, 0, len(units))
	for i, unit := range units {
		if v.isCancelled() {
			v.logger.Info(ctx, "Synthesis cancelled after %d of %d chunks", i, len(units))
			v.cancelRun(v.obs, onDone, start)
			return
		}

		data, err := v.service.Synthesize(ctx, unit, voice, v.format)
		if err != nil {
			v.logger.Warn(ctx, "Chunk %d failed, skipping: %v", i, err)
			v.obs.unitFailed()
			continue
		}

		segPath := filepath.Join(workDir, fmt.Sprintf("chunk_%d.%s", i, v.format))
		if err := os.WriteFile(segPath, data, 0o644); err != nil {
			v.logger.Warn(ctx, "Chunk %d failed, skipping: %v", i, err)
			v.obs.unitFailed()
			continue
		}
		segments = append(segments, segPath)
		v.obs.unitProcessed()

		emitProgress(onProgress, 0.1+float64(i+1)/float64(len(units))*0.7)
	}

	if len(segments) == 0 {
		v.failRun(v.obs, onProgress, onDone, errors.New("no audio segments were produced"), start)
		return
	}

	if err := v.combine(ctx, segments, outputPath); err != nil {
		v.failRun(v.obs, onProgress, onDone, err, start)
		return
	}

	emitProgress(onProgress, 1.0)
	v.completeRun(v.obs, onDone, outputPath, start)
}

// combine merges the per-chunk segment files into the final output. WAV
// segments are concatenated sample by sample; for other formats only the
// first segment is kept, since compressed containers cannot be joined by
// appending frames.
func (v *Voicer) combine(ctx context.Context, segments []string, outputPath string) error {
	if v.format == "wav" {
		if err := audio.Concat(segments, outputPath); err != nil {
			return fmt.Errorf("combining audio segments: %w", err)
		}
		return nil
	}

	v.logger.Warn(ctx, "Combining %s files is not supported, keeping only the first segment", v.format)
	return copyFile(segments[0], outputPath)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
