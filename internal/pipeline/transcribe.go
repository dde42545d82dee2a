package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/lectureflow/lectureflow/internal/audio"
	"github.com/lectureflow/lectureflow/internal/chunk"
	"github.com/lectureflow/lectureflow/internal/config"
	"github.com/lectureflow/lectureflow/internal/logger"
	"github.com/lectureflow/lectureflow/internal/metrics"
	"github.com/lectureflow/lectureflow/internal/stitch"
	"github.com/lectureflow/lectureflow/internal/stt"
)

// Transcriber runs the speech-to-text pipeline on a single input file,
// splitting long recordings into overlapping chunks and stitching the
// per-chunk transcripts back into one text.
type Transcriber struct {
	runner
	obs      observer
	service  stt.Transcriber
	decoder  audio.Decoder
	policy   chunk.Policy
	defaults stt.Options
	tempDir  string
	logger   logger.Logger
}

// NewTranscriber builds the transcription runner. The metrics handle may
// be nil to disable instrumentation.
func NewTranscriber(cfg *config.Config, service stt.Transcriber, decoder audio.Decoder, log logger.Logger, m *metrics.Metrics) *Transcriber {
	defaults := stt.DefaultOptions()
	if cfg.STT.Model != "" {
		defaults.Model = cfg.STT.Model
	}
	if cfg.STT.Language != "" {
		defaults.Language = cfg.STT.Language
	}
	if cfg.STT.TimeoutSeconds > 0 {
		defaults.Timeout = time.Duration(cfg.STT.TimeoutSeconds) * time.Second
	}

	tempDir := cfg.Paths.Temp
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	return &Transcriber{
		obs:     observer{m: m, pipeline: "transcription"},
		service: service,
		decoder: decoder,
		policy: chunk.Policy{
			SizeThresholdMB: cfg.Chunking.SizeThresholdMB,
			MaxUnitDuration: time.Duration(cfg.Chunking.MaxChunkMinutes) * time.Minute,
			Overlap:         time.Duration(cfg.Chunking.OverlapMs) * time.Millisecond,
		},
		defaults: defaults,
		tempDir:  tempDir,
		logger:   log,
	}
}

// Start launches a transcription run in the background. It returns
// ErrRunInProgress when a run is already active; all further outcomes
// are delivered through the callbacks.
func (t *Transcriber) Start(ctx context.Context, filePath string, overrides stt.Overrides, force bool, onProgress ProgressFunc, onDone CompletionFunc) error {
	if err := t.begin(); err != nil {
		return err
	}
	t.obs.runStarted()
	go t.run(ctx, filePath, overrides, force, onProgress, onDone)
	return nil
}

func (t *Transcriber) run(ctx context.Context, filePath string, overrides stt.Overrides, force bool, onProgress ProgressFunc, onDone CompletionFunc) {
	start := time.Now()
	defer t.recoverToFailure(onProgress, onDone)

	opts := t.defaults.Apply(overrides)

	info, err := os.Stat(filePath)
	if err != nil {
		t.failRun(t.obs, onProgress, onDone, fmt.Errorf("file not found: %s", filePath), start)
		return
	}
	sizeMB := float64(info.Size()) / (1024 * 1024)

	policy := t.policy
	policy.Force = force

	if policy.Force || sizeMB > policy.SizeThresholdMB {
		// The size check alone over-triggers for short high-bitrate
		// files, so confirm against the decoded duration.
		emitProgress(onProgress, 0.05)
		buf, decodeErr := t.decoder.DecodeFile(ctx, filePath)
		if decodeErr != nil {
			t.failRun(t.obs, onProgress, onDone, fmt.Errorf("decoding audio for chunked processing: %w", decodeErr), start)
			return
		}
		if chunk.ShouldChunkAudio(sizeMB, buf.Duration(), true, policy) {
			t.runChunked(ctx, buf, policy, opts, onProgress, onDone, start)
			return
		}
		t.logger.Info(ctx, "File %s is %.1f MB but only %s long, sending whole", filePath, sizeMB, buf.Duration())
	}

	t.runSingle(ctx, filePath, opts, onProgress, onDone, start)
}

func (t *Transcriber) runChunked(ctx context.Context, buf *audio.Buffer, policy chunk.Policy, opts stt.Options, onProgress ProgressFunc, onDone CompletionFunc, start time.Time) {
	units := chunk.PlanAudio(buf.Duration(), policy)
	t.obs.unitsPlanned(len(units))
	t.logger.Info(ctx, "Transcribing in %d chunks of up to %s", len(units), policy.MaxUnitDuration)

	runID := uuid.NewString()
	texts := make([]string, 0, len(units))

	for i, unit := range units {
		if t.isCancelled() {
			t.logger.Info(ctx, "Transcription cancelled after %d of %d chunks", i, len(units))
			t.cancelRun(t.obs, onDone, start)
			return
		}
		if i > 0 {
			// the 0.05 decode signal already covers the first unit's start
			emitProgress(onProgress, float64(i)/float64(len(units))*0.9)
		}

		text, err := t.transcribeUnit(ctx, buf, unit, runID, opts)
		if err != nil {
			t.logger.Warn(ctx, "Chunk %d failed, skipping: %v", unit.Index, err)
			t.obs.unitFailed()
			continue
		}
		texts = append(texts, text)
		t.obs.unitProcessed()
	}

	result := stitch.Join(texts)
	emitProgress(onProgress, 1.0)
	t.completeRun(t.obs, onDone, result, start)
}

// transcribeUnit exports one chunk to a temp WAV file, sends it to the
// service and removes the file before returning.
func (t *Transcriber) transcribeUnit(ctx context.Context, buf *audio.Buffer, unit chunk.AudioUnit, runID string, opts stt.Options) (string, error) {
	segment := buf.Slice(unit.Start, unit.End)

	path := filepath.Join(t.tempDir, fmt.Sprintf("%s_chunk_%d.wav", runID, unit.Index))
	if err := audio.WriteWAV(path, segment); err != nil {
		return "", fmt.Errorf("writing chunk %d: %w", unit.Index, err)
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			t.logger.Warn(ctx, "Could not remove temp file %s: %v", path, err)
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading chunk %d: %w", unit.Index, err)
	}
	return t.service.Transcribe(ctx, data, opts)
}

func (t *Transcriber) runSingle(ctx context.Context, filePath string, opts stt.Options, onProgress ProgressFunc, onDone CompletionFunc, start time.Time) {
	emitProgress(onProgress, 0.1)

	data, err := os.ReadFile(filePath)
	if err != nil {
		t.failRun(t.obs, onProgress, onDone, fmt.Errorf("reading audio file: %w", err), start)
		return
	}

	text, err := t.service.Transcribe(ctx, data, opts)
	if err != nil {
		t.failRun(t.obs, onProgress, onDone, err, start)
		return
	}

	emitProgress(onProgress, 1.0)
	t.completeRun(t.obs, onDone, text, start)
}
