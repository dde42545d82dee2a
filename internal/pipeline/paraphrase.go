package pipeline

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lectureflow/lectureflow/internal/chunk"
	"github.com/lectureflow/lectureflow/internal/config"
	"github.com/lectureflow/lectureflow/internal/logger"
	"github.com/lectureflow/lectureflow/internal/metrics"
	"github.com/lectureflow/lectureflow/internal/paraphrase"
)

// Rewriter runs the paraphrasing pipeline, splitting long transcripts on
// sentence boundaries and rewriting each piece through the language
// model. Chunk results are joined with spaces; unlike transcription the
// pieces never overlap, so no stitching is needed.
type Rewriter struct {
	runner
	obs      observer
	service  paraphrase.Paraphraser
	maxChars int
	logger   logger.Logger
}

// NewRewriter builds the paraphrasing runner.
func NewRewriter(cfg *config.Config, service paraphrase.Paraphraser, log logger.Logger, m *metrics.Metrics) *Rewriter {
	maxChars := cfg.Paraphrase.MaxChunkChars
	if maxChars <= 0 {
		maxChars = 4000
	}
	return &Rewriter{
		obs:      observer{m: m, pipeline: "paraphrase"},
		service:  service,
		maxChars: maxChars,
		logger:   log,
	}
}

// Start launches a paraphrasing run in the background. Empty input is
// not an error; the run completes immediately with an explanatory
// message.
func (r *Rewriter) Start(ctx context.Context, text string, opts paraphrase.Options, onProgress ProgressFunc, onDone CompletionFunc) error {
	if err := r.begin(); err != nil {
		return err
	}
	r.obs.runStarted()
	go r.run(ctx, text, opts, onProgress, onDone)
	return nil
}

func (r *Rewriter) run(ctx context.Context, text string, opts paraphrase.Options, onProgress ProgressFunc, onDone CompletionFunc) {
	start := time.Now()
	defer r.recoverToFailure(onProgress, onDone)

	if strings.TrimSpace(text) == "" {
		r.completeRun(r.obs, onDone, "No text to paraphrase", start)
		return
	}

	emitProgress(onProgress, 0.1)

	if utf8.RuneCountInString(text) <= r.maxChars {
		result, err := r.service.Paraphrase(ctx, text, opts)
		if err != nil {
			r.failRun(r.obs, onProgress, onDone, err, start)
			return
		}
		emitProgress(onProgress, 1.0)
		r.completeRun(r.obs, onDone, result, start)
		return
	}

	units := chunk.PlanText(text, r.maxChars)
	r.obs.unitsPlanned(len(units))
	r.logger.Info(ctx, "Paraphrasing in %d chunks of up to %d characters", len(units), r.maxChars)

	results := make([]string, 0, len(units))
	for i, unit := range units {
		if r.isCancelled() {
			r.logger.Info(ctx, "Paraphrasing cancelled after %d of %d chunks", i, len(units))
			r.cancelRun(r.obs, onDone, start)
			return
		}
		emitProgress(onProgress, 0.1+float64(i)/float64(len(units))*0.8)

		result, err := r.service.Paraphrase(ctx, unit, opts)
		if err != nil {
			r.logger.Warn(ctx, "Chunk %d failed, skipping: %v", i, err)
			r.obs.unitFailed()
			continue
		}
		results = append(results, result)
		r.obs.unitProcessed()
	}

	emitProgress(onProgress, 1.0)
	r.completeRun(r.obs, onDone, strings.Join(results, " "), start)
}
