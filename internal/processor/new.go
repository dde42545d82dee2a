package processor

import (
	"github.com/lectureflow/lectureflow/internal/audio"
	"github.com/lectureflow/lectureflow/internal/config"
	"github.com/lectureflow/lectureflow/internal/export"
	"github.com/lectureflow/lectureflow/internal/logger"
	"github.com/lectureflow/lectureflow/internal/metrics"
	"github.com/lectureflow/lectureflow/internal/paraphrase"
	"github.com/lectureflow/lectureflow/internal/stt"
)

type implProcessor struct {
	cfg         *config.Config
	transcriber stt.Transcriber
	rewriter    paraphrase.Paraphraser // nil disables the paraphrase step
	decoder     audio.Decoder
	writer      export.Writer
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// New creates a new Processor instance. The paraphraser may be nil when
// no rewriting API keys are configured; transcripts are then exported
// verbatim.
func New(cfg *config.Config, transcriber stt.Transcriber, rewriter paraphrase.Paraphraser, decoder audio.Decoder, writer export.Writer, m *metrics.Metrics, log logger.Logger) Processor {
	return &implProcessor{
		cfg:         cfg,
		transcriber: transcriber,
		rewriter:    rewriter,
		decoder:     decoder,
		writer:      writer,
		metrics:     m,
		logger:      log,
	}
}
