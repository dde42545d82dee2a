package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lectureflow/lectureflow/internal/audio"
	"github.com/lectureflow/lectureflow/internal/config"
	"github.com/lectureflow/lectureflow/internal/export"
	"github.com/lectureflow/lectureflow/internal/logger"
	"github.com/lectureflow/lectureflow/internal/metrics"
	"github.com/lectureflow/lectureflow/internal/paraphrase"
	"github.com/lectureflow/lectureflow/internal/pipeline"
	"github.com/lectureflow/lectureflow/internal/processor"
	"github.com/lectureflow/lectureflow/internal/stt"
	"github.com/lectureflow/lectureflow/internal/tts"
	"github.com/lectureflow/lectureflow/internal/watcher"
	"github.com/lectureflow/lectureflow/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	metricsAddr := flag.String("metrics", "", "address for the Prometheus /metrics endpoint (empty disables it)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	app, err := newApp(cfg, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize: %v", err)
		os.Exit(1)
	}

	if *metricsAddr != "" {
		go serveMetrics(ctx, *metricsAddr, log)
	}

	args := flag.Args()
	if len(args) == 0 {
		os.Exit(app.watch(ctx))
	}

	switch args[0] {
	case "transcribe":
		if len(args) != 2 {
			fmt.Fprintln(os.Stderr, "usage: lectureflow transcribe <audio-file>")
			os.Exit(2)
		}
		os.Exit(app.transcribe(ctx, args[1]))
	case "speak":
		if len(args) < 3 || len(args) > 4 {
			fmt.Fprintln(os.Stderr, "usage: lectureflow speak <text-file> <output-audio> [voice]")
			os.Exit(2)
		}
		voice := ""
		if len(args) == 4 {
			voice = args[3]
		}
		os.Exit(app.speak(ctx, args[1], args[2], voice))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected transcribe, speak, or no command for watch mode)\n", args[0])
		os.Exit(2)
	}
}

// app bundles the wired services behind the CLI commands.
type app struct {
	cfg    *config.Config
	log    logger.Logger
	proc   processor.Processor
	voicer *pipeline.Voicer
}

func newApp(cfg *config.Config, log logger.Logger) (*app, error) {
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()
	decoder := audio.NewDecoder(exec, log, cfg.Paths.Temp)
	writer := export.New()
	m := metrics.New()

	transcriber, err := stt.New(stt.Config{APIKey: cfg.STT.APIKey, BaseURL: cfg.STT.BaseURL}, log)
	if err != nil {
		return nil, fmt.Errorf("speech-to-text client: %w", err)
	}

	var rewriter paraphrase.Paraphraser
	if len(cfg.Paraphrase.APIKeys) > 0 {
		rewriter, err = paraphrase.New(cfg.Paraphrase.APIKeys, cfg.Paraphrase.Model, log)
		if err != nil {
			return nil, fmt.Errorf("paraphrase client: %w", err)
		}
	}

	var voicer *pipeline.Voicer
	if cfg.TTS.Endpoint != "" {
		synth, err := tts.New(tts.Config{
			Endpoint: cfg.TTS.Endpoint,
			Username: cfg.TTS.Username,
			Password: cfg.TTS.Password,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("text-to-speech client: %w", err)
		}
		voicer = pipeline.NewVoicer(cfg, synth, log, m)
	}

	return &app{
		cfg:    cfg,
		log:    log,
		proc:   processor.New(cfg, transcriber, rewriter, decoder, writer, m, log),
		voicer: voicer,
	}, nil
}

// watch runs the watch-folder mode until a shutdown signal arrives.
func (a *app) watch(ctx context.Context) int {
	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "LectureFlow audio processing pipeline")
	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "System: %s/%s, %d cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	a.log.Info(ctx, "Max concurrent processing: %d", a.cfg.Performance.MaxConcurrent)

	w, err := watcher.New(a.cfg.Paths.Input, a.proc.Process, a.log, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		a.log.Error(ctx, "Failed to create watcher: %v", err)
		return 1
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
	a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		a.log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		a.log.Error(ctx, "Watcher error: %v", err)
		cancel()
		return 1
	}

	a.log.Info(ctx, "Shutting down gracefully...")
	cancel()
	return 0
}

// transcribe processes a single file and exits.
func (a *app) transcribe(ctx context.Context, audioPath string) int {
	if err := a.proc.Process(ctx, audioPath); err != nil {
		a.log.Error(ctx, "Processing failed: %v", err)
		return 1
	}
	return 0
}

// speak synthesizes the contents of a text file into an audio file.
func (a *app) speak(ctx context.Context, textPath, outputPath, voice string) int {
	if a.voicer == nil {
		a.log.Error(ctx, "No text-to-speech endpoint configured")
		return 1
	}

	data, err := os.ReadFile(textPath)
	if err != nil {
		a.log.Error(ctx, "Failed to read text file: %v", err)
		return 1
	}

	done := make(chan struct{})
	var result string
	err = a.voicer.Start(ctx, string(data), outputPath, voice,
		func(fraction float64) {
			a.log.Info(ctx, "Synthesis progress: %.0f%%", fraction*100)
		},
		func(res string, elapsed time.Duration) {
			result = res
			close(done)
		})
	if err != nil {
		a.log.Error(ctx, "Failed to start synthesis: %v", err)
		return 1
	}
	<-done

	if strings.HasPrefix(result, "Error: ") {
		a.log.Error(ctx, "Synthesis failed: %s", result)
		return 1
	}
	a.log.Info(ctx, "Audio written to %s", result)
	return 0
}

func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info(ctx, "Metrics endpoint listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error(ctx, "Metrics endpoint failed: %v", err)
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
	}
	if cfg.Paths.Temp != "" {
		dirs = append(dirs, cfg.Paths.Temp)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
