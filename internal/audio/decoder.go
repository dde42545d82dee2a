package audio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/google/uuid"

	"github.com/lectureflow/lectureflow/internal/logger"
	"github.com/lectureflow/lectureflow/pkg/executor"
)

// Decoder loads an audio file of any supported container into a Buffer.
type Decoder interface {
	DecodeFile(ctx context.Context, path string) (*Buffer, error)
}

type implDecoder struct {
	executor executor.Executor
	logger   logger.Logger
	tempDir  string
}

// NewDecoder creates a Decoder. WAV files are read directly; other
// containers are converted through ffmpeg into a temporary 16kHz mono
// PCM WAV first.
func NewDecoder(exec executor.Executor, log logger.Logger, tempDir string) Decoder {
	return &implDecoder{
		executor: exec,
		logger:   log,
		tempDir:  tempDir,
	}
}

func (d *implDecoder) DecodeFile(ctx context.Context, path string) (*Buffer, error) {
	if strings.ToLower(filepath.Ext(path)) == ".wav" {
		return decodeWAVFile(path)
	}

	if err := os.MkdirAll(d.tempDir, 0755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	tempPath := filepath.Join(d.tempDir, uuid.NewString()+"_decode.wav")
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			d.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", tempPath, err)
		}
	}()

	d.logger.Debug(ctx, "Converting %s to WAV for decoding", path)

	// FFmpeg arguments for audio extraction
	// -vn: audio only
	// -ar 16000: 16kHz sample rate
	// -ac 1: mono
	// -c:a pcm_s16le: PCM 16-bit little-endian
	// -y: overwrite output file if exists
	args := []string{
		"-i", path,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		tempPath,
	}

	if _, err := d.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return nil, fmt.Errorf("ffmpeg convert audio: %w", err)
	}

	return decodeWAVFile(tempPath)
}

func decodeWAVFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode PCM data: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, fmt.Errorf("no audio data in %s", path)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = 16
	}

	return &Buffer{pcm: buf, bitDepth: bitDepth}, nil
}
