package audio

import (
	"fmt"
	"io"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes a buffer into a PCM WAV file at path.
func WriteWAV(path string, b *Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, b.SampleRate(), b.BitDepth(), b.Channels(), 1)
	if err := enc.Write(b.pcm); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize wav file: %w", err)
	}

	return nil
}

// Concat appends the PCM frames of each WAV segment, in order, into a
// single file at outputPath. The output header is taken from the first
// segment; all segments must share its channel count, sample rate and
// bit depth. Mismatched parameters are not detected and produce a
// malformed output.
func Concat(segmentPaths []string, outputPath string) error {
	if len(segmentPaths) == 0 {
		return fmt.Errorf("no segments to concatenate")
	}

	first, err := decodeWAVFile(segmentPaths[0])
	if err != nil {
		return fmt.Errorf("read first segment: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, first.SampleRate(), first.BitDepth(), first.Channels(), 1)

	if err := enc.Write(first.pcm); err != nil {
		return fmt.Errorf("write segment 0: %w", err)
	}

	for i, path := range segmentPaths[1:] {
		if err := appendSegment(enc, path); err != nil {
			return fmt.Errorf("write segment %d: %w", i+1, err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize output file: %w", err)
	}

	return nil
}

func appendSegment(enc *wav.Encoder, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return fmt.Errorf("invalid WAV segment: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil && err != io.EOF {
		return err
	}
	if buf == nil {
		return fmt.Errorf("empty WAV segment: %s", path)
	}

	return enc.Write(buf)
}

// NewBufferFromSamples builds a mono buffer from raw samples, used by tests
// and synthetic inputs.
func NewBufferFromSamples(samples []int, sampleRate int) *Buffer {
	return &Buffer{
		pcm: &gaudio.IntBuffer{
			Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
			Data:           samples,
			SourceBitDepth: 16,
		},
		bitDepth: 16,
	}
}

// Samples exposes the raw interleaved PCM data.
func (b *Buffer) Samples() []int {
	return b.pcm.Data
}
