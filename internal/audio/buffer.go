// Package audio handles decoded audio buffers: loading arbitrary
// containers into memory, slicing time ranges for per-unit export, and
// recombining synthesized WAV segments.
package audio

import (
	"time"

	gaudio "github.com/go-audio/audio"
)

// Buffer is a uniform in-memory PCM representation of a recording.
type Buffer struct {
	pcm      *gaudio.IntBuffer
	bitDepth int
}

// SampleRate returns the buffer's sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.pcm.Format.SampleRate
}

// Channels returns the number of interleaved channels.
func (b *Buffer) Channels() int {
	return b.pcm.Format.NumChannels
}

// BitDepth returns the source bit depth of the samples.
func (b *Buffer) BitDepth() int {
	return b.bitDepth
}

// Duration returns the playing time of the buffer.
func (b *Buffer) Duration() time.Duration {
	frames := len(b.pcm.Data) / b.pcm.Format.NumChannels
	return time.Duration(frames) * time.Second / time.Duration(b.pcm.Format.SampleRate)
}

// Slice returns a new buffer covering [start, end) of the recording.
// Bounds are clamped to the buffer's extent.
func (b *Buffer) Slice(start, end time.Duration) *Buffer {
	channels := b.pcm.Format.NumChannels
	rate := b.pcm.Format.SampleRate
	frames := len(b.pcm.Data) / channels

	startFrame := int(start * time.Duration(rate) / time.Second)
	endFrame := int(end * time.Duration(rate) / time.Second)

	if startFrame < 0 {
		startFrame = 0
	}
	if endFrame > frames {
		endFrame = frames
	}
	if startFrame > endFrame {
		startFrame = endFrame
	}

	data := b.pcm.Data[startFrame*channels : endFrame*channels]

	return &Buffer{
		pcm: &gaudio.IntBuffer{
			Format:         &gaudio.Format{NumChannels: channels, SampleRate: rate},
			Data:           data,
			SourceBitDepth: b.pcm.SourceBitDepth,
		},
		bitDepth: b.bitDepth,
	}
}
