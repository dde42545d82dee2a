package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func makeSamples(n int) []int {
	samples := make([]int, n)
	for i := range samples {
		samples[i] = (i % 200) - 100
	}
	return samples
}

func writeTestWAV(t *testing.T, dir, name string, samples []int, rate int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := WriteWAV(path, NewBufferFromSamples(samples, rate)); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}
	return path
}

func TestBufferDuration(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		rate    int
		want    time.Duration
	}{
		{"one second", 16000, 16000, time.Second},
		{"half second", 8000, 16000, 500 * time.Millisecond},
		{"empty", 0, 16000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromSamples(makeSamples(tt.samples), tt.rate)
			if got := b.Duration(); got != tt.want {
				t.Errorf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBufferSlice(t *testing.T) {
	b := NewBufferFromSamples(makeSamples(16000), 16000)

	s := b.Slice(250*time.Millisecond, 750*time.Millisecond)
	if got := len(s.Samples()); got != 8000 {
		t.Errorf("slice length = %d samples, want 8000", got)
	}
	if s.Duration() != 500*time.Millisecond {
		t.Errorf("slice duration = %v, want 500ms", s.Duration())
	}

	// Bounds are clamped, not rejected.
	s = b.Slice(900*time.Millisecond, 2*time.Second)
	if s.Duration() != 100*time.Millisecond {
		t.Errorf("clamped slice duration = %v, want 100ms", s.Duration())
	}
}

func TestWriteAndDecodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	samples := makeSamples(4000)
	path := writeTestWAV(t, dir, "roundtrip.wav", samples, 16000)

	decoded, err := decodeWAVFile(path)
	if err != nil {
		t.Fatalf("decodeWAVFile() error = %v", err)
	}

	if decoded.SampleRate() != 16000 {
		t.Errorf("SampleRate() = %d, want 16000", decoded.SampleRate())
	}
	if len(decoded.Samples()) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(decoded.Samples()), len(samples))
	}
	for i := range samples {
		if decoded.Samples()[i] != samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, decoded.Samples()[i], samples[i])
		}
	}
}

func TestConcatSingleSegmentIdentity(t *testing.T) {
	dir := t.TempDir()
	samples := makeSamples(2048)
	seg := writeTestWAV(t, dir, "seg.wav", samples, 16000)
	out := filepath.Join(dir, "out.wav")

	if err := Concat([]string{seg}, out); err != nil {
		t.Fatalf("Concat() error = %v", err)
	}

	decoded, err := decodeWAVFile(out)
	if err != nil {
		t.Fatalf("decodeWAVFile() error = %v", err)
	}
	if len(decoded.Samples()) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(decoded.Samples()), len(samples))
	}
	for i := range samples {
		if decoded.Samples()[i] != samples[i] {
			t.Fatalf("sample %d = %d, want %d", i, decoded.Samples()[i], samples[i])
		}
	}
}

func TestConcatAppendsInOrder(t *testing.T) {
	dir := t.TempDir()

	a := make([]int, 1000)
	b := make([]int, 500)
	for i := range a {
		a[i] = 1
	}
	for i := range b {
		b[i] = 2
	}

	segA := writeTestWAV(t, dir, "a.wav", a, 16000)
	segB := writeTestWAV(t, dir, "b.wav", b, 16000)
	out := filepath.Join(dir, "out.wav")

	if err := Concat([]string{segA, segB}, out); err != nil {
		t.Fatalf("Concat() error = %v", err)
	}

	decoded, err := decodeWAVFile(out)
	if err != nil {
		t.Fatalf("decodeWAVFile() error = %v", err)
	}
	if len(decoded.Samples()) != 1500 {
		t.Fatalf("got %d samples, want 1500", len(decoded.Samples()))
	}
	if decoded.Samples()[999] != 1 || decoded.Samples()[1000] != 2 {
		t.Errorf("segment boundary out of order: [999]=%d [1000]=%d",
			decoded.Samples()[999], decoded.Samples()[1000])
	}
}

func TestConcatNoSegments(t *testing.T) {
	if err := Concat(nil, filepath.Join(t.TempDir(), "out.wav")); err == nil {
		t.Error("Concat() with no segments should return error")
	}
}

func TestDecodeInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-audio.wav")
	if err := os.WriteFile(path, []byte("definitely not a wav"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := decodeWAVFile(path); err == nil {
		t.Error("decodeWAVFile() should fail on garbage input")
	}
}
