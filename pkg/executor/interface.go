// Package executor runs external commands, primarily the ffmpeg
// invocations that convert audio containers to PCM WAV.
package executor

import "context"

// Executor defines the interface for running an external command and
// capturing its stdout
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
