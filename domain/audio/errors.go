package audio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEngineUnavailable is returned when the ffmpeg binary cannot be located or executed
var ErrEngineUnavailable = errors.New("audio engine unavailable")

// noAudioMarkers are the ffmpeg stderr fragments printed when the input has no audio track
var noAudioMarkers = []string{
	"matches no streams",
	"does not contain any stream",
}

// ConfigurationError reports a setting that makes the run impossible.
// It is always raised before any subprocess is started.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// EngineError describes a non-zero exit of the audio engine
type EngineError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("ffmpeg exited with status %d: %v", e.ExitCode, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// IsNoAudioStream reports whether engine stderr says the input has no audio stream
func IsNoAudioStream(stderr string) bool {
	for _, marker := range noAudioMarkers {
		if strings.Contains(stderr, marker) {
			return true
		}
	}
	return false
}
