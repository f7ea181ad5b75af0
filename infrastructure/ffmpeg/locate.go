package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"nature-audio-extractor/domain/audio"
)

// Locate resolves the ffmpeg binary. An explicit path must point at an
// existing file; otherwise ffmpeg is looked up on PATH.
func Locate(configured string) (string, error) {
	configured = strings.TrimSpace(configured)
	if configured != "" {
		info, err := os.Stat(configured)
		if err != nil {
			return "", fmt.Errorf("%w: ffmpeg not found at %s", audio.ErrEngineUnavailable, configured)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory, not an executable", audio.ErrEngineUnavailable, configured)
		}
		return configured, nil
	}

	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("%w: ffmpeg not found on PATH; install it or set engine.ffmpeg_path", audio.ErrEngineUnavailable)
	}
	return path, nil
}
