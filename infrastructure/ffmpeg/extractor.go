package ffmpeg

import (
	"context"
	"fmt"
	"strings"

	"nature-audio-extractor/domain/audio"
)

// Extractor implements audio.Extractor using ffmpeg
type Extractor struct {
	ffmpegPath string
	quiet      bool
	runner     CommandRunner
}

// ExtractorOption is a functional option for configuring Extractor
type ExtractorOption func(*Extractor)

// WithExtractorFFmpegPath sets a custom ffmpeg executable path
func WithExtractorFFmpegPath(path string) ExtractorOption {
	return func(e *Extractor) {
		e.ffmpegPath = path
	}
}

// WithExtractorCommandRunner sets a custom command runner (for testing)
func WithExtractorCommandRunner(runner CommandRunner) ExtractorOption {
	return func(e *Extractor) {
		e.runner = runner
	}
}

// WithQuiet toggles suppression of ffmpeg banners and informational output
func WithQuiet(quiet bool) ExtractorOption {
	return func(e *Extractor) {
		e.quiet = quiet
	}
}

// NewExtractor creates a new FFmpeg-based audio extractor
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		ffmpegPath: "ffmpeg",
		quiet:      true,
		runner:     &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract implements audio.Extractor
func (e *Extractor) Extract(ctx context.Context, req *audio.ExtractionRequest) error {
	args, err := BuildExtractArgs(req, e.quiet)
	if err != nil {
		return err
	}

	stderr, err := e.runner.Run(ctx, e.ffmpegPath, args...)
	if err != nil {
		code, started := exitStatus(err)
		if !started {
			return fmt.Errorf("failed to run ffmpeg: %w", err)
		}
		return &audio.EngineError{
			Args:     args,
			ExitCode: code,
			Stderr:   strings.TrimSpace(string(stderr)),
			Err:      err,
		}
	}

	return nil
}

// CommandLine implements audio.Extractor
func (e *Extractor) CommandLine(req *audio.ExtractionRequest) string {
	args, err := BuildExtractArgs(req, e.quiet)
	if err != nil {
		return e.ffmpegPath
	}
	return commandLine(e.ffmpegPath, args)
}

// VerifyInstalled checks that ffmpeg is available
func (e *Extractor) VerifyInstalled(ctx context.Context) error {
	if _, err := e.runner.CombinedOutput(ctx, e.ffmpegPath, "-version"); err != nil {
		return fmt.Errorf("%w: %s is not executable: %v", audio.ErrEngineUnavailable, e.ffmpegPath, err)
	}
	return nil
}

// Ensure Extractor implements audio.Extractor
var _ audio.Extractor = (*Extractor)(nil)
