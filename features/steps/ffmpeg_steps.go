//go:build integration

package steps

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
)

// exitError mimics *exec.ExitError for the fake engine
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e *exitError) ExitCode() int { return e.code }

// fakeFFmpeg implements ffmpeg.CommandRunner. Successful extractions write
// a small file at the output path so the run can report its size.
type fakeFFmpeg struct {
	filters   []string
	stderrFor map[string]string
	runCalls  [][]string
	probes    int
}

func (f *fakeFFmpeg) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.runCalls = append(f.runCalls, args)
	input := argAfter(args, "-i")
	for marker, stderr := range f.stderrFor {
		if strings.Contains(filepath.Base(input), marker) {
			return []byte(stderr), &exitError{code: 1}
		}
	}
	return nil, os.WriteFile(args[len(args)-1], []byte("RIFF"), 0644)
}

func (f *fakeFFmpeg) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	if len(args) == 1 && args[0] == "-version" {
		return []byte("ffmpeg version 6.1"), nil
	}
	f.probes++
	var b strings.Builder
	b.WriteString("Filters:\n  T.. = Timeline support\n  ------\n")
	b.WriteString(" ... highpass          A->A       Apply a high-pass filter.\n")
	b.WriteString(" ... lowpass           A->A       Apply a low-pass filter.\n")
	for _, name := range f.filters {
		fmt.Fprintf(&b, " ... %-17s A->A       %s\n", name, name)
	}
	return []byte(b.String()), nil
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

// SharedFFmpeg is reset before each scenario via Before hook
var SharedFFmpeg *fakeFFmpeg

func InitializeFFmpegScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedFFmpeg = &fakeFFmpeg{stderrFor: make(map[string]string)}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedFFmpeg = nil
		return c, nil
	})

	ctx.Step(`^ffmpeg supports the filters "([^"]*)"$`, ffmpegSupportsTheFilters)
	ctx.Step(`^ffmpeg reports "([^"]*)" for "([^"]*)"$`, ffmpegReportsFor)
	ctx.Step(`^ffmpeg should have been called with filter chain "([^"]*)"$`, ffmpegShouldHaveBeenCalledWithFilterChain)
	ctx.Step(`^ffmpeg should have been called with arguments "([^"]*)"$`, ffmpegShouldHaveBeenCalledWithArguments)
	ctx.Step(`^ffmpeg should not have been started$`, ffmpegShouldNotHaveBeenStarted)
}

func ffmpegSupportsTheFilters(list string) error {
	SharedFFmpeg.filters = nil
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			SharedFFmpeg.filters = append(SharedFFmpeg.filters, name)
		}
	}
	return nil
}

func ffmpegReportsFor(stderr, marker string) error {
	SharedFFmpeg.stderrFor[marker] = stderr
	return nil
}

func ffmpegShouldHaveBeenCalledWithFilterChain(expected string) error {
	if len(SharedFFmpeg.runCalls) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}
	for _, call := range SharedFFmpeg.runCalls {
		if got := argAfter(call, "-af"); got != expected {
			return fmt.Errorf("expected filter chain %q, got %q", expected, got)
		}
	}
	return nil
}

func ffmpegShouldHaveBeenCalledWithArguments(expected string) error {
	if len(SharedFFmpeg.runCalls) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}
	joined := strings.Join(SharedFFmpeg.runCalls[0], " ")
	if !strings.Contains(joined, expected) {
		return fmt.Errorf("expected arguments to contain %q, got %q", expected, joined)
	}
	return nil
}

func ffmpegShouldNotHaveBeenStarted() error {
	if n := len(SharedFFmpeg.runCalls); n > 0 || SharedFFmpeg.probes > 0 {
		return fmt.Errorf("expected no ffmpeg calls, got %d runs and %d probes", n, SharedFFmpeg.probes)
	}
	return nil
}
