package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nature-audio-extractor/domain/audio"
	"nature-audio-extractor/infrastructure/config"
	"nature-audio-extractor/infrastructure/ffmpeg"
	"nature-audio-extractor/infrastructure/filesystem"

	"go.uber.org/zap"
)

const filterListing = `Filters:
  T.. = Timeline support
  ------
 ... afftdn            A->A       Denoise audio samples using FFT.
 T.C equalizer         A->A       Apply two-pole peaking equalization (EQ) filter.
 ... highpass          A->A       Apply a high-pass filter with 3dB point frequency.
 ... lowpass           A->A       Apply a low-pass filter with 3dB point frequency.
`

type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e *exitError) ExitCode() int { return e.code }

// fakeRunner stands in for ffmpeg. Extractions write the output file unless
// the input name matches an entry in stderrFor.
type fakeRunner struct {
	stderrFor  map[string]string
	versionErr error
	runCalls   [][]string
	probeCalls int
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.runCalls = append(r.runCalls, args)
	input := argAfter(args, "-i")
	for marker, stderr := range r.stderrFor {
		if strings.Contains(filepath.Base(input), marker) {
			return []byte(stderr), &exitError{code: 1}
		}
	}
	out := args[len(args)-1]
	return nil, os.WriteFile(out, []byte("RIFF"), 0o644)
}

func (r *fakeRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	if len(args) == 1 && args[0] == "-version" {
		return []byte("ffmpeg version 6.1"), r.versionErr
	}
	r.probeCalls++
	return []byte(filterListing), nil
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

type extractEnv struct {
	runner *fakeRunner
	cfg    *config.Config
	output *bytes.Buffer
}

func newExtractEnv(t *testing.T, videos ...string) *extractEnv {
	t.Helper()
	root := t.TempDir()
	in := filepath.Join(root, "videos")
	if err := os.MkdirAll(in, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, v := range videos {
		if err := os.WriteFile(filepath.Join(in, v), []byte("video"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	c := config.Default()
	c.Paths.Input = in
	c.Paths.Output = filepath.Join(root, "audio")

	return &extractEnv{
		runner: &fakeRunner{stderrFor: make(map[string]string)},
		cfg:    c,
		output: &bytes.Buffer{},
	}
}

func (e *extractEnv) run(failOnError bool) error {
	extractor := ffmpeg.NewExtractor(ffmpeg.WithExtractorCommandRunner(e.runner))
	prober := ffmpeg.NewProber(ffmpeg.WithProberCommandRunner(e.runner))
	return RunExtractWithDependencies(
		context.Background(),
		extractor,
		filesystem.NewDiscoverer(),
		prober,
		filesystem.NewChecker(),
		zap.NewNop(),
		e.cfg,
		failOnError,
		e.output,
	)
}

func TestRunExtractWithDependencies_TalliesSkips(t *testing.T) {
	env := newExtractEnv(t, "dawn.mp4", "silent.MOV", "dusk.mkv", "notes.txt")
	env.runner.stderrFor["silent"] = "Stream map '0:a' matches no streams."

	if err := env.run(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := env.output.String()
	if !strings.Contains(out, "Done. 2/3 files extracted.") {
		t.Errorf("expected 2/3 tally, got:\n%s", out)
	}
	if !strings.Contains(out, "[SKIP]") {
		t.Errorf("expected a skip line, got:\n%s", out)
	}
	if strings.Contains(out, "[FAIL]") {
		t.Errorf("skip should not be reported as failure:\n%s", out)
	}
	if len(env.runner.runCalls) != 3 {
		t.Errorf("expected 3 ffmpeg runs, got %d", len(env.runner.runCalls))
	}
	if env.runner.probeCalls != 1 {
		t.Errorf("expected filter listing fetched once, got %d", env.runner.probeCalls)
	}
	for _, name := range []string{"dawn.wav", "dusk.wav"} {
		if _, err := os.Stat(filepath.Join(env.cfg.Paths.Output, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
}

func TestRunExtractWithDependencies_UsesFullChain(t *testing.T) {
	env := newExtractEnv(t, "dawn.mp4")

	if err := env.run(false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "highpass=f=400,lowpass=f=7000,equalizer=f=50:t=q:w=1.0:g=-25,equalizer=f=100:t=q:w=1.0:g=-18,afftdn=nr=12"
	if got := argAfter(env.runner.runCalls[0], "-af"); got != want {
		t.Errorf("-af = %q, want %q", got, want)
	}
}

func TestRunExtractWithDependencies_UnsupportedFormat(t *testing.T) {
	env := newExtractEnv(t, "dawn.mp4")
	env.cfg.Output.Format = "ogg"

	err := env.run(false)
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}

	var cfgErr *audio.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError, got %T: %v", err, err)
	}
	if len(env.runner.runCalls) != 0 || env.runner.probeCalls != 0 {
		t.Errorf("expected no subprocess calls, got %d runs and %d probes", len(env.runner.runCalls), env.runner.probeCalls)
	}
}

func TestRunExtractWithDependencies_FailOnError(t *testing.T) {
	tests := []struct {
		name        string
		failOnError bool
		wantErr     bool
	}{
		{name: "failures reported only", failOnError: false, wantErr: false},
		{name: "failures fail the run", failOnError: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newExtractEnv(t, "dawn.mp4", "broken.mp4")
			env.runner.stderrFor["broken"] = "broken.mp4: Invalid data found when processing input"

			err := env.run(tt.failOnError)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), "1 of 2 file(s) failed") {
				t.Errorf("unexpected error message: %v", err)
			}

			out := env.output.String()
			if !strings.Contains(out, "[FFMPEG CMD]") {
				t.Errorf("expected failing command line in output:\n%s", out)
			}
			if !strings.Contains(out, "Done. 1/2 files extracted.") {
				t.Errorf("expected 1/2 tally:\n%s", out)
			}
		})
	}
}

func TestRunExtractWithDependencies_EngineUnavailable(t *testing.T) {
	env := newExtractEnv(t, "dawn.mp4")
	env.runner.versionErr = errors.New("exec: \"ffmpeg\": executable file not found in $PATH")

	err := env.run(false)
	if !errors.Is(err, audio.ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", err)
	}
	if len(env.runner.runCalls) != 0 {
		t.Errorf("expected no extraction, got %d runs", len(env.runner.runCalls))
	}
}

func TestRunExtractWithDependencies_NoFiles(t *testing.T) {
	env := newExtractEnv(t, "readme.txt")

	if err := env.run(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := env.output.String()
	if !strings.Contains(out, "No video files found. Supported:") {
		t.Errorf("expected no-files message, got:\n%s", out)
	}
	if strings.Contains(strings.ToLower(out), "extracted 0/0") {
		t.Errorf("results table should not render for an empty batch:\n%s", out)
	}
}

func TestRunExtractWithDependencies_MissingPaths(t *testing.T) {
	env := newExtractEnv(t)
	env.cfg.Paths.Input = ""
	env.cfg.Paths.Output = ""

	err := env.run(false)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"paths.input is required", "paths.output is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestRenderResults(t *testing.T) {
	summary := &audio.Summary{}
	summary.Add(audio.Result{
		File:       audio.NewMediaFile("/v/dawn.mp4"),
		Outcome:    audio.OutcomeSucceeded,
		OutputPath: "/a/dawn.wav",
	})
	summary.Add(audio.Result{
		File:    audio.NewMediaFile("/v/timelapse.mp4"),
		Outcome: audio.OutcomeSkippedNoAudio,
		Reason:  "no audio stream",
	})

	var buf bytes.Buffer
	renderResults(&buf, summary)
	out := strings.ToLower(buf.String())

	for _, want := range []string{"/v/dawn.mp4", "/a/dawn.wav", "/v/timelapse.mp4", "no audio stream", "extracted 1/2", "skipped 1", "failed 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table:\n%s", want, buf.String())
		}
	}
}
