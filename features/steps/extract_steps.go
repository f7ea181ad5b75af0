//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nature-audio-extractor/cmd"
	"nature-audio-extractor/infrastructure/config"
	"nature-audio-extractor/infrastructure/ffmpeg"
	"nature-audio-extractor/infrastructure/filesystem"

	"github.com/cucumber/godog"
	"go.uber.org/zap"
)

// extractContext holds test state for extract scenarios
type extractContext struct {
	tempDir     string
	cfg         *config.Config
	failOnError bool
	output      *bytes.Buffer
	err         error
}

// SharedExtractContext is reset before each scenario via Before hook
var SharedExtractContext *extractContext

func getExtractContext() *extractContext {
	return SharedExtractContext
}

func InitializeExtractScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "extract-test-*")
		if err != nil {
			return c, err
		}
		cfg := config.Default()
		cfg.Paths.Input = filepath.Join(tempDir, "videos")
		cfg.Paths.Output = filepath.Join(tempDir, "audio")
		SharedExtractContext = &extractContext{
			tempDir: tempDir,
			cfg:     cfg,
			output:  &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if e := getExtractContext(); e != nil && e.tempDir != "" {
			os.RemoveAll(e.tempDir)
		}
		SharedExtractContext = nil
		return c, nil
	})

	ctx.Step(`^a video folder$`, aVideoFolder)
	ctx.Step(`^the videos "([^"]*)"$`, theVideos)
	ctx.Step(`^the output format is "([^"]*)"$`, theOutputFormatIs)
	ctx.Step(`^the hum frequency is (\d+)$`, theHumFrequencyIs)
	ctx.Step(`^failures should fail the run$`, failuresShouldFailTheRun)
	ctx.Step(`^I run the extraction$`, iRunTheExtraction)
	ctx.Step(`^the run should succeed$`, theRunShouldSucceed)
	ctx.Step(`^the run should fail with "([^"]*)"$`, theRunShouldFailWith)
	ctx.Step(`^the output should contain "([^"]*)"$`, theOutputShouldContain)
	ctx.Step(`^the audio file "([^"]*)" should exist$`, theAudioFileShouldExist)
}

func aVideoFolder() error {
	e := getExtractContext()
	return os.MkdirAll(e.cfg.Paths.Input, 0755)
}

func theVideos(list string) error {
	e := getExtractContext()
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := os.WriteFile(filepath.Join(e.cfg.Paths.Input, name), []byte("video"), 0644); err != nil {
			return err
		}
	}
	return nil
}

func theOutputFormatIs(format string) error {
	getExtractContext().cfg.Output.Format = format
	return nil
}

func theHumFrequencyIs(hz int) error {
	getExtractContext().cfg.Denoise.HumHz = hz
	return nil
}

func failuresShouldFailTheRun() error {
	getExtractContext().failOnError = true
	return nil
}

func iRunTheExtraction() error {
	e := getExtractContext()

	extractor := ffmpeg.NewExtractor(ffmpeg.WithExtractorCommandRunner(SharedFFmpeg))
	prober := ffmpeg.NewProber(ffmpeg.WithProberCommandRunner(SharedFFmpeg))

	e.err = cmd.RunExtractWithDependencies(
		context.Background(),
		extractor,
		filesystem.NewDiscoverer(),
		prober,
		filesystem.NewChecker(),
		zap.NewNop(),
		e.cfg,
		e.failOnError,
		e.output,
	)
	return nil
}

func theRunShouldSucceed() error {
	e := getExtractContext()
	if e.err != nil {
		return fmt.Errorf("expected success, got: %v", e.err)
	}
	return nil
}

func theRunShouldFailWith(expected string) error {
	e := getExtractContext()
	if e.err == nil {
		return fmt.Errorf("expected an error containing %q, got none", expected)
	}
	if !strings.Contains(e.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got: %v", expected, e.err)
	}
	return nil
}

func theOutputShouldContain(expected string) error {
	e := getExtractContext()
	if !strings.Contains(e.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, e.output.String())
	}
	return nil
}

func theAudioFileShouldExist(name string) error {
	e := getExtractContext()
	path := filepath.Join(e.cfg.Paths.Output, name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("expected audio file %s: %w", path, err)
	}
	return nil
}
