//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"nature-audio-extractor/cmd"
	"nature-audio-extractor/domain/audio"
	"nature-audio-extractor/infrastructure/ffmpeg"

	"github.com/cucumber/godog"
)

type filtersContext struct {
	output *bytes.Buffer
	err    error
}

// SharedFiltersContext is reset before each scenario via Before hook
var SharedFiltersContext *filtersContext

func InitializeFiltersScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedFiltersContext = &filtersContext{output: &bytes.Buffer{}}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedFiltersContext = nil
		return c, nil
	})

	ctx.Step(`^I list the filters$`, iListTheFilters)
	ctx.Step(`^the filters output should contain "([^"]*)"$`, theFiltersOutputShouldContain)
}

func iListTheFilters() error {
	f := SharedFiltersContext
	prober := ffmpeg.NewProber(ffmpeg.WithProberCommandRunner(SharedFFmpeg))
	f.err = cmd.RunFiltersWithDependencies(context.Background(), prober, audio.DefaultNoiseProfile(), f.output)
	return f.err
}

func theFiltersOutputShouldContain(expected string) error {
	f := SharedFiltersContext
	if !strings.Contains(f.output.String(), expected) {
		return fmt.Errorf("expected filters output to contain %q, got:\n%s", expected, f.output.String())
	}
	return nil
}
