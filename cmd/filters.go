package cmd

import (
	"context"
	"fmt"
	"os"

	"nature-audio-extractor/domain/audio"
	"nature-audio-extractor/infrastructure/ffmpeg"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var filtersFFmpegPath string

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show which optional filters ffmpeg provides and the resulting chain",
	Long: `Ask ffmpeg which of the optional denoise filters it supports and print the
filter chain extract would use with the current configuration.

Example:
  nature-audio filters
  nature-audio filters --ffmpeg /opt/ffmpeg/bin/ffmpeg`,
	RunE: runFilters,
}

func init() {
	rootCmd.AddCommand(filtersCmd)
	filtersCmd.Flags().StringVar(&filtersFFmpegPath, "ffmpeg", "", "Path to the ffmpeg binary (default: config or PATH)")
}

func runFilters(cmd *cobra.Command, args []string) error {
	c, err := GetConfig()
	if err != nil {
		return err
	}

	configured := c.Engine.FFmpegPath
	if cmd.Flags().Changed("ffmpeg") {
		configured = filtersFFmpegPath
	}
	ffmpegPath, err := ffmpeg.Locate(configured)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Using ffmpeg: %s\n", ffmpegPath)

	prober := ffmpeg.NewProber(ffmpeg.WithProberFFmpegPath(ffmpegPath))
	return RunFiltersWithDependencies(cmd.Context(), prober, c.NoiseProfile(), os.Stdout)
}

// RunFiltersWithDependencies prints the capability table and chain (for testing)
func RunFiltersWithDependencies(ctx context.Context, prober audio.FilterProber, profile audio.NoiseProfile, output OutputWriter) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	optional := []struct {
		name    string
		purpose string
	}{
		{audio.FilterEqualizer, fmt.Sprintf("hum notches at %d Hz and %d Hz", profile.HumHz, 2*profile.HumHz)},
		{audio.FilterDenoise, fmt.Sprintf("adaptive denoise, %g dB", profile.NoiseReductionDB)},
	}

	t := table.NewWriter()
	t.SetOutputMirror(output)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Filter", "Available", "Used for"})
	for _, f := range optional {
		available := "no"
		if prober.SupportsFilter(ctx, f.name) {
			available = "yes"
		}
		t.AppendRow(table.Row{f.name, available, f.purpose})
	}
	t.Render()

	chain := audio.BuildFilterChain(ctx, profile, prober)
	fmt.Fprintf(output, "\nFilter chain (%d stages):\n  %s\n", len(chain), chain.String())
	return nil
}
