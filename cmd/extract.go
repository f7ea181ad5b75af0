package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	appextract "nature-audio-extractor/application/extract"
	"nature-audio-extractor/domain/audio"
	"nature-audio-extractor/infrastructure/config"
	"nature-audio-extractor/infrastructure/ffmpeg"
	"nature-audio-extractor/infrastructure/filesystem"
	"nature-audio-extractor/infrastructure/logging"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	extractInput       string
	extractOutput      string
	extractFormat      string
	extractSampleRate  int
	extractChannels    int
	extractBitrate     string
	extractRecursive   bool
	extractQuiet       bool
	extractLowCut      int
	extractHighCut     int
	extractHum         int
	extractFFmpegPath  string
	extractPauseOnExit bool
	extractFailOnError bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract and denoise audio from every video under a path",
	Long: `Extract the audio track of each video file found under --input, run it
through the bird-call denoise chain and write <name>.<format> into --output.

--input may be a folder or a single video file. Existing outputs are
overwritten. Files without an audio track are reported as skipped.

Flags override values from the config file.

Example:
  nature-audio extract --input ./videos --output ./audio
  nature-audio extract --input clip.mp4 --output ./audio --format mp3 --bitrate 256k --hum 60`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	f := extractCmd.Flags()
	f.StringVar(&extractInput, "input", "", "Folder or single video file to process")
	f.StringVar(&extractOutput, "output", "", "Directory for extracted audio (created if missing)")
	f.StringVar(&extractFormat, "format", "", "Output format: wav, mp3 or flac (default wav)")
	f.IntVar(&extractSampleRate, "sample-rate", 0, "Sample rate in Hz (default 48000 for wav, 44100 for mp3/flac)")
	f.IntVar(&extractChannels, "channels", 0, "Channel count: 1 mono, 2 stereo (default 1)")
	f.StringVar(&extractBitrate, "bitrate", "", "MP3 bitrate (default 192k)")
	f.BoolVar(&extractRecursive, "recursive", true, "Descend into sub-folders")
	f.BoolVar(&extractQuiet, "quiet", true, "Hide ffmpeg banners and progress")
	f.IntVar(&extractLowCut, "low-cut", 0, "High-pass cutoff in Hz (default 400)")
	f.IntVar(&extractHighCut, "high-cut", 0, "Low-pass cutoff in Hz (default 7000)")
	f.IntVar(&extractHum, "hum", 0, "Mains hum frequency to notch out, 0 disables (default 50)")
	f.StringVar(&extractFFmpegPath, "ffmpeg", "", "Path to the ffmpeg binary (default: look up on PATH)")
	f.BoolVar(&extractPauseOnExit, "pause-on-exit", false, "Wait for Enter before exiting when run from a terminal")
	f.BoolVar(&extractFailOnError, "fail-on-error", false, "Exit non-zero if any file failed")
}

// applyExtractFlags copies explicitly set flags over the loaded configuration
func applyExtractFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("input") {
		c.Paths.Input = extractInput
	}
	if f.Changed("output") {
		c.Paths.Output = extractOutput
	}
	if f.Changed("format") {
		c.Output.Format = extractFormat
	}
	if f.Changed("sample-rate") {
		c.Output.SampleRate = extractSampleRate
	}
	if f.Changed("channels") {
		c.Output.Channels = extractChannels
	}
	if f.Changed("bitrate") {
		c.Output.Bitrate = extractBitrate
	}
	if f.Changed("recursive") {
		c.Discovery.Recursive = extractRecursive
	}
	if f.Changed("quiet") {
		c.Engine.Quiet = extractQuiet
	}
	if f.Changed("low-cut") {
		c.Denoise.LowCutHz = extractLowCut
	}
	if f.Changed("high-cut") {
		c.Denoise.HighCutHz = extractHighCut
	}
	if f.Changed("hum") {
		c.Denoise.HumHz = extractHum
	}
	if f.Changed("ffmpeg") {
		c.Engine.FFmpegPath = extractFFmpegPath
	}
	if f.Changed("pause-on-exit") {
		c.UI.PauseOnExit = extractPauseOnExit
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	loaded, err := GetConfig()
	if err != nil {
		return err
	}
	c := *loaded
	applyExtractFlags(cmd, &c)
	pauseRequested = c.UI.PauseOnExit

	if err := validateConfig(&c); err != nil {
		return err
	}

	ffmpegPath, err := ffmpeg.Locate(c.Engine.FFmpegPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Using ffmpeg: %s\n", ffmpegPath)

	logger, err := newLogger(&c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Create dependencies using production implementations
	extractor := ffmpeg.NewExtractor(
		ffmpeg.WithExtractorFFmpegPath(ffmpegPath),
		ffmpeg.WithQuiet(c.Engine.Quiet),
	)
	prober := ffmpeg.NewProber(ffmpeg.WithProberFFmpegPath(ffmpegPath))

	return RunExtractWithDependencies(
		cmd.Context(),
		extractor,
		filesystem.NewDiscoverer(),
		prober,
		filesystem.NewChecker(),
		logger,
		&c,
		extractFailOnError,
		os.Stdout,
	)
}

// RunExtractWithDependencies runs the extract command with injected dependencies (for testing)
func RunExtractWithDependencies(
	ctx context.Context,
	extractor audio.Extractor,
	discoverer audio.Discoverer,
	prober audio.FilterProber,
	fs appextract.FileSystem,
	logger *zap.Logger,
	c *config.Config,
	failOnError bool,
	output OutputWriter,
) error {
	if err := validateConfig(c); err != nil {
		return err
	}

	// Verify ffmpeg is available if extractor supports it
	if verifiable, ok := extractor.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return err
		}
	}

	service := appextract.NewService(extractor, discoverer, prober, fs, logger, output)

	input := appextract.Input{
		InputPath:  c.Paths.Input,
		OutputDir:  c.Paths.Output,
		Recursive:  c.Discovery.Recursive,
		Format:     c.Output.Format,
		SampleRate: c.Output.SampleRate,
		Channels:   c.Output.Channels,
		Bitrate:    c.Output.Bitrate,
		Profile:    c.NoiseProfile(),
	}

	summary, err := service.Run(ctx, input)
	if summary != nil && summary.Total() > 0 {
		renderResults(output, summary)
	}
	if err != nil {
		return err
	}

	if failOnError {
		if failErr := summary.Err(); failErr != nil {
			return fmt.Errorf("%d of %d file(s) failed: %w", len(multierr.Errors(failErr)), summary.Total(), failErr)
		}
	}
	return nil
}

func validateConfig(c *config.Config) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func newLogger(c *config.Config) (*zap.Logger, error) {
	level, err := config.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:       level,
		Development: c.Logging.Development,
		File:        c.Logging.File,
	})
	if err != nil {
		return nil, err
	}
	return logging.WithRunID(logger), nil
}
