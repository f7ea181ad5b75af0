package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"nature-audio-extractor/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	cfgErr  error

	// pauseRequested is set by commands that honour ui.pause_on_exit
	pauseRequested bool
)

var rootCmd = &cobra.Command{
	Use:   "nature-audio",
	Short: "Extract denoised nature recordings from video files",
	Long: `nature-audio pulls the audio track out of every video under a folder and
cleans it up for bird-call listening and analysis:

  - High-pass and low-pass filters isolate the bird-call band
  - Notches remove mains hum and its first harmonic
  - FFT denoising removes residual broadband noise (when ffmpeg has afftdn)

Example:
  nature-audio extract --input ./videos --output ./audio --format flac`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command; SIGINT and SIGTERM cancel the running batch
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := executeContext(ctx, os.Stderr, DefaultPrompter)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

// executeContext runs the command, prints any error and then pauses if asked,
// so the error is on screen while the window waits.
func executeContext(ctx context.Context, errOut io.Writer, prompter Prompter) int {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(errOut, "Error:", err)
	}
	if pauseRequested {
		pauseOnExit(prompter, true)
	}
	if err != nil {
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
}

func initConfig() {
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = config.DefaultPath
	}

	loaded, err := config.Load(cfgFile)
	switch {
	case err == nil:
		cfg = loaded
	case !explicit && errors.Is(err, fs.ErrNotExist):
		// Config file is optional; flags can supply everything
		cfg = config.Default()
	default:
		cfg = nil
		cfgErr = err
	}
}

// GetConfig returns the loaded configuration
func GetConfig() (*config.Config, error) {
	if cfg == nil {
		if cfgErr != nil {
			return nil, cfgErr
		}
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}
