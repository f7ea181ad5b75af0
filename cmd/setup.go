package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nature-audio-extractor/domain/audio"
	"nature-audio-extractor/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
	Pause(message string) error
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Pause(message string) error {
	discard := ""
	return survey.AskOne(&survey.Input{Message: message}, &discard)
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command asks where your videos are, where the audio should go, which
format to write and the mains hum frequency of the recording site.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, cfgFile, os.Stdout)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, output OutputWriter) error {
	if configPath == "" {
		configPath = config.DefaultPath
	}

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(output, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(output, "Welcome to nature-audio setup!")
	fmt.Fprintln(output)

	cfg := config.Default()

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}
	if err := promptOutput(prompter, cfg); err != nil {
		return err
	}
	if err := promptDenoise(prompter, cfg); err != nil {
		return err
	}
	if err := promptEngine(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Configuration saved to %s\n", configPath)
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	input, err := prompter.Input("Folder (or single video) to extract audio from?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input path is required")
	}
	cfg.Paths.Input = input

	output, err := prompter.Input("Where should audio files go?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if strings.TrimSpace(output) == "" {
		return fmt.Errorf("output directory is required")
	}
	cfg.Paths.Output = output

	recursive, err := prompter.Confirm("Include sub-folders?", true)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Discovery.Recursive = recursive

	return nil
}

func promptOutput(prompter Prompter, cfg *config.Config) error {
	options := make([]string, 0, len(audio.SupportedFormats))
	for _, f := range audio.SupportedFormats {
		options = append(options, string(f))
	}

	format, err := prompter.Select("Output format?", options, string(audio.FormatWAV))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if _, err := audio.ParseFormat(format); err != nil {
		return err
	}
	cfg.Output.Format = format

	if format == string(audio.FormatMP3) {
		bitrate, err := prompter.Input("MP3 bitrate?", audio.DefaultMP3Bitrate)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if bitrate == "" {
			bitrate = audio.DefaultMP3Bitrate
		}
		cfg.Output.Bitrate = bitrate
	}

	stereo, err := prompter.Confirm("Keep stereo? (No writes mono)", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if stereo {
		cfg.Output.Channels = 2
	}

	return nil
}

func promptDenoise(prompter Prompter, cfg *config.Config) error {
	hum, err := prompter.Input("Mains hum frequency in Hz (50 or 60, 0 to disable)?", strconv.Itoa(cfg.Denoise.HumHz))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	hz, err := strconv.Atoi(strings.TrimSpace(hum))
	if err != nil || hz < 0 {
		return fmt.Errorf("hum frequency must be a whole number of Hz, got %q", hum)
	}
	cfg.Denoise.HumHz = hz
	return nil
}

func promptEngine(prompter Prompter, cfg *config.Config) error {
	path, err := prompter.Input("Path to ffmpeg (leave empty to use PATH)?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Engine.FFmpegPath = strings.TrimSpace(path)

	pause, err := prompter.Confirm("Wait for Enter before closing the window?", false)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.UI.PauseOnExit = pause

	return nil
}
