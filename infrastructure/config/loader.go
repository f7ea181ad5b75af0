package config

import (
	"fmt"
	"os"
	"strings"

	"nature-audio-extractor/domain/audio"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when --config is not given
const DefaultPath = "config/config.yaml"

// Config represents the complete application configuration
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Engine    EngineConfig    `yaml:"engine"`
	Output    OutputConfig    `yaml:"output"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Denoise   DenoiseConfig   `yaml:"denoise"`
	Logging   LoggingConfig   `yaml:"logging"`
	UI        UIConfig        `yaml:"ui"`
}

// PathsConfig contains the input root and output directory
type PathsConfig struct {
	Input  string `yaml:"input"`  // folder or single video file
	Output string `yaml:"output"` // created if missing
}

// EngineConfig contains ffmpeg settings
type EngineConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path"` // empty means look up ffmpeg on PATH
	Quiet      bool   `yaml:"quiet"`
}

// OutputConfig contains audio output settings
type OutputConfig struct {
	Format     string `yaml:"format"`
	SampleRate int    `yaml:"sample_rate"` // 0 picks the format default
	Channels   int    `yaml:"channels"`
	Bitrate    string `yaml:"bitrate"` // mp3 only
}

// DiscoveryConfig controls how input files are found
type DiscoveryConfig struct {
	Recursive bool `yaml:"recursive"`
}

// DenoiseConfig contains the filter chain parameters
type DenoiseConfig struct {
	LowCutHz         int     `yaml:"low_cut_hz"`
	HighCutHz        int     `yaml:"high_cut_hz"`
	HumHz            int     `yaml:"hum_hz"`
	HumGainDB        float64 `yaml:"hum_gain_db"`
	HarmonicGainDB   float64 `yaml:"harmonic_gain_db"`
	NotchWidth       float64 `yaml:"notch_width"`
	NoiseReductionDB float64 `yaml:"noise_reduction_db"`
}

// LoggingConfig contains diagnostic logging settings
type LoggingConfig struct {
	Level       string `yaml:"level"`
	File        string `yaml:"file"`
	Development bool   `yaml:"development"`
}

// UIConfig contains console behaviour settings
type UIConfig struct {
	PauseOnExit bool `yaml:"pause_on_exit"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	profile := audio.DefaultNoiseProfile()
	return &Config{
		Engine: EngineConfig{
			Quiet: true,
		},
		Output: OutputConfig{
			Format:   string(audio.FormatWAV),
			Channels: audio.DefaultChannels,
			Bitrate:  audio.DefaultMP3Bitrate,
		},
		Discovery: DiscoveryConfig{
			Recursive: true,
		},
		Denoise: DenoiseConfig{
			LowCutHz:         profile.LowCutHz,
			HighCutHz:        profile.HighCutHz,
			HumHz:            profile.HumHz,
			HumGainDB:        profile.HumGainDB,
			HarmonicGainDB:   profile.HarmonicGainDB,
			NotchWidth:       profile.NotchWidth,
			NoiseReductionDB: profile.NoiseReductionDB,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads the configuration from the specified YAML file. Keys missing
// from the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every problem with the configuration at once
func (c *Config) Validate() error {
	var err error

	if strings.TrimSpace(c.Paths.Input) == "" {
		err = multierr.Append(err, fmt.Errorf("paths.input is required"))
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		err = multierr.Append(err, fmt.Errorf("paths.output is required"))
	}
	if _, specErr := c.OutputSpec(); specErr != nil {
		err = multierr.Append(err, specErr)
	}
	if profileErr := c.NoiseProfile().Validate(); profileErr != nil {
		err = multierr.Append(err, profileErr)
	}
	if _, levelErr := ParseLevel(c.Logging.Level); levelErr != nil {
		err = multierr.Append(err, levelErr)
	}

	return err
}

// OutputSpec converts the output section into a resolved audio.OutputSpec
func (c *Config) OutputSpec() (audio.OutputSpec, error) {
	return audio.NewOutputSpec(c.Output.Format, c.Output.SampleRate, c.Output.Channels, c.Output.Bitrate)
}

// NoiseProfile converts the denoise section into an audio.NoiseProfile
func (c *Config) NoiseProfile() audio.NoiseProfile {
	d := c.Denoise
	return audio.NoiseProfile{
		LowCutHz:         d.LowCutHz,
		HighCutHz:        d.HighCutHz,
		HumHz:            d.HumHz,
		HumGainDB:        d.HumGainDB,
		HarmonicGainDB:   d.HarmonicGainDB,
		NotchWidth:       d.NotchWidth,
		NoiseReductionDB: d.NoiseReductionDB,
	}
}
