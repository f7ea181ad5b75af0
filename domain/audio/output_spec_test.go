package audio

import (
	"errors"
	"testing"
)

func TestNewOutputSpec(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		sampleRate  int
		channels    int
		bitrate     string
		want        OutputSpec
		wantErr     bool
		errContains string
	}{
		{
			name:   "wav defaults to 48 kHz",
			format: "wav",
			want:   OutputSpec{Format: FormatWAV, SampleRate: 48000, Channels: 1},
		},
		{
			name:   "mp3 defaults to 44.1 kHz and 192k",
			format: "mp3",
			want:   OutputSpec{Format: FormatMP3, SampleRate: 44100, Channels: 1, Bitrate: "192k"},
		},
		{
			name:   "flac defaults to 44.1 kHz",
			format: "flac",
			want:   OutputSpec{Format: FormatFLAC, SampleRate: 44100, Channels: 1},
		},
		{
			name:       "explicit rate is kept for wav",
			format:     "wav",
			sampleRate: 22050,
			channels:   2,
			want:       OutputSpec{Format: FormatWAV, SampleRate: 22050, Channels: 2},
		},
		{
			name:       "explicit rate and bitrate kept for mp3",
			format:     "MP3",
			sampleRate: 48000,
			bitrate:    "320k",
			want:       OutputSpec{Format: FormatMP3, SampleRate: 48000, Channels: 1, Bitrate: "320k"},
		},
		{
			name:    "bitrate ignored for flac",
			format:  "flac",
			bitrate: "320k",
			want:    OutputSpec{Format: FormatFLAC, SampleRate: 44100, Channels: 1},
		},
		{
			name:        "ogg is rejected",
			format:      "ogg",
			wantErr:     true,
			errContains: "output format",
		},
		{
			name:        "empty format is rejected",
			format:      "",
			wantErr:     true,
			errContains: "output format",
		},
		{
			name:        "negative channels",
			format:      "wav",
			channels:    -1,
			wantErr:     true,
			errContains: "channel count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewOutputSpec(tt.format, tt.sampleRate, tt.channels, tt.bitrate)

			if tt.wantErr {
				var cfgErr *ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("NewOutputSpec() error = %v, want *ConfigurationError", err)
				}
				if cfgErr.Field != tt.errContains {
					t.Errorf("NewOutputSpec() error field = %q, want %q", cfgErr.Field, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewOutputSpec() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NewOutputSpec() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFormat_Codec(t *testing.T) {
	tests := []struct {
		format Format
		codec  string
		ext    string
	}{
		{FormatWAV, "pcm_s16le", ".wav"},
		{FormatMP3, "libmp3lame", ".mp3"},
		{FormatFLAC, "flac", ".flac"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.Codec(); got != tt.codec {
				t.Errorf("Codec() = %q, want %q", got, tt.codec)
			}
			if got := tt.format.Extension(); got != tt.ext {
				t.Errorf("Extension() = %q, want %q", got, tt.ext)
			}
		})
	}
}
