package audio

import (
	"strconv"
	"strings"
)

// Format is an output audio container/codec family
type Format string

const (
	FormatWAV  Format = "wav"  // PCM 16-bit little-endian
	FormatMP3  Format = "mp3"  // lossy, bitrate applies
	FormatFLAC Format = "flac" // lossless
)

// DefaultMP3Bitrate is used when no bitrate is configured for mp3 output
const DefaultMP3Bitrate = "192k"

// DefaultChannels is mono, which is what field recordings are analysed in
const DefaultChannels = 1

// SupportedFormats lists the formats in the order they are presented to users
var SupportedFormats = []Format{FormatWAV, FormatMP3, FormatFLAC}

// ParseFormat normalizes a user supplied format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "."))))
	switch f {
	case FormatWAV, FormatMP3, FormatFLAC:
		return f, nil
	}
	return "", &ConfigurationError{
		Field:  "output format",
		Value:  s,
		Reason: "supported formats are wav, mp3 and flac",
	}
}

// DefaultSampleRate returns the sample rate used when none is configured
func (f Format) DefaultSampleRate() int {
	if f == FormatWAV {
		return 48000
	}
	return 44100
}

// Codec returns the ffmpeg audio encoder name for the format
func (f Format) Codec() string {
	switch f {
	case FormatWAV:
		return "pcm_s16le"
	case FormatMP3:
		return "libmp3lame"
	case FormatFLAC:
		return "flac"
	}
	return ""
}

// Extension returns the output file extension including the leading dot
func (f Format) Extension() string {
	return "." + string(f)
}

// OutputSpec describes the audio file written for every input
type OutputSpec struct {
	Format     Format
	SampleRate int
	Channels   int
	Bitrate    string // mp3 only
}

// NewOutputSpec validates the format and resolves unset values.
// A sampleRate or channels of 0 and an empty bitrate mean "use the default".
func NewOutputSpec(format string, sampleRate, channels int, bitrate string) (OutputSpec, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return OutputSpec{}, err
	}
	if sampleRate < 0 {
		return OutputSpec{}, &ConfigurationError{Field: "sample rate", Value: strconv.Itoa(sampleRate), Reason: "must be positive"}
	}
	if channels < 0 {
		return OutputSpec{}, &ConfigurationError{Field: "channel count", Value: strconv.Itoa(channels), Reason: "must be positive"}
	}

	if sampleRate == 0 {
		sampleRate = f.DefaultSampleRate()
	}
	if channels == 0 {
		channels = DefaultChannels
	}

	bitrate = strings.TrimSpace(bitrate)
	if f != FormatMP3 {
		bitrate = ""
	} else if bitrate == "" {
		bitrate = DefaultMP3Bitrate
	}

	return OutputSpec{
		Format:     f,
		SampleRate: sampleRate,
		Channels:   channels,
		Bitrate:    bitrate,
	}, nil
}
