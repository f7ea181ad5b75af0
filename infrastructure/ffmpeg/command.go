package ffmpeg

import (
	"strconv"
	"strings"

	"nature-audio-extractor/domain/audio"
)

// quietArgs hide the banner, progress stats and informational logging
var quietArgs = []string{"-hide_banner", "-nostats", "-loglevel", "error"}

// BuildExtractArgs assembles the ffmpeg arguments that turn req.Source into
// a filtered, video-less audio file at req.OutputPath().
func BuildExtractArgs(req *audio.ExtractionRequest, quiet bool) ([]string, error) {
	var args []string
	if quiet {
		args = append(args, quietArgs...)
	}

	args = append(args,
		"-y", // Overwrite output file if it exists
		"-i", req.Source.Path,
		"-vn", // No video
	)
	if chain := req.Filters.String(); chain != "" {
		args = append(args, "-af", chain)
	}

	spec := req.Spec
	switch spec.Format {
	case audio.FormatWAV, audio.FormatFLAC:
		args = append(args, "-acodec", spec.Format.Codec())
	case audio.FormatMP3:
		bitrate := spec.Bitrate
		if bitrate == "" {
			bitrate = audio.DefaultMP3Bitrate
		}
		args = append(args, "-acodec", spec.Format.Codec(), "-b:a", bitrate)
	default:
		return nil, &audio.ConfigurationError{
			Field:  "output format",
			Value:  string(spec.Format),
			Reason: "supported formats are wav, mp3 and flac",
		}
	}

	args = append(args,
		"-ar", strconv.Itoa(spec.SampleRate),
		"-ac", strconv.Itoa(spec.Channels),
		req.OutputPath(),
	)
	return args, nil
}

// commandLine renders an invocation for humans to copy into a shell
func commandLine(bin string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{bin}, args...) {
		if a == "" || strings.ContainsAny(a, " \t\"'") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
