package audio

import (
	"path/filepath"
	"sort"
	"strings"
)

// videoExtensions is the set of input extensions recognized as video (lowercase, with leading dot)
var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
	".m4v":  true,
	".webm": true,
	".wmv":  true,
	".flv":  true,
	".mts":  true,
	".m2ts": true,
	".3gp":  true,
	".mpeg": true,
	".mpg":  true,
	".ts":   true,
}

// IsVideoFile reports whether path has a recognized video extension (case-insensitive)
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// VideoExtensions returns the recognized extensions sorted for display
func VideoExtensions() []string {
	exts := make([]string, 0, len(videoExtensions))
	for ext := range videoExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// MediaFile is a discovered video file
type MediaFile struct {
	Path     string
	BaseName string
}

// NewMediaFile derives the base name (file name without extension) from path
func NewMediaFile(path string) MediaFile {
	name := filepath.Base(path)
	return MediaFile{
		Path:     path,
		BaseName: strings.TrimSuffix(name, filepath.Ext(name)),
	}
}

// OutputFilename returns the audio file name for the given format
func (m MediaFile) OutputFilename(f Format) string {
	return m.BaseName + f.Extension()
}
