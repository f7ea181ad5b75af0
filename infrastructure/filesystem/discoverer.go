package filesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"nature-audio-extractor/domain/audio"
)

// Discoverer implements audio.Discoverer on the local file system
type Discoverer struct{}

// NewDiscoverer creates a new Discoverer
func NewDiscoverer() *Discoverer {
	return &Discoverer{}
}

// Discover returns the video files at root. root may be a single file or a
// directory; a missing root yields no files and no error. Files are
// returned in lexical walk order.
func (d *Discoverer) Discover(root string, recursive bool) ([]audio.MediaFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	if !info.IsDir() {
		if info.Mode().IsRegular() && audio.IsVideoFile(root) {
			return []audio.MediaFile{audio.NewMediaFile(root)}, nil
		}
		return nil, nil
	}

	if !recursive {
		return d.listDir(root)
	}

	// WalkDir does not descend into a symlinked root, so walk its target
	// and report paths under the root as given.
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}

	var files []audio.MediaFile
	err = filepath.WalkDir(resolved, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !isRegularFile(path, entry) || !audio.IsVideoFile(path) {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		files = append(files, audio.NewMediaFile(filepath.Join(root, rel)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// listDir returns matching immediate children of dir
func (d *Discoverer) listDir(dir string) ([]audio.MediaFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []audio.MediaFile
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if isRegularFile(path, entry) && audio.IsVideoFile(entry.Name()) {
			files = append(files, audio.NewMediaFile(path))
		}
	}
	return files, nil
}

// isRegularFile reports whether entry is a regular file or a symlink to one.
// Symlinked directories are not followed.
func isRegularFile(path string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// Ensure Discoverer implements audio.Discoverer
var _ audio.Discoverer = (*Discoverer)(nil)
