package filesystem

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func basenames(t *testing.T, root string, recursive bool) []string {
	t.Helper()
	files, err := NewDiscoverer().Discover(root, recursive)
	if err != nil {
		t.Fatalf("Discover(%q) unexpected error: %v", root, err)
	}
	var names []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		if err != nil {
			rel = filepath.Base(f.Path)
		}
		names = append(names, filepath.ToSlash(rel))
	}
	return names
}

func TestDiscover_MixedCaseAndNonVideo(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.mp4"))
	touch(t, filepath.Join(root, "b.txt"))
	touch(t, filepath.Join(root, "c.MOV"))

	got := basenames(t, root, true)
	want := []string{"a.mp4", "c.MOV"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_Recursion(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "top.mkv"))
	touch(t, filepath.Join(root, "day1", "owl.mts"))
	touch(t, filepath.Join(root, "day1", "notes.md"))
	touch(t, filepath.Join(root, "day2", "deep", "wren.webm"))

	tests := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{"recursive", true, []string{"day1/owl.mts", "day2/deep/wren.webm", "top.mkv"}},
		{"top level only", false, []string{"top.mkv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := basenames(t, root, tt.recursive)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	root := t.TempDir()
	video := filepath.Join(root, "Dawn.M4V")
	text := filepath.Join(root, "readme.txt")
	touch(t, video)
	touch(t, text)

	files, err := NewDiscoverer().Discover(video, false)
	if err != nil {
		t.Fatalf("Discover() unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].Path != video || files[0].BaseName != "Dawn" {
		t.Errorf("Discover(video) = %+v", files)
	}

	files, err = NewDiscoverer().Discover(text, true)
	if err != nil || len(files) != 0 {
		t.Errorf("Discover(text) = %+v, %v; want empty", files, err)
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	files, err := NewDiscoverer().Discover(filepath.Join(t.TempDir(), "nope"), true)
	if err != nil {
		t.Errorf("Discover() error = %v, want nil", err)
	}
	if len(files) != 0 {
		t.Errorf("Discover() = %v, want empty", files)
	}
}

func TestDiscover_DirectoryNamedLikeVideo(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "clips.mp4"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(root, "clips.mp4", "inner.avi"))

	got := basenames(t, root, true)
	want := []string{"clips.mp4/inner.avi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_SymlinkedRootAndEntries(t *testing.T) {
	base := t.TempDir()
	real := filepath.Join(base, "real")
	touch(t, filepath.Join(real, "a.mp4"))
	touch(t, filepath.Join(real, "sub", "b.mkv"))
	external := filepath.Join(base, "elsewhere", "c.mov")
	touch(t, external)

	if err := os.Symlink(external, filepath.Join(real, "linked.mov")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	root := filepath.Join(base, "videos")
	if err := os.Symlink(real, root); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	tests := []struct {
		name      string
		recursive bool
		want      []string
	}{
		{"recursive", true, []string{"a.mp4", "linked.mov", "sub/b.mkv"}},
		{"top level only", false, []string{"a.mp4", "linked.mov"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := NewDiscoverer().Discover(root, tt.recursive)
			if err != nil {
				t.Fatalf("Discover() unexpected error: %v", err)
			}
			var got []string
			for _, f := range files {
				if filepath.Dir(f.Path) != root && filepath.Dir(filepath.Dir(f.Path)) != root {
					t.Errorf("path %q is not reported under the given root %q", f.Path, root)
				}
				rel, _ := filepath.Rel(root, f.Path)
				got = append(got, filepath.ToSlash(rel))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Discover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChecker(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	c := NewChecker()

	if c.Exists(dir) {
		t.Fatal("directory should not exist yet")
	}
	if err := c.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() unexpected error: %v", err)
	}
	if err := c.EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir() second call unexpected error: %v", err)
	}
	if !c.Exists(dir) {
		t.Error("directory should exist")
	}

	f := filepath.Join(dir, "out.wav")
	if err := os.WriteFile(f, make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := c.Size(f); got != 2048 {
		t.Errorf("Size() = %d, want 2048", got)
	}
	if got := c.Size(filepath.Join(dir, "missing")); got != 0 {
		t.Errorf("Size(missing) = %d, want 0", got)
	}
}
