package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME only applies on Linux")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCountEntries(t *testing.T) {
	dir := t.TempDir()
	if n, err := countEntries(filepath.Join(dir, "missing")); err != nil || n != 0 {
		t.Errorf("countEntries(missing) = %d, %v; want 0, nil", n, err)
	}

	os.MkdirAll(filepath.Join(dir, "ab"), 0755)
	os.WriteFile(filepath.Join(dir, "ab", "1.json"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(dir, "ab", "2.json"), []byte("{}"), 0644)
	os.MkdirAll(filepath.Join(dir, "cd"), 0755)
	os.WriteFile(filepath.Join(dir, "cd", "3.json"), []byte("{}"), 0644)

	if n, err := countEntries(dir); err != nil || n != 3 {
		t.Errorf("countEntries() = %d, %v; want 3, nil", n, err)
	}
}

func TestCacheClear(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME only applies on Linux")
	}
	input := copyModel(t, "history.toml")
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	out := captureStdout(t)
	root := New(os.Stderr, LogInfo).RootCommand()
	root.SetArgs([]string{"render", "-f", "svg,dot", input})
	if err := root.Execute(); err != nil {
		t.Fatalf("render error = %v", err)
	}

	root = New(os.Stderr, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("cache clear output = %q", out.String())
	}
	if n, _ := countEntries(filepath.Join(xdg, appName)); n != 0 {
		t.Errorf("%d entries left after clear", n)
	}
}
