package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tintstack/tintstack/pkg/cache"
)

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", appName) {
		t.Errorf("cacheDir() = %q, want XDG_CACHE_HOME/%s", dir, appName)
	}
}

func TestCacheDirFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if !strings.Contains(dir, ".cache") {
		t.Errorf("cacheDir() = %q, should contain '.cache'", dir)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c, err := newCache(context.Background(), cacheOpts{noCache: true})
	if err != nil {
		t.Fatalf("newCache error: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("expected NullCache with --no-cache, got %T", c)
	}
}

func TestNewCacheExplicitDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "render-cache")
	c, err := newCache(context.Background(), cacheOpts{cacheDir: dir})
	if err != nil {
		t.Fatalf("newCache error: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("expected FileCache with --cache-dir, got %T", c)
	}
}
