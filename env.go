package wlrelay

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNoRuntimeDir reports that XDG_RUNTIME_DIR is unset, the one
// environment variable the Wayland socket convention requires.
var ErrNoRuntimeDir = errors.New("wlrelay: XDG_RUNTIME_DIR is not set")

// DisplaySocketPath resolves the conventional path for a named Wayland
// display under $XDG_RUNTIME_DIR, e.g. DisplaySocketPath("wayland-1")
// yields "$XDG_RUNTIME_DIR/wayland-1". This is a small convenience, not a
// general configuration layer: Serve itself takes every path through
// explicit Options, never by re-reading the environment on its own.
func DisplaySocketPath(display string) (string, error) {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return "", ErrNoRuntimeDir
	}
	return filepath.Join(dir, display), nil
}
