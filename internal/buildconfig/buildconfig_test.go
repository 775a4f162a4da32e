package buildconfig

import (
	"runtime"
	"testing"
)

func TestVersionInfo(t *testing.T) {
	info := VersionInfo()

	if info["version"] != Version() {
		t.Errorf("version = %q, want %q", info["version"], Version())
	}
	if info["commit"] != Commit() {
		t.Errorf("commit = %q, want %q", info["commit"], Commit())
	}
	if info["go_version"] != runtime.Version() {
		t.Errorf("go_version = %q, want %q", info["go_version"], runtime.Version())
	}
}

func TestDefaults(t *testing.T) {
	if Version() != "dev" {
		t.Errorf("expected default version dev, got %q", Version())
	}
	if Commit() != "unknown" {
		t.Errorf("expected default commit unknown, got %q", Commit())
	}
}
