package pluginctlconfig

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if *cfg != *want {
		t.Fatalf("Load() = %+v, want default %+v", cfg, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pluginctl.yaml")
	cfg := &Config{InstallRoot: "vendor/plugins", DefaultRef: "v2", AuthToken: "secret"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Fatalf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadFillsDefaultInstallRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".pluginctl.yaml")
	if err := Save(path, &Config{DefaultRef: "main"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InstallRoot != "plugins" {
		t.Fatalf("InstallRoot = %q, want default %q", cfg.InstallRoot, "plugins")
	}
}
