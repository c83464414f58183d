package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServerHost != "http://localhost:4242" {
		t.Fatalf("unexpected default server host: %s", cfg.ServerHost)
	}
	if cfg.MinClipSamples != 8000 {
		t.Fatalf("unexpected default min clip samples: %d", cfg.MinClipSamples)
	}
	if err := Validate(&cfg); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"SERVER_HOST": "http://localhost:9999", "RAW_MODE": true, "MIN_CLIP_SAMPLES": 4000}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServerHost != "http://localhost:9999" {
		t.Fatalf("file value not applied: %s", cfg.ServerHost)
	}
	if !cfg.RawMode {
		t.Fatalf("RAW_MODE not applied")
	}
	if cfg.MinClipSamples != 4000 {
		t.Fatalf("MIN_CLIP_SAMPLES not applied: %d", cfg.MinClipSamples)
	}
	// untouched fields keep defaults
	if cfg.SAMPLING_RATE != 16000 {
		t.Fatalf("default sampling rate lost: %d", cfg.SAMPLING_RATE)
	}
}

func TestFlagsOverrideFile(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fv := BindFlags(fs)
	if err := fs.Parse([]string{"-server-host", "http://flag:1", "-raw-mode", "true", "-min-clip-samples", "1"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !fv.AnySet() {
		t.Fatalf("AnySet should be true")
	}

	cfg := DefaultConfig()
	cfg.ServerHost = "http://file:2"
	ApplyFlags(&cfg, fv)

	if cfg.ServerHost != "http://flag:1" {
		t.Fatalf("flag must beat file value, got %s", cfg.ServerHost)
	}
	if !cfg.RawMode || cfg.MinClipSamples != 1 {
		t.Fatalf("flag values not applied: raw=%v min=%d", cfg.RawMode, cfg.MinClipSamples)
	}
	// flags not set leave config untouched
	if cfg.TEXTPath != "text" {
		t.Fatalf("unset flag must not override: %s", cfg.TEXTPath)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.SAMPLING_RATE = 0 },
		func(c *Config) { c.FramesPerBuffer = -1 },
		func(c *Config) { c.FirstKey = "" },
		func(c *Config) { c.SecondKey = c.FirstKey },
		func(c *Config) { c.ServerHost = "" },
		func(c *Config) { c.ClipName = "" },
		func(c *Config) { c.RequestTimeout = 0 },
		func(c *Config) { c.HealthInterval = 0 },
	}
	for i, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := Validate(&cfg); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestClipPathUsesCacheDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheDir = t.TempDir()
	p := ClipPath(&cfg)
	if filepath.Dir(p) != cfg.CacheDir {
		t.Fatalf("clip path %s not under cache dir %s", p, cfg.CacheDir)
	}
	if filepath.Base(p) != "recording.wav" {
		t.Fatalf("unexpected clip name: %s", p)
	}
}
