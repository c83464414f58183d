package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds configurable parameters.
type Config struct {
	ServerHost      string  `json:"SERVER_HOST"`
	TEXTPath        string  `json:"TEXT_PATH"`
	ServerCommand   string  `json:"SERVER_COMMAND"`
	StartupTimeout  int     `json:"STARTUP_TIMEOUT"`
	HealthInterval  float64 `json:"HEALTH_INTERVAL"`
	SAMPLING_RATE   int     `json:"SAMPLING_RATE"`
	FramesPerBuffer int     `json:"FRAMES_PER_BUFFER"`
	MinClipSamples  int     `json:"MIN_CLIP_SAMPLES"`
	FirstKey        string  `json:"FIRST_KEY"`
	SecondKey       string  `json:"SECOND_KEY"`
	RawMode         bool    `json:"RAW_MODE"`
	MacroPath       string  `json:"MACRO_PATH"`
	ClipName        string  `json:"CLIP_NAME"`
	CacheDir        string  `json:"CACHE_DIR"`
	KeepCache       bool    `json:"KEEP_CACHE"`
	RequestTimeout  int     `json:"REQUEST_TIMEOUT"`
	EnableHTTP2     bool    `json:"ENABLE_HTTP2"`
	VerifySSL       bool    `json:"VERIFY_SSL"`
	Notification    bool    `json:"NOTIFICATION"`
	RECORD_DEBUG    bool    `json:"RECORD_DEBUG"`
	HOOK_DEBUG      bool    `json:"HOOK_DEBUG"`
	UPLOAD_DEBUG    bool    `json:"UPLOAD_DEBUG"`
	MACRO_DEBUG     bool    `json:"MACRO_DEBUG"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServerHost:      "http://localhost:4242",
		TEXTPath:        "text",
		ServerCommand:   "",
		StartupTimeout:  1800,
		HealthInterval:  0.5,
		SAMPLING_RATE:   16000,
		FramesPerBuffer: 1024,
		MinClipSamples:  8000,
		FirstKey:        "rightctrl",
		SecondKey:       "rightshift",
		RawMode:         false,
		MacroPath:       "macros.yaml",
		ClipName:        "recording.wav",
		CacheDir:        "",
		KeepCache:       false,
		RequestTimeout:  30,
		EnableHTTP2:     true,
		VerifySSL:       true,
		Notification:    false,
		RECORD_DEBUG:    false,
		HOOK_DEBUG:      false,
		UPLOAD_DEBUG:    false,
		MACRO_DEBUG:     false,
	}
}

// Load loads config from JSON file if provided.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveDefault writes a default config JSON to the provided path.
func SaveDefault(path string) error {
	cfg := DefaultConfig()
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate verifies config fields and returns an error if any value is invalid.
func Validate(cfg *Config) error {
	if cfg.ServerHost == "" {
		return fmt.Errorf("SERVER_HOST must not be empty")
	}
	if cfg.SAMPLING_RATE <= 0 {
		return fmt.Errorf("invalid SAMPLING_RATE: %d (must be > 0)", cfg.SAMPLING_RATE)
	}
	if cfg.FramesPerBuffer <= 0 {
		return fmt.Errorf("invalid FRAMES_PER_BUFFER: %d (must be > 0)", cfg.FramesPerBuffer)
	}
	if cfg.MinClipSamples < 0 {
		return fmt.Errorf("invalid MIN_CLIP_SAMPLES: %d (must be >= 0)", cfg.MinClipSamples)
	}
	if cfg.FirstKey == "" || cfg.SecondKey == "" {
		return fmt.Errorf("chord keys must not be empty")
	}
	if cfg.FirstKey == cfg.SecondKey {
		return fmt.Errorf("chord keys must differ (both are %q)", cfg.FirstKey)
	}
	if cfg.ClipName == "" {
		return fmt.Errorf("CLIP_NAME must not be empty")
	}
	if cfg.StartupTimeout <= 0 {
		return fmt.Errorf("invalid STARTUP_TIMEOUT: %d (must be > 0)", cfg.StartupTimeout)
	}
	if cfg.HealthInterval <= 0 {
		return fmt.Errorf("invalid HEALTH_INTERVAL: %v (must be > 0)", cfg.HealthInterval)
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("invalid REQUEST_TIMEOUT: %d (must be > 0)", cfg.RequestTimeout)
	}
	return nil
}

// InitCacheDir validates/creates the configured cache directory.
// It mutates cfg.CacheDir to an absolute path or clears it on failure.
func InitCacheDir(cfg *Config) {
	if cfg.CacheDir == "" {
		return
	}
	abs, err := filepath.Abs(cfg.CacheDir)
	if err != nil {
		fmt.Printf("[main] cache-dir path invalid '%s': %v. Falling back to cwd.\n", cfg.CacheDir, err)
		cfg.CacheDir = ""
		return
	}
	info, err := os.Stat(abs)
	if err == nil {
		if !info.IsDir() {
			fmt.Printf("[main] cache-dir '%s' exists but is not a directory. Falling back to cwd.\n", abs)
			cfg.CacheDir = ""
			return
		}
		cfg.CacheDir = abs
		return
	}
	if os.IsNotExist(err) {
		if err := os.MkdirAll(abs, 0755); err != nil {
			fmt.Printf("[main] cannot create cache-dir '%s': %v. Falling back to cwd.\n", abs, err)
			cfg.CacheDir = ""
			return
		}
		cfg.CacheDir = abs
		return
	}
	fmt.Printf("[main] cannot access cache-dir '%s': %v. Falling back to cwd.\n", abs, err)
	cfg.CacheDir = ""
}

// TempDir returns the directory to use for the clip file.
func TempDir(cfg *Config) string {
	if cfg.CacheDir != "" {
		return cfg.CacheDir
	}
	cwd, _ := os.Getwd()
	return cwd
}

// ClipPath returns the absolute path of the reused clip file.
func ClipPath(cfg *Config) string {
	p := filepath.Join(TempDir(cfg), cfg.ClipName)
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
