package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// FlagValues holds parsed flags with explicit set tracking.
type FlagValues struct {
	ServerHost         string
	ServerHostSet      bool
	TEXTPath           string
	TEXTPathSet        bool
	ServerCommand      string
	ServerCommandSet   bool
	StartupTimeout     int
	StartupTimeoutSet  bool
	HealthInterval     float64
	HealthIntervalSet  bool
	SAMPLING_RATE      int
	SAMPLING_RATESet   bool
	FramesPerBuffer    int
	FramesPerBufferSet bool
	MinClipSamples     int
	MinClipSamplesSet  bool
	FirstKey           string
	FirstKeySet        bool
	SecondKey          string
	SecondKeySet       bool
	RawMode            bool
	RawModeSet         bool
	MacroPath          string
	MacroPathSet       bool
	ClipName           string
	ClipNameSet        bool
	CacheDir           string
	CacheDirSet        bool
	KeepCache          bool
	KeepCacheSet       bool
	RequestTimeout     int
	RequestTimeoutSet  bool
	EnableHTTP2        bool
	EnableHTTP2Set     bool
	VerifySSL          bool
	VerifySSLSet       bool
	Notification       bool
	NotificationSet    bool
	RECORD_DEBUG       bool
	RECORD_DEBUGSet    bool
	HOOK_DEBUG         bool
	HOOK_DEBUGSet      bool
	UPLOAD_DEBUG       bool
	UPLOAD_DEBUGSet    bool
	MACRO_DEBUG        bool
	MACRO_DEBUGSet     bool
}

type stringFlag struct {
	target *string
	set    *bool
}

func (s *stringFlag) String() string {
	if s == nil || s.target == nil {
		return ""
	}
	return *s.target
}

func (s *stringFlag) Set(v string) error {
	if s.target != nil {
		*s.target = v
	}
	if s.set != nil {
		*s.set = true
	}
	return nil
}

type intFlag struct {
	target *int
	set    *bool
}

func (i *intFlag) String() string {
	if i == nil || i.target == nil {
		return ""
	}
	return fmt.Sprintf("%d", *i.target)
}

func (i *intFlag) Set(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	if i.target != nil {
		*i.target = n
	}
	if i.set != nil {
		*i.set = true
	}
	return nil
}

type floatFlag struct {
	target *float64
	set    *bool
}

func (f *floatFlag) String() string {
	if f == nil || f.target == nil {
		return ""
	}
	return fmt.Sprintf("%v", *f.target)
}

func (f *floatFlag) Set(v string) error {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	if f.target != nil {
		*f.target = n
	}
	if f.set != nil {
		*f.set = true
	}
	return nil
}

type boolFlag struct {
	target *bool
	set    *bool
}

func (b *boolFlag) String() string {
	if b == nil || b.target == nil {
		return ""
	}
	return fmt.Sprintf("%v", *b.target)
}

func parseBoolExt(v string) (bool, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "1", "true", "yes", "y":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean: %s", v)
}

func (b *boolFlag) Set(v string) error {
	n, err := parseBoolExt(v)
	if err != nil {
		return err
	}
	if b.target != nil {
		*b.target = n
	}
	if b.set != nil {
		*b.set = true
	}
	return nil
}

// BindFlags registers all flags and returns the populated FlagValues.
func BindFlags(fs *flag.FlagSet) *FlagValues {
	fv := &FlagValues{}

	fs.Var(&stringFlag{&fv.ServerHost, &fv.ServerHostSet}, "server-host", "transcription backend base URL")
	fs.Var(&stringFlag{&fv.TEXTPath, &fv.TEXTPathSet}, "text-path", "JSON path to extract text from the response")
	fs.Var(&stringFlag{&fv.ServerCommand, &fv.ServerCommandSet}, "server-command", "command to launch the backend (empty = assume already running)")
	fs.Var(&intFlag{&fv.StartupTimeout, &fv.StartupTimeoutSet}, "startup-timeout", "seconds to wait for the backend health check")
	fs.Var(&floatFlag{&fv.HealthInterval, &fv.HealthIntervalSet}, "health-interval", "seconds between health polls (float)")

	fs.Var(&intFlag{&fv.SAMPLING_RATE, &fv.SAMPLING_RATESet}, "sampling-rate", "sampling rate (Hz)")
	fs.Var(&intFlag{&fv.FramesPerBuffer, &fv.FramesPerBufferSet}, "frames-per-buffer", "audio frames per input block")
	fs.Var(&intFlag{&fv.MinClipSamples, &fv.MinClipSamplesSet}, "min-clip-samples", "minimum samples for a clip to be transcribed")

	fs.Var(&stringFlag{&fv.FirstKey, &fv.FirstKeySet}, "first-key", "first chord key (e.g. rightctrl)")
	fs.Var(&stringFlag{&fv.SecondKey, &fv.SecondKeySet}, "second-key", "second chord key (e.g. rightshift)")

	fs.Var(&boolFlag{&fv.RawMode, &fv.RawModeSet}, "raw-mode", "bypass macro matching (true/false)")
	fs.Var(&stringFlag{&fv.MacroPath, &fv.MacroPathSet}, "macro-path", "macro table YAML file")
	fs.Var(&stringFlag{&fv.ClipName, &fv.ClipNameSet}, "clip-name", "reused clip file name")

	fs.Var(&stringFlag{&fv.CacheDir, &fv.CacheDirSet}, "cache-dir", "cache directory")
	fs.Var(&boolFlag{&fv.KeepCache, &fv.KeepCacheSet}, "keep-cache", "keep clip and response files (true/false)")

	fs.Var(&intFlag{&fv.RequestTimeout, &fv.RequestTimeoutSet}, "request-timeout", "request timeout seconds")
	fs.Var(&boolFlag{&fv.EnableHTTP2, &fv.EnableHTTP2Set}, "enable-http2", "enable HTTP/2 (true/false)")
	fs.Var(&boolFlag{&fv.VerifySSL, &fv.VerifySSLSet}, "verify-ssl", "verify TLS certificates (true/false)")

	fs.Var(&boolFlag{&fv.Notification, &fv.NotificationSet}, "notification", "enable notifications (true/false)")
	fs.Var(&boolFlag{&fv.RECORD_DEBUG, &fv.RECORD_DEBUGSet}, "record-debug", "enable record debug output (true/false)")
	fs.Var(&boolFlag{&fv.HOOK_DEBUG, &fv.HOOK_DEBUGSet}, "hook-debug", "enable keyboard hook debug output (true/false)")
	fs.Var(&boolFlag{&fv.UPLOAD_DEBUG, &fv.UPLOAD_DEBUGSet}, "upload-debug", "enable upload debug output (true/false)")
	fs.Var(&boolFlag{&fv.MACRO_DEBUG, &fv.MACRO_DEBUGSet}, "macro-debug", "enable macro debug output (true/false)")

	return fv
}

// ApplyFlags applies present flags to the config.
func ApplyFlags(cfg *Config, fv *FlagValues) {
	if fv.ServerHostSet {
		cfg.ServerHost = fv.ServerHost
	}
	if fv.TEXTPathSet {
		cfg.TEXTPath = fv.TEXTPath
	}
	if fv.ServerCommandSet {
		cfg.ServerCommand = fv.ServerCommand
	}
	if fv.StartupTimeoutSet {
		cfg.StartupTimeout = fv.StartupTimeout
	}
	if fv.HealthIntervalSet {
		cfg.HealthInterval = fv.HealthInterval
	}
	if fv.SAMPLING_RATESet {
		cfg.SAMPLING_RATE = fv.SAMPLING_RATE
	}
	if fv.FramesPerBufferSet {
		cfg.FramesPerBuffer = fv.FramesPerBuffer
	}
	if fv.MinClipSamplesSet {
		cfg.MinClipSamples = fv.MinClipSamples
	}
	if fv.FirstKeySet {
		cfg.FirstKey = fv.FirstKey
	}
	if fv.SecondKeySet {
		cfg.SecondKey = fv.SecondKey
	}
	if fv.RawModeSet {
		cfg.RawMode = fv.RawMode
	}
	if fv.MacroPathSet {
		cfg.MacroPath = fv.MacroPath
	}
	if fv.ClipNameSet {
		cfg.ClipName = fv.ClipName
	}
	if fv.CacheDirSet {
		cfg.CacheDir = fv.CacheDir
	}
	if fv.KeepCacheSet {
		cfg.KeepCache = fv.KeepCache
	}
	if fv.RequestTimeoutSet {
		cfg.RequestTimeout = fv.RequestTimeout
	}
	if fv.EnableHTTP2Set {
		cfg.EnableHTTP2 = fv.EnableHTTP2
	}
	if fv.VerifySSLSet {
		cfg.VerifySSL = fv.VerifySSL
	}
	if fv.NotificationSet {
		cfg.Notification = fv.Notification
	}
	if fv.RECORD_DEBUGSet {
		cfg.RECORD_DEBUG = fv.RECORD_DEBUG
	}
	if fv.HOOK_DEBUGSet {
		cfg.HOOK_DEBUG = fv.HOOK_DEBUG
	}
	if fv.UPLOAD_DEBUGSet {
		cfg.UPLOAD_DEBUG = fv.UPLOAD_DEBUG
	}
	if fv.MACRO_DEBUGSet {
		cfg.MACRO_DEBUG = fv.MACRO_DEBUG
	}
}

// AnySet reports whether any flag was explicitly set by the user.
func (fv *FlagValues) AnySet() bool {
	return fv.ServerHostSet ||
		fv.TEXTPathSet ||
		fv.ServerCommandSet ||
		fv.StartupTimeoutSet ||
		fv.HealthIntervalSet ||
		fv.SAMPLING_RATESet ||
		fv.FramesPerBufferSet ||
		fv.MinClipSamplesSet ||
		fv.FirstKeySet ||
		fv.SecondKeySet ||
		fv.RawModeSet ||
		fv.MacroPathSet ||
		fv.ClipNameSet ||
		fv.CacheDirSet ||
		fv.KeepCacheSet ||
		fv.RequestTimeoutSet ||
		fv.EnableHTTP2Set ||
		fv.VerifySSLSet ||
		fv.NotificationSet ||
		fv.RECORD_DEBUGSet ||
		fv.HOOK_DEBUGSet ||
		fv.UPLOAD_DEBUGSet ||
		fv.MACRO_DEBUGSet
}
