// vibevoice is a push-to-talk dictation tool. Hold the configured key
// chord, speak, release, and the recognized text is typed into whatever
// window has focus. Single-word utterances can be remapped to replacement
// text or keystroke actions through a macro table.
package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"

	"github.com/Fortyseven/vibevoice-fork-temp/internal/app"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/asr"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/capture"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/chord"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/config"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/hook"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/macro"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/output"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/server"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Hold %s+%s to dictate. Flags override config.json values.\n\n",
		config.DefaultConfig().FirstKey, config.DefaultConfig().SecondKey)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", "", "path to config JSON")
	fv := config.BindFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := resolveConfig(*configPath, fv)
	if err != nil {
		fmt.Printf("[main] %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		// default config was just created; user should edit and re-run
		return
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Printf("[main] invalid config: %v\n", err)
		os.Exit(1)
	}
	config.InitCacheDir(cfg)

	if err := run(*cfg); err != nil {
		fmt.Printf("[main] %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig loads the effective configuration. Precedence is flags
// over config file over defaults. With no config file and no flags, a
// default config.json is written and nil is returned so the user can
// edit it first.
func resolveConfig(path string, fv *config.FlagValues) (*config.Config, error) {
	var cfg config.Config

	switch {
	case path != "":
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config '%s': %w", path, err)
		}
		cfg = loaded
	default:
		if _, err := os.Stat("config.json"); err == nil {
			loaded, err := config.Load("config.json")
			if err != nil {
				return nil, fmt.Errorf("failed to load existing config.json: %w", err)
			}
			cfg = loaded
		} else if os.IsNotExist(err) {
			if !fv.AnySet() {
				if err := config.SaveDefault("config.json"); err != nil {
					return nil, fmt.Errorf("failed to write default config: %w", err)
				}
				fmt.Println("[main] default config created at config.json. Please edit it and re-run.")
				return nil, nil
			}
			cfg = config.DefaultConfig()
		} else {
			return nil, fmt.Errorf("failed to stat config.json: %w", err)
		}
	}

	config.ApplyFlags(&cfg, fv)
	return &cfg, nil
}

func run(cfg config.Config) error {
	firstKey, err := hook.LookupKey(cfg.FirstKey)
	if err != nil {
		return fmt.Errorf("FIRST_KEY: %w", err)
	}
	secondKey, err := hook.LookupKey(cfg.SecondKey)
	if err != nil {
		return fmt.Errorf("SECOND_KEY: %w", err)
	}

	table, err := macro.LoadTable(cfg.MacroPath)
	if err != nil {
		return fmt.Errorf("macro table: %w", err)
	}
	if cfg.MACRO_DEBUG {
		fmt.Printf("[macro] loaded %d entries from %s\n", table.Len(), cfg.MacroPath)
	}

	asrClient := asr.New(cfg, newHTTPClient(cfg))

	// Optionally launch the transcription backend, then wait for it to
	// become healthy either way. Dictation without a reachable backend is
	// useless, so a startup timeout is fatal.
	var backend *server.Process
	if cfg.ServerCommand != "" {
		backend, err = server.Launch(cfg.ServerCommand)
		if err != nil {
			return err
		}
		defer backend.Stop()
	}

	fmt.Printf("[main] waiting for transcription server at %s\n", cfg.ServerHost)
	startupTimeout := time.Duration(cfg.StartupTimeout) * time.Second
	healthInterval := time.Duration(cfg.HealthInterval * float64(time.Second))
	if err := asrClient.WaitHealthy(context.Background(), startupTimeout, healthInterval); err != nil {
		return fmt.Errorf("transcription server never became healthy: %w", err)
	}
	fmt.Println("[main] transcription server is up")

	detector := chord.NewDetector(firstKey, secondKey)
	dispatcher := macro.NewDispatcher(table, cfg.RawMode, cfg.MACRO_DEBUG)
	pipeline := app.New(cfg, detector, asrClient, dispatcher, output.NewSink())

	stream, err := capture.Open(cfg.SAMPLING_RATE, cfg.FramesPerBuffer, pipeline.HandleFrame, cfg.RECORD_DEBUG)
	if err != nil {
		return err
	}
	defer func() {
		if err := stream.Close(); err != nil {
			fmt.Printf("[record] capture close failed: %v\n", err)
		}
	}()

	listener := hook.Start(pipeline.HandleKey, cfg.HOOK_DEBUG)
	defer listener.Stop()

	fmt.Printf("[main] ready. Hold %s+%s to dictate.\n", cfg.FirstKey, cfg.SecondKey)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println("[main] shutting down")
	pipeline.Wait()
	return nil
}

func newHTTPClient(cfg config.Config) *http.Client {
	tr := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	if !cfg.VerifySSL {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if cfg.EnableHTTP2 {
		_ = http2.ConfigureTransport(tr)
	}
	return &http.Client{
		Transport: tr,
		Timeout:   time.Duration(cfg.RequestTimeout) * time.Second,
	}
}
