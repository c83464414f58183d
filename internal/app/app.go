// Package app wires the chord detector, accumulator, transcription client,
// macro dispatcher, and output sink into the push-to-talk pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Fortyseven/vibevoice-fork-temp/internal/asr"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/chord"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/config"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/macro"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/notify"
	"github.com/Fortyseven/vibevoice-fork-temp/internal/record"
)

// Transcriber turns a WAV file into text plus the raw service response.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath string) (string, []byte, error)
}

// Sink types text into the focused window.
type Sink interface {
	Type(text string) error
}

// App is the dictation pipeline. Key transitions arrive on the hook
// goroutine, audio blocks on the capture goroutine, and each finished clip
// is transcribed on its own goroutine.
type App struct {
	cfg        config.Config
	detector   *chord.Detector
	acc        *record.Accumulator
	slot       *record.Slot
	client     Transcriber
	dispatcher *macro.Dispatcher
	sink       Sink

	wg sync.WaitGroup
}

// New assembles the pipeline.
func New(cfg config.Config, detector *chord.Detector, client Transcriber, dispatcher *macro.Dispatcher, sink Sink) *App {
	return &App{
		cfg:        cfg,
		detector:   detector,
		acc:        record.NewAccumulator(cfg.SAMPLING_RATE, cfg.MinClipSamples, cfg.RECORD_DEBUG),
		slot:       record.NewSlot(config.ClipPath(&cfg)),
		client:     client,
		dispatcher: dispatcher,
		sink:       sink,
	}
}

// HandleKey feeds one key transition through the chord detector. On
// engage the accumulator opens a fresh session; on release the session is
// closed and handed to a transcription goroutine.
func (a *App) HandleKey(rawcode uint16, pressed bool) {
	switch a.detector.Handle(rawcode, pressed) {
	case chord.EdgeEngaged:
		if a.cfg.HOOK_DEBUG {
			fmt.Println("[hook] chord engaged, recording")
		}
		a.acc.Begin()
		if a.cfg.Notification {
			notify.Notify("VibeVoice", "Recording started")
		}
	case chord.EdgeReleased:
		if a.cfg.HOOK_DEBUG {
			fmt.Println("[hook] chord released")
		}
		clip, err := a.acc.End()
		if err != nil {
			if errors.Is(err, record.ErrNoAudio) || errors.Is(err, record.ErrClipTooShort) {
				if a.cfg.RECORD_DEBUG {
					fmt.Printf("[record] clip dropped: %v\n", err)
				}
				return
			}
			fmt.Printf("[record] finalize failed: %v\n", err)
			return
		}
		a.wg.Add(1)
		go a.transcribe(clip)
	}
}

// HandleFrame feeds one captured audio block to the accumulator. Blocks
// outside an engaged chord are dropped there.
func (a *App) HandleFrame(block []float32) {
	a.acc.Frame(block)
}

// Wait blocks until every in-flight transcription has finished.
func (a *App) Wait() {
	a.wg.Wait()
}

func (a *App) transcribe(clip *record.Clip) {
	defer a.wg.Done()

	// The clip file is reused between utterances; hold the slot from
	// write until the cache decision so a fast re-record cannot clobber
	// a clip still being uploaded.
	if err := a.slot.Acquire(context.Background()); err != nil {
		fmt.Printf("[record] clip slot unavailable: %v\n", err)
		return
	}
	defer a.slot.Release()

	wavPath := a.slot.Path()
	if err := record.WriteClip(wavPath, clip); err != nil {
		fmt.Printf("[record] wav write failed: %v\n", err)
		return
	}
	if a.cfg.RECORD_DEBUG {
		fmt.Printf("[record] clip %s: %d samples (%v) written to %s\n",
			clip.ID, len(clip.Samples), clip.Duration(), wavPath)
	}

	text, raw, err := a.client.Transcribe(context.Background(), wavPath)
	if err != nil {
		fmt.Printf("[upload] failed: %v\n", err)
		if a.cfg.Notification {
			var se *asr.ServiceError
			if errors.As(err, &se) {
				notify.Notify("VibeVoice", fmt.Sprintf("Transcription failed (HTTP %d)", se.StatusCode))
			} else {
				notify.Notify("VibeVoice", "Transcription failed")
			}
		}
		a.handleCache(wavPath, false, nil)
		return
	}

	if text == "" {
		if a.cfg.UPLOAD_DEBUG {
			fmt.Println("[upload] empty result")
		}
	} else {
		out, err := a.dispatcher.Dispatch(text)
		if err != nil {
			fmt.Printf("[macro] %v\n", err)
			a.handleCache(wavPath, true, raw)
			return
		}
		if err := a.sink.Type(out); err != nil {
			fmt.Printf("[paste] failed: %v\n", err)
			if a.cfg.Notification {
				notify.Notify("VibeVoice", "Paste failed")
			}
			a.handleCache(wavPath, true, raw)
			return
		}
	}

	a.handleCache(wavPath, true, raw)
}

// handleCache archives the clip and raw response when KEEP_CACHE is on.
// Otherwise the clip file stays in place to be overwritten by the next
// utterance.
func (a *App) handleCache(wavPath string, uploadOk bool, resBody []byte) {
	if !a.cfg.KeepCache || a.cfg.CacheDir == "" {
		return
	}

	timestamp := time.Now().Format("2006-01-02-15.04.05")
	base := fmt.Sprintf("audio-%s", timestamp)

	newWav := filepath.Join(a.cfg.CacheDir, base+".wav")
	if err := os.Rename(wavPath, newWav); err != nil {
		fmt.Printf("[cache] failed to rename wav to %s: %v\n", newWav, err)
	}

	if uploadOk && len(resBody) > 0 {
		jsonPath := filepath.Join(a.cfg.CacheDir, base+".json")
		if err := os.WriteFile(jsonPath, resBody, 0644); err != nil {
			fmt.Printf("[cache] failed to write json to %s: %v\n", jsonPath, err)
		}
	}
}
