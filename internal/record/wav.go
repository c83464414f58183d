package record

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteClip writes a clip to path as mono 16-bit PCM WAV, overwriting any
// previous file there.
func WriteClip(path string, clip *Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav failed: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, clip.SampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: clip.SampleRate},
		Data:           make([]int, len(clip.Samples)),
		SourceBitDepth: 16,
	}
	for i, s := range clip.Samples {
		buf.Data[i] = int(s)
	}
	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("wav write failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav close failed: %w", err)
	}
	return nil
}
