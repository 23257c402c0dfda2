package asr

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// DefaultFFmpeg is the ffmpeg binary resolved through PATH.
const DefaultFFmpeg = "ffmpeg"

// Transcoder converts audio files to the 16 kHz mono s16le WAV the engines
// consume. ffmpeg sorts out the input container, so DingTalk OGG/Opus voice
// files go through the same path as everything else.
type Transcoder struct {
	ffmpeg string
}

// NewTranscoder creates a transcoder. ffmpeg may be empty to use
// DefaultFFmpeg.
func NewTranscoder(ffmpeg string) *Transcoder {
	if ffmpeg == "" {
		ffmpeg = DefaultFFmpeg
	}
	return &Transcoder{ffmpeg: ffmpeg}
}

// ToWAV transcodes srcPath into a temporary WAV file. The caller must call
// cleanup to remove it; cleanup is safe to defer immediately.
func (t *Transcoder) ToWAV(ctx context.Context, srcPath string) (wavPath string, cleanup func(), err error) {
	if _, err := os.Stat(srcPath); err != nil {
		return "", nil, wrapError(err, "audio file")
	}

	tmp, err := os.CreateTemp("", "asr-*.wav")
	if err != nil {
		return "", nil, wrapError(err, "create temp file")
	}
	tmpPath := tmp.Name()
	tmp.Close()
	cleanup = func() { os.Remove(tmpPath) }

	cmd := exec.CommandContext(ctx, t.ffmpeg,
		"-y",
		"-i", srcPath,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-f", "wav",
		tmpPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cleanup()
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			// ffmpeg writes its whole banner to stderr; keep the last line.
			lines := strings.Split(msg, "\n")
			msg = strings.TrimSpace(lines[len(lines)-1])
			return "", nil, fmt.Errorf("ffmpeg: %s: %w", msg, err)
		}
		return "", nil, wrapError(err, "ffmpeg")
	}

	slog.Debug("transcoded audio", "src", srcPath, "wav", tmpPath)

	return tmpPath, cleanup, nil
}
