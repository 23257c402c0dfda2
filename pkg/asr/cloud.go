package asr

import (
	"context"
	"log/slog"
	"os"

	"github.com/zhiyun/aibridge/pkg/baidu"
)

// CloudEngine recognizes speech through the Baidu short-speech API.
type CloudEngine struct {
	client *baidu.Client
	devPID int
}

// CloudOption configures a CloudEngine.
type CloudOption func(*CloudEngine)

// WithDevPID selects the recognition model, for example
// baidu.DevPIDEnglish. The default is Mandarin.
func WithDevPID(devPID int) CloudOption {
	return func(e *CloudEngine) {
		e.devPID = devPID
	}
}

// NewCloudEngine creates an engine backed by the given client.
func NewCloudEngine(client *baidu.Client, opts ...CloudOption) *CloudEngine {
	e := &CloudEngine{
		client: client,
		devPID: baidu.DevPIDMandarin,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recognize submits the WAV file to the short-speech endpoint.
func (e *CloudEngine) Recognize(ctx context.Context, wavPath string) (*Result, error) {
	audio, err := os.ReadFile(wavPath)
	if err != nil {
		return nil, wrapError(err, "read audio file")
	}

	resp, err := e.client.Speech.Recognize(ctx, &baidu.SpeechRequest{
		Audio:      audio,
		Format:     baidu.SpeechWAV,
		SampleRate: 16000,
		Channels:   1,
		DevPID:     e.devPID,
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("cloud recognition done", "sn", resp.SN, "candidates", len(resp.Results))

	return &Result{
		Text:   resp.Text(),
		SN:     resp.SN,
		Source: SourceCloud,
	}, nil
}
