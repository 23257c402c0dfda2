package asr

import (
	"context"
	"log/slog"
)

// HybridEngine tries the cloud engine first and falls back to the offline
// engine at most once. The offline result is final, success or not.
type HybridEngine struct {
	cloud   Engine
	offline Engine
}

// NewHybridEngine combines a cloud and an offline engine.
func NewHybridEngine(cloud, offline Engine) *HybridEngine {
	return &HybridEngine{cloud: cloud, offline: offline}
}

// Recognize recognizes the WAV file, preferring the cloud. Any cloud
// failure, vendor or transport, and an empty transcript all fall back to
// the offline engine.
func (e *HybridEngine) Recognize(ctx context.Context, wavPath string) (*Result, error) {
	result, err := e.cloud.Recognize(ctx, wavPath)
	if err == nil && result.Text != "" {
		return result, nil
	}

	slog.Debug("falling back to offline recognition", "cloud_err", err)

	return e.offline.Recognize(ctx, wavPath)
}
