package asr

import (
	"context"
	"fmt"
)

// Source identifies which engine produced a result.
type Source string

const (
	SourceCloud   Source = "cloud"
	SourceOffline Source = "offline"
)

// Result is a recognition result.
type Result struct {
	// Text is the recognized transcript.
	Text string

	// SN is the vendor serial number of the request, when available.
	SN string

	// Source identifies the engine that produced the result.
	Source Source
}

// Engine recognizes speech from a 16 kHz mono s16le WAV file.
type Engine interface {
	Recognize(ctx context.Context, wavPath string) (*Result, error)
}

// wrapError wraps local-resource failures with context.
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
