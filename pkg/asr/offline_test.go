package asr_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/zhiyun/aibridge/pkg/asr"
)

// writeScript writes an executable shell script and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recognizer.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestOfflineRecognizeAppendsPath(t *testing.T) {
	script := writeScript(t, `echo "got:$1"`)
	engine, err := asr.NewOfflineEngine(script)
	if err != nil {
		t.Fatalf("NewOfflineEngine() error = %v", err)
	}

	result, err := engine.Recognize(context.Background(), "/tmp/in.wav")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if result.Text != "got:/tmp/in.wav" {
		t.Fatalf("Text = %q, want %q", result.Text, "got:/tmp/in.wav")
	}
	if result.Source != asr.SourceOffline {
		t.Fatalf("Source = %q, want offline", result.Source)
	}
}

func TestOfflineRecognizePlaceholderSubstitution(t *testing.T) {
	script := writeScript(t, `echo "$2"`)
	engine, err := asr.NewOfflineEngine(script, "--input="+asr.ArgPlaceholder, asr.ArgPlaceholder)
	if err != nil {
		t.Fatalf("NewOfflineEngine() error = %v", err)
	}

	result, err := engine.Recognize(context.Background(), "/tmp/in.wav")
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	// The placeholder was substituted, so the path must not also be appended.
	if result.Text != "/tmp/in.wav" {
		t.Fatalf("Text = %q, want %q", result.Text, "/tmp/in.wav")
	}
}

func TestOfflineRecognizeProcessFailure(t *testing.T) {
	script := writeScript(t, `echo "model not loaded" >&2; exit 3`)
	engine, err := asr.NewOfflineEngine(script)
	if err != nil {
		t.Fatalf("NewOfflineEngine() error = %v", err)
	}

	_, err = engine.Recognize(context.Background(), "/tmp/in.wav")
	if err == nil {
		t.Fatal("Recognize() error = nil, want error")
	}
}

func TestOfflineEmptyCommandRejected(t *testing.T) {
	if _, err := asr.NewOfflineEngine(); err == nil {
		t.Fatal("NewOfflineEngine() error = nil, want error")
	}
}
