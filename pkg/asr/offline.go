package asr

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// ArgPlaceholder is replaced by the WAV path in an offline engine's argv.
const ArgPlaceholder = "{}"

// OfflineEngine drives a local recognizer process. The process receives the
// WAV path through its argv and must print the transcript to stdout.
type OfflineEngine struct {
	argv []string
}

// NewOfflineEngine creates an engine running the given command. Every
// occurrence of ArgPlaceholder in argv is replaced by the WAV path; when no
// placeholder is present the path is appended as the last argument.
func NewOfflineEngine(argv ...string) (*OfflineEngine, error) {
	if len(argv) == 0 {
		return nil, errors.New("asr: empty recognizer command")
	}
	return &OfflineEngine{argv: argv}, nil
}

// Recognize runs the recognizer process on the WAV file.
func (e *OfflineEngine) Recognize(ctx context.Context, wavPath string) (*Result, error) {
	argv := make([]string, 0, len(e.argv)+1)
	substituted := false
	for _, arg := range e.argv {
		if strings.Contains(arg, ArgPlaceholder) {
			arg = strings.ReplaceAll(arg, ArgPlaceholder, wavPath)
			substituted = true
		}
		argv = append(argv, arg)
	}
	if !substituted {
		argv = append(argv, wavPath)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, wrapError(err, "recognizer: "+msg)
		}
		return nil, wrapError(err, "recognizer")
	}

	return &Result{
		Text:   strings.TrimSpace(stdout.String()),
		Source: SourceOffline,
	}, nil
}
