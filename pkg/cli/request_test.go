package cli

import (
	"os"
	"path/filepath"
	"testing"
)

type sampleRequest struct {
	Text  string `json:"text" yaml:"text"`
	Voice int    `json:"voice" yaml:"voice"`
}

func TestLoadRequest_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.yaml")
	if err := os.WriteFile(path, []byte("text: 你好\nvoice: 4\n"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var req sampleRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatalf("LoadRequest() error = %v", err)
	}
	if req.Text != "你好" || req.Voice != 4 {
		t.Errorf("req = %+v, want 你好/4", req)
	}
}

func TestLoadRequest_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	if err := os.WriteFile(path, []byte(`{"text":"hello","voice":1}`), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	var req sampleRequest
	if err := LoadRequest(path, &req); err != nil {
		t.Fatalf("LoadRequest() error = %v", err)
	}
	if req.Text != "hello" || req.Voice != 1 {
		t.Errorf("req = %+v, want hello/1", req)
	}
}

func TestParseRequest_UnknownExtensionFallsBack(t *testing.T) {
	var req sampleRequest
	if err := ParseRequest([]byte(`{"text":"hi"}`), "req.txt", &req); err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if req.Text != "hi" {
		t.Errorf("Text = %q, want %q", req.Text, "hi")
	}
}

func TestLoadRequest_MissingFile(t *testing.T) {
	var req sampleRequest
	if err := LoadRequest("/nonexistent/req.yaml", &req); err == nil {
		t.Error("LoadRequest() error = nil, want error")
	}
}
