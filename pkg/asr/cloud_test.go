package asr_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/zhiyun/aibridge/pkg/asr"
	"github.com/zhiyun/aibridge/pkg/baidu"
)

func TestCloudEngineRecognize(t *testing.T) {
	audio := []byte("fake-wav-bytes")

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/2.0/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok1",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/server_api", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Speech string `json:"speech"`
			Len    int    `json:"len"`
			DevPID int    `json:"dev_pid"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Speech != base64.StdEncoding.EncodeToString(audio) {
			http.Error(w, "bad speech payload", http.StatusBadRequest)
			return
		}
		if req.Len != len(audio) {
			http.Error(w, "bad len", http.StatusBadRequest)
			return
		}
		if req.DevPID != baidu.DevPIDEnglish {
			http.Error(w, "bad dev_pid", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"err_no":  0,
			"err_msg": "success.",
			"sn":      "sn-1",
			"result":  []string{"你好世界"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := baidu.NewClient("ak", "sk", baidu.WithEndpoints(baidu.Endpoints{
		Token:  srv.URL + "/oauth/2.0/token",
		Speech: srv.URL + "/server_api",
	}))

	wavPath := filepath.Join(t.TempDir(), "in.wav")
	if err := os.WriteFile(wavPath, audio, 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}

	engine := asr.NewCloudEngine(client, asr.WithDevPID(baidu.DevPIDEnglish))
	result, err := engine.Recognize(context.Background(), wavPath)
	if err != nil {
		t.Fatalf("Recognize() error = %v", err)
	}
	if result.Text != "你好世界" || result.SN != "sn-1" || result.Source != asr.SourceCloud {
		t.Fatalf("Recognize() = %+v, want 你好世界/sn-1/cloud", result)
	}
}

func TestCloudEngineMissingFile(t *testing.T) {
	client := baidu.NewClient("ak", "sk")
	engine := asr.NewCloudEngine(client)

	_, err := engine.Recognize(context.Background(), "/nonexistent/in.wav")
	if err == nil {
		t.Fatal("Recognize() error = nil, want error")
	}
}
