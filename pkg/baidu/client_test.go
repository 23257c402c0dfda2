package baidu_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/zhiyun/aibridge/pkg/baidu"
)

// tokenCounter counts token exchanges performed against a fake server.
type tokenCounter struct {
	n atomic.Int64
}

// newFakeVendor starts a test server that serves the token endpoint at
// /oauth/2.0/token and delegates everything else to handler. It returns a
// client wired to the server and the exchange counter.
func newFakeVendor(t *testing.T, token string, expiresIn int64, handler http.HandlerFunc) (*baidu.Client, *tokenCounter) {
	t.Helper()

	counter := &tokenCounter{}
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/2.0/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("grant_type") != "client_credentials" {
			http.Error(w, "bad grant_type", http.StatusBadRequest)
			return
		}
		counter.n.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": token,
			"expires_in":   expiresIn,
		})
	})
	if handler != nil {
		mux.HandleFunc("/", handler)
	}

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := baidu.NewClient("ak", "sk", baidu.WithEndpoints(baidu.Endpoints{
		Token:       srv.URL + "/oauth/2.0/token",
		TTS:         srv.URL + "/text2audio",
		OCRGeneral:  srv.URL + "/rest/2.0/ocr/v1/general_basic",
		OCRAccurate: srv.URL + "/rest/2.0/ocr/v1/accurate_basic",
		Image:       srv.URL + "/rpc/2.0/ernievilg/v1/txt2img",
		Speech:      srv.URL + "/server_api",
	}))
	return client, counter
}
