package baidu_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zhiyun/aibridge/pkg/baidu"
)

// newFakeRealtimeServer speaks the streaming protocol: a START frame, binary
// audio frames, a FINISH frame. It echoes the received byte count back in
// the final transcript so the test can assert the full upload arrived.
func newFakeRealtimeServer(t *testing.T, handler func(conn *websocket.Conn, audio []byte)) *baidu.Client {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sn") == "" {
			http.Error(w, "missing sn", http.StatusBadRequest)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		// START frame
		var start struct {
			Type string `json:"type"`
			Data struct {
				AppID  int    `json:"appid"`
				Format string `json:"format"`
			} `json:"data"`
		}
		if err := conn.ReadJSON(&start); err != nil {
			t.Errorf("read start: %v", err)
			return
		}
		if start.Type != "START" || start.Data.AppID != 12345678 || start.Data.Format != "pcm" {
			t.Errorf("start frame = %+v, want START/12345678/pcm", start)
			return
		}

		// audio frames until FINISH
		var audio bytes.Buffer
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				t.Errorf("read frame: %v", err)
				return
			}
			if msgType == websocket.BinaryMessage {
				audio.Write(data)
				continue
			}
			var frame struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(data, &frame); err != nil || frame.Type != "FINISH" {
				t.Errorf("unexpected text frame %q", data)
				return
			}
			break
		}

		handler(conn, audio.Bytes())
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	return baidu.NewClient("ak", "sk",
		baidu.WithAppID(12345678),
		baidu.WithEndpoints(baidu.Endpoints{RealtimeWS: wsURL}))
}

func closeNormally(conn *websocket.Conn) {
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func TestRecognizeStream(t *testing.T) {
	// 2.5 frames of audio to exercise the short final frame.
	audio := bytes.Repeat([]byte{0x01}, 8000)

	client := newFakeRealtimeServer(t, func(conn *websocket.Conn, got []byte) {
		if len(got) != len(audio) {
			t.Errorf("received %d audio bytes, want %d", len(got), len(audio))
		}
		conn.WriteJSON(map[string]any{"type": "HEARTBEAT"})
		conn.WriteJSON(map[string]any{"type": "MID_TEXT", "result": "你好", "sn": "sn-1"})
		conn.WriteJSON(map[string]any{"type": "FIN_TEXT", "result": "你好世界", "sn": "sn-1"})
		closeNormally(conn)
	})

	var results []*baidu.RealtimeResult
	for result, err := range client.Speech.RecognizeStream(context.Background(), &baidu.RealtimeRequest{
		Audio: bytes.NewReader(audio),
	}) {
		if err != nil {
			t.Fatalf("RecognizeStream() error = %v", err)
		}
		results = append(results, result)
	}

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (heartbeats are not surfaced)", len(results))
	}
	if results[0].Text != "你好" || results[0].Final {
		t.Errorf("results[0] = %+v, want partial 你好", results[0])
	}
	if results[1].Text != "你好世界" || !results[1].Final {
		t.Errorf("results[1] = %+v, want final 你好世界", results[1])
	}
}

func TestRecognizeStreamServerError(t *testing.T) {
	client := newFakeRealtimeServer(t, func(conn *websocket.Conn, got []byte) {
		conn.WriteJSON(map[string]any{"type": "FIN_TEXT", "err_no": 3301, "err_msg": "audio quality"})
		closeNormally(conn)
	})

	var gotErr error
	for _, err := range client.Speech.RecognizeStream(context.Background(), &baidu.RealtimeRequest{
		Audio: bytes.NewReader(make([]byte, 3200)),
	}) {
		if err != nil {
			gotErr = err
			break
		}
	}

	apiErr, ok := baidu.AsError(gotErr)
	if !ok {
		t.Fatalf("AsError(%v) = false, want true", gotErr)
	}
	if apiErr.Code != 3301 {
		t.Errorf("Code = %d, want 3301", apiErr.Code)
	}
}

// newSilentRealtimeServer upgrades and consumes frames without ever
// answering, like a server waiting for more audio.
func newSilentRealtimeServer(t *testing.T) *baidu.Client {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	return baidu.NewClient("ak", "sk",
		baidu.WithAppID(12345678),
		baidu.WithEndpoints(baidu.Endpoints{RealtimeWS: wsURL}))
}

// failingReader yields its data, then a non-EOF error.
type failingReader struct {
	data []byte
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestRecognizeStreamAudioReadFailure(t *testing.T) {
	client := newSilentRealtimeServer(t)

	done := make(chan error, 1)
	go func() {
		var gotErr error
		for _, err := range client.Speech.RecognizeStream(context.Background(), &baidu.RealtimeRequest{
			Audio: &failingReader{data: make([]byte, 3200), err: errors.New("disk read failed")},
		}) {
			if err != nil {
				gotErr = err
				break
			}
		}
		done <- gotErr
	}()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "read audio") {
			t.Fatalf("RecognizeStream() error = %v, want audio read failure", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RecognizeStream did not return after the audio reader failed")
	}
}

func TestRecognizeStreamContextCancel(t *testing.T) {
	client := newSilentRealtimeServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() {
		var gotErr error
		for _, err := range client.Speech.RecognizeStream(ctx, &baidu.RealtimeRequest{
			Audio: bytes.NewReader(nil),
		}) {
			if err != nil {
				gotErr = err
				break
			}
		}
		done <- gotErr
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("RecognizeStream() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RecognizeStream did not return after cancellation")
	}
}

func TestRecognizeStreamRequiresAppID(t *testing.T) {
	client := baidu.NewClient("ak", "sk")

	var gotErr error
	for _, err := range client.Speech.RecognizeStream(context.Background(), &baidu.RealtimeRequest{
		Audio: bytes.NewReader(nil),
	}) {
		gotErr = err
		break
	}
	if gotErr == nil {
		t.Fatal("RecognizeStream() error = nil, want error without app id")
	}
}
