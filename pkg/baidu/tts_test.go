package baidu_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/zhiyun/aibridge/pkg/baidu"
)

func TestTTSSynthesize(t *testing.T) {
	ctx := context.Background()
	audio := []byte{0xff, 0xfb, 0x90, 0x00} // mp3 frame header

	client, counter := newFakeVendor(t, "T1", 3600, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text2audio" {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		form := r.PostForm
		if form.Get("tok") != "T1" {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}
		if form.Get("tex") != "你好" {
			t.Errorf("tex = %q, want %q", form.Get("tex"), "你好")
		}
		// Provider-neutral defaults for unset optional parameters.
		for param, want := range map[string]string{
			"spd": "5", "pit": "5", "vol": "5", "per": "0",
			"aue": "3", "lan": "zh", "ctp": "1",
		} {
			if got := form.Get(param); got != want {
				t.Errorf("%s = %q, want %q", param, got, want)
			}
		}
		w.Header().Set("Content-Type", "audio/mp3")
		w.Write(audio)
	})

	resp, err := client.TTS.Synthesize(ctx, &baidu.TTSRequest{Text: "你好"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !bytes.Equal(resp.Audio, audio) {
		t.Fatalf("Audio = %v, want %v", resp.Audio, audio)
	}
	if resp.Format != baidu.AudioMP3 {
		t.Fatalf("Format = %q, want mp3", resp.Format)
	}
	if got := counter.n.Load(); got != 1 {
		t.Fatalf("token exchanges = %d, want 1", got)
	}
}

func TestTTSJSONBodyIsVendorError(t *testing.T) {
	ctx := context.Background()

	client, _ := newFakeVendor(t, "T1", 3600, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"err_no":502,"err_msg":"token expired","sn":"abc"}`))
	})

	_, err := client.TTS.Synthesize(ctx, &baidu.TTSRequest{Text: "hi"})
	vendorErr, ok := baidu.AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if vendorErr.Message != "token expired" {
		t.Fatalf("Message = %q, want %q", vendorErr.Message, "token expired")
	}
	if vendorErr.Code != 502 {
		t.Fatalf("Code = %d, want 502", vendorErr.Code)
	}
}

func TestTTSExplicitParameters(t *testing.T) {
	ctx := context.Background()
	speed, pitch, volume := 9, 3, 15

	client, _ := newFakeVendor(t, "T1", 3600, func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		form := r.PostForm
		for param, want := range map[string]string{
			"spd": "9", "pit": "3", "vol": "15", "per": "4", "aue": "5",
		} {
			if got := form.Get(param); got != want {
				t.Errorf("%s = %q, want %q", param, got, want)
			}
		}
		w.Header().Set("Content-Type", "audio/wav")
		w.Write([]byte("RIFF"))
	})

	resp, err := client.TTS.Synthesize(ctx, &baidu.TTSRequest{
		Text:   "测试",
		Speed:  &speed,
		Pitch:  &pitch,
		Volume: &volume,
		Voice:  baidu.VoiceEmotionalFem,
		Format: baidu.AudioWAV,
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if resp.Format != baidu.AudioWAV {
		t.Fatalf("Format = %q, want wav", resp.Format)
	}
}
