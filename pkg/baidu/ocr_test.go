package baidu_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"slices"
	"testing"

	"github.com/zhiyun/aibridge/pkg/baidu"
)

func TestOCRGeneral(t *testing.T) {
	ctx := context.Background()
	image := []byte("fake-png-bytes")

	client, counter := newFakeVendor(t, "T1", 3600, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/2.0/ocr/v1/general_basic" {
			http.NotFound(w, r)
			return
		}
		r.ParseForm()
		form := r.PostForm
		if form.Get("access_token") != "T1" {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}
		decoded, err := base64.StdEncoding.DecodeString(form.Get("image"))
		if err != nil || string(decoded) != string(image) {
			t.Errorf("image round-trip failed: %v", err)
		}
		if got := form.Get("language_type"); got != "CHN_ENG" {
			t.Errorf("language_type = %q, want CHN_ENG", got)
		}
		if got := form.Get("detect_direction"); got != "false" {
			t.Errorf("detect_direction = %q, want false", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"words_result":[{"words":"你好"},{"words":"世界"}],"words_result_num":2}`))
	})

	resp, err := client.OCR.General(ctx, &baidu.OCRRequest{Image: image})
	if err != nil {
		t.Fatalf("General: %v", err)
	}
	want := []string{"你好", "世界"}
	if !slices.Equal(resp.Words, want) {
		t.Fatalf("Words = %v, want %v", resp.Words, want)
	}
	if got := counter.n.Load(); got != 1 {
		t.Fatalf("token exchanges = %d, want 1", got)
	}
}

func TestOCRReusesTokenAcrossCalls(t *testing.T) {
	ctx := context.Background()

	client, counter := newFakeVendor(t, "T1", 3600, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"words_result":[]}`))
	})

	for i := 0; i < 3; i++ {
		if _, err := client.OCR.General(ctx, &baidu.OCRRequest{Image: []byte("x")}); err != nil {
			t.Fatalf("General #%d: %v", i, err)
		}
	}
	if got := counter.n.Load(); got != 1 {
		t.Fatalf("token exchanges = %d, want 1 across repeated OCR calls", got)
	}
}

func TestOCRAccurateHitsAccurateEndpoint(t *testing.T) {
	ctx := context.Background()

	var path string
	client, _ := newFakeVendor(t, "T1", 3600, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"words_result":[{"words":"精确"}]}`))
	})

	resp, err := client.OCR.Accurate(ctx, &baidu.OCRRequest{Image: []byte("x")})
	if err != nil {
		t.Fatalf("Accurate: %v", err)
	}
	if path != "/rest/2.0/ocr/v1/accurate_basic" {
		t.Fatalf("path = %q, want accurate_basic", path)
	}
	if len(resp.Words) != 1 || resp.Words[0] != "精确" {
		t.Fatalf("Words = %v, want [精确]", resp.Words)
	}
}

func TestOCRErrorEnvelope(t *testing.T) {
	ctx := context.Background()

	client, _ := newFakeVendor(t, "T1", 3600, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error_code":216201,"error_msg":"image format error"}`))
	})

	_, err := client.OCR.General(ctx, &baidu.OCRRequest{Image: []byte("not-an-image")})
	vendorErr, ok := baidu.AsError(err)
	if !ok {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if vendorErr.Code != 216201 || vendorErr.Message != "image format error" {
		t.Fatalf("error = %v, want code=216201 msg=image format error", vendorErr)
	}
}

func TestOCRMalformedBodyFailsClosed(t *testing.T) {
	ctx := context.Background()

	client, _ := newFakeVendor(t, "T1", 3600, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	})

	_, err := client.OCR.General(ctx, &baidu.OCRRequest{Image: []byte("x")})
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if _, ok := baidu.AsError(err); ok {
		t.Fatalf("malformed body must not map to a vendor error: %v", err)
	}
}
