package baidu

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// TTSService provides speech synthesis operations.
type TTSService struct {
	client *Client
}

// newTTSService creates a new TTS service.
func newTTSService(client *Client) *TTSService {
	return &TTSService{client: client}
}

// ttsErrorResponse is the JSON body the provider returns instead of audio
// bytes when synthesis fails.
type ttsErrorResponse struct {
	ErrNo  int    `json:"err_no"`
	ErrMsg string `json:"err_msg"`
	SN     string `json:"sn"`
}

// Synthesize converts text to speech.
//
// A success response is raw audio in the requested format. A response with
// an application/json content type is a vendor error envelope and is
// surfaced as *Error carrying the provider's err_msg.
func (s *TTSService) Synthesize(ctx context.Context, req *TTSRequest) (*TTSResponse, error) {
	cfg := s.client.config

	token, err := s.client.AccessToken(ctx, ScopeTTS)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = AudioMP3
	}
	lang := req.Language
	if lang == "" {
		lang = "zh"
	}

	form := url.Values{
		"tex":  {req.Text},
		"tok":  {token},
		"cuid": {cfg.cuid},
		"ctp":  {"1"},
		"lan":  {lang},
		"spd":  {strconv.Itoa(orDefault(req.Speed, 5))},
		"pit":  {strconv.Itoa(orDefault(req.Pitch, 5))},
		"vol":  {strconv.Itoa(orDefault(req.Volume, 5))},
		"per":  {strconv.Itoa(int(req.Voice))},
		"aue":  {format.aueCode()},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.endpoints.TTS,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, wrapError(err, "create request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := cfg.httpClient.Do(httpReq)
	if err != nil {
		return nil, wrapError(err, "send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(err, "read response")
	}

	// An error outcome arrives as JSON; a success is the audio itself.
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		var envelope ttsErrorResponse
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, wrapError(err, "decode error response")
		}
		return nil, &Error{
			Code:       envelope.ErrNo,
			Message:    envelope.ErrMsg,
			HTTPStatus: resp.StatusCode,
		}
	}

	slog.Debug("baidu tts synthesized",
		"text_len", len(req.Text),
		"format", format,
		"audio_len", len(body))

	return &TTSResponse{
		Audio:  body,
		Format: format,
	}, nil
}

// orDefault dereferences an optional int parameter, substituting the
// provider default when unset.
func orDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
