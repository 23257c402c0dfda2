package baidu

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// SpeechService provides speech recognition operations.
type SpeechService struct {
	client *Client
}

// newSpeechService creates a new speech service.
func newSpeechService(client *Client) *SpeechService {
	return &SpeechService{client: client}
}

// speechAPIRequest is the short-speech endpoint request body.
type speechAPIRequest struct {
	Format  string `json:"format"`
	Rate    int    `json:"rate"`
	Channel int    `json:"channel"`
	CUID    string `json:"cuid"`
	Token   string `json:"token"`
	DevPID  int    `json:"dev_pid"`
	Speech  string `json:"speech"` // base64 encoded audio
	Len     int    `json:"len"`    // raw audio byte length
}

// speechAPIResponse is the short-speech endpoint response. err_no 0 is
// success; any other value is a vendor error.
type speechAPIResponse struct {
	ErrNo    int      `json:"err_no"`
	ErrMsg   string   `json:"err_msg"`
	SN       string   `json:"sn"`
	CorpusNo string   `json:"corpus_no"`
	Result   []string `json:"result"`
}

// Recognize transcribes a short (up to 60 seconds) audio clip.
//
// The audio must be 16 kHz mono; wav, pcm and amr containers are accepted.
func (s *SpeechService) Recognize(ctx context.Context, req *SpeechRequest) (*SpeechResponse, error) {
	cfg := s.client.config

	token, err := s.client.AccessToken(ctx, ScopeSpeech)
	if err != nil {
		return nil, err
	}

	apiReq := speechAPIRequest{
		Format:  string(req.Format),
		Rate:    req.SampleRate,
		Channel: req.Channels,
		CUID:    cfg.cuid,
		Token:   token,
		DevPID:  req.DevPID,
		Speech:  base64.StdEncoding.EncodeToString(req.Audio),
		Len:     len(req.Audio),
	}
	if apiReq.Format == "" {
		apiReq.Format = string(SpeechWAV)
	}
	if apiReq.Rate == 0 {
		apiReq.Rate = 16000
	}
	if apiReq.Channel == 0 {
		apiReq.Channel = 1
	}
	if apiReq.DevPID == 0 {
		apiReq.DevPID = DevPIDMandarin
	}

	jsonBytes, err := json.Marshal(apiReq)
	if err != nil {
		return nil, wrapError(err, "marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.endpoints.Speech,
		bytes.NewReader(jsonBytes))
	if err != nil {
		return nil, wrapError(err, "create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := cfg.httpClient.Do(httpReq)
	if err != nil {
		return nil, wrapError(err, "send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(err, "read response")
	}

	var apiResp speechAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, wrapError(err, "decode response")
	}

	if apiResp.ErrNo != 0 {
		return nil, &Error{
			Code:       apiResp.ErrNo,
			Message:    apiResp.ErrMsg,
			HTTPStatus: resp.StatusCode,
		}
	}

	slog.Debug("baidu speech recognized",
		"audio_len", len(req.Audio),
		"results", len(apiResp.Result),
		"sn", apiResp.SN)

	return &SpeechResponse{
		Results: apiResp.Result,
		SN:      apiResp.SN,
	}, nil
}
