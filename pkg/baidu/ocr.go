package baidu

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// OCRService provides text recognition operations.
type OCRService struct {
	client *Client
}

// newOCRService creates a new OCR service.
func newOCRService(client *Client) *OCRService {
	return &OCRService{client: client}
}

// ocrAPIResponse is the OCR endpoint response. A failure carries
// error_code/error_msg instead of words_result.
type ocrAPIResponse struct {
	WordsResult []struct {
		Words string `json:"words"`
	} `json:"words_result"`
	WordsResultNum int `json:"words_result_num"`
	Direction      int `json:"direction"`

	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// General performs general-purpose text recognition.
func (s *OCRService) General(ctx context.Context, req *OCRRequest) (*OCRResponse, error) {
	return s.recognize(ctx, s.client.config.endpoints.OCRGeneral, req)
}

// Accurate performs high-accuracy text recognition. It is slower and has a
// lower free quota than General.
func (s *OCRService) Accurate(ctx context.Context, req *OCRRequest) (*OCRResponse, error) {
	return s.recognize(ctx, s.client.config.endpoints.OCRAccurate, req)
}

func (s *OCRService) recognize(ctx context.Context, endpoint string, req *OCRRequest) (*OCRResponse, error) {
	cfg := s.client.config

	token, err := s.client.AccessToken(ctx, ScopeOCR)
	if err != nil {
		return nil, err
	}

	lang := req.Language
	if lang == "" {
		lang = OCRChineseEnglish
	}

	form := url.Values{
		"access_token":     {token},
		"image":            {base64.StdEncoding.EncodeToString(req.Image)},
		"language_type":    {string(lang)},
		"detect_direction": {strconv.FormatBool(req.DetectDirection)},
		"detect_language":  {strconv.FormatBool(req.DetectLanguage)},
		"paragraph":        {strconv.FormatBool(req.Paragraph)},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
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

	var apiResp ocrAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, wrapError(err, "decode response")
	}

	if apiResp.ErrorCode != 0 {
		return nil, &Error{
			Code:       apiResp.ErrorCode,
			Message:    apiResp.ErrorMsg,
			HTTPStatus: resp.StatusCode,
		}
	}

	words := make([]string, 0, len(apiResp.WordsResult))
	for _, item := range apiResp.WordsResult {
		words = append(words, item.Words)
	}

	return &OCRResponse{
		Words:     words,
		Direction: apiResp.Direction,
	}, nil
}
