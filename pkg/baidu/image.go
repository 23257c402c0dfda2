package baidu

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ImageService provides ERNIE-ViLG image generation operations.
type ImageService struct {
	client *Client
}

// newImageService creates a new image service.
func newImageService(client *Client) *ImageService {
	return &ImageService{client: client}
}

// imageGenRequest is the provider request body.
type imageGenRequest struct {
	AccessToken   string  `json:"access_token"`
	Text          string  `json:"text"`
	Style         string  `json:"style"`
	Resolution    string  `json:"resolution"`
	Num           int     `json:"num"`
	Steps         int     `json:"steps"`
	GuidanceScale float64 `json:"guidance_scale"`
}

// imageGenResponse is the provider response. A failure carries
// error_code/error_msg instead of data.
type imageGenResponse struct {
	Data struct {
		Image string `json:"image"` // base64 encoded image
	} `json:"data"`

	ErrorCode int    `json:"error_code"`
	ErrorMsg  string `json:"error_msg"`
}

// Generate creates an image from a text prompt and returns the decoded
// image bytes.
//
// Example:
//
//	resp, err := client.Image.Generate(ctx, &baidu.ImageGenerateRequest{
//	    Prompt:     "山间日落，水墨画",
//	    Resolution: "1024x1024",
//	})
func (s *ImageService) Generate(ctx context.Context, req *ImageGenerateRequest) (*ImageResponse, error) {
	cfg := s.client.config

	token, err := s.client.AccessToken(ctx, ScopeImage)
	if err != nil {
		return nil, err
	}

	genReq := imageGenRequest{
		AccessToken:   token,
		Text:          req.Prompt,
		Style:         req.Style,
		Resolution:    req.Resolution,
		Num:           req.Num,
		Steps:         req.Steps,
		GuidanceScale: req.GuidanceScale,
	}
	if genReq.Style == "" {
		genReq.Style = "默认"
	}
	if genReq.Resolution == "" {
		genReq.Resolution = "1024x1024"
	}
	if genReq.Num == 0 {
		genReq.Num = 1
	}
	if genReq.Steps == 0 {
		genReq.Steps = 30
	}
	if genReq.GuidanceScale == 0 {
		genReq.GuidanceScale = 7.5
	}

	jsonBytes, err := json.Marshal(genReq)
	if err != nil {
		return nil, wrapError(err, "marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.endpoints.Image,
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

	var apiResp imageGenResponse
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
	if apiResp.Data.Image == "" {
		return nil, fmt.Errorf("image response missing data.image field")
	}

	image, err := base64.StdEncoding.DecodeString(apiResp.Data.Image)
	if err != nil {
		return nil, wrapError(err, "decode image data")
	}

	return &ImageResponse{Image: image}, nil
}
