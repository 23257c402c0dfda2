package dingtalk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Message keys understood by the robot batch-send endpoint.
const (
	MsgKeyText     = "sampleText"
	MsgKeyMarkdown = "sampleMarkdown"
	MsgKeyLink     = "sampleLink"
)

// RobotService sends one-to-one robot messages.
type RobotService struct {
	client *Client
}

func newRobotService(c *Client) *RobotService {
	return &RobotService{client: c}
}

// BatchSendRequest is a raw one-to-one robot message. MsgParam must be the
// JSON encoding of the message payload for MsgKey.
type BatchSendRequest struct {
	// RobotCode identifies the sending robot. When empty, the client's
	// configured robot code is used.
	RobotCode string `json:"robotCode"`

	// UserIDs are the recipients.
	UserIDs []string `json:"userIds"`

	// MsgKey selects the message template, for example "sampleText".
	MsgKey string `json:"msgKey"`

	// MsgParam is the JSON-encoded template payload.
	MsgParam string `json:"msgParam"`
}

// BatchSendResponse reports delivery bookkeeping for a batch send.
type BatchSendResponse struct {
	// ProcessQueryKey can be used to query delivery status.
	ProcessQueryKey string `json:"processQueryKey"`

	// InvalidStaffIDList lists recipients that could not be resolved.
	InvalidStaffIDList []string `json:"invalidStaffIdList"`

	// FlowControlledStaffIDList lists recipients dropped by rate limiting.
	FlowControlledStaffIDList []string `json:"flowControlledStaffIdList"`
}

// MarkdownMessage is the payload for MsgKeyMarkdown.
type MarkdownMessage struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// LinkMessage is the payload for MsgKeyLink.
type LinkMessage struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	MessageURL string `json:"messageUrl"`
	PicURL     string `json:"picUrl"`
}

// BatchSend delivers a message to the given users. The robot code falls
// back to the client default when the request leaves it empty.
func (s *RobotService) BatchSend(ctx context.Context, req *BatchSendRequest) (*BatchSendResponse, error) {
	if req == nil {
		return nil, errors.New("dingtalk: nil request")
	}
	if len(req.UserIDs) == 0 {
		return nil, errors.New("dingtalk: no recipients")
	}

	body := *req
	if body.RobotCode == "" {
		body.RobotCode = s.client.config.robotCode
	}
	if body.RobotCode == "" {
		return nil, errors.New("dingtalk: robot code not set")
	}

	var result BatchSendResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/robot/oToMessages/batchSend", &body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendText sends a plain text message to the given users.
func (s *RobotService) SendText(ctx context.Context, text string, userIDs ...string) (*BatchSendResponse, error) {
	param, err := json.Marshal(map[string]string{"content": text})
	if err != nil {
		return nil, wrapError(err, "marshal message payload")
	}
	return s.BatchSend(ctx, &BatchSendRequest{
		UserIDs:  userIDs,
		MsgKey:   MsgKeyText,
		MsgParam: string(param),
	})
}

// SendMarkdown sends a markdown message to the given users.
func (s *RobotService) SendMarkdown(ctx context.Context, msg *MarkdownMessage, userIDs ...string) (*BatchSendResponse, error) {
	if msg == nil {
		return nil, errors.New("dingtalk: nil message")
	}
	param, err := json.Marshal(msg)
	if err != nil {
		return nil, wrapError(err, "marshal message payload")
	}
	return s.BatchSend(ctx, &BatchSendRequest{
		UserIDs:  userIDs,
		MsgKey:   MsgKeyMarkdown,
		MsgParam: string(param),
	})
}

// SendLink sends a link card message to the given users.
func (s *RobotService) SendLink(ctx context.Context, msg *LinkMessage, userIDs ...string) (*BatchSendResponse, error) {
	if msg == nil {
		return nil, errors.New("dingtalk: nil message")
	}
	param, err := json.Marshal(msg)
	if err != nil {
		return nil, wrapError(err, "marshal message payload")
	}
	return s.BatchSend(ctx, &BatchSendRequest{
		UserIDs:  userIDs,
		MsgKey:   MsgKeyLink,
		MsgParam: string(param),
	})
}
