package dingtalk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	"github.com/zhiyun/aibridge/pkg/dingtalk"
)

func TestRobotSendText(t *testing.T) {
	var captured struct {
		RobotCode string   `json:"robotCode"`
		UserIDs   []string `json:"userIds"`
		MsgKey    string   `json:"msgKey"`
		MsgParam  string   `json:"msgParam"`
	}
	var capturedToken string

	client, _ := newFakePlatform(t, "tok1", 7200, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robot/oToMessages/batchSend" {
			http.NotFound(w, r)
			return
		}
		capturedToken = r.Header.Get("x-acs-dingtalk-access-token")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"processQueryKey": "pqk-1",
		})
	}, dingtalk.WithRobotCode("robot-1"))

	resp, err := client.Robot.SendText(context.Background(), "hello", "user-a", "user-b")
	if err != nil {
		t.Fatalf("SendText() error = %v", err)
	}
	if resp.ProcessQueryKey != "pqk-1" {
		t.Fatalf("ProcessQueryKey = %q, want %q", resp.ProcessQueryKey, "pqk-1")
	}

	if capturedToken != "tok1" {
		t.Fatalf("access token header = %q, want %q", capturedToken, "tok1")
	}
	if captured.RobotCode != "robot-1" {
		t.Fatalf("robotCode = %q, want %q", captured.RobotCode, "robot-1")
	}
	if want := []string{"user-a", "user-b"}; !reflect.DeepEqual(captured.UserIDs, want) {
		t.Fatalf("userIds = %v, want %v", captured.UserIDs, want)
	}
	if captured.MsgKey != dingtalk.MsgKeyText {
		t.Fatalf("msgKey = %q, want %q", captured.MsgKey, dingtalk.MsgKeyText)
	}

	// msgParam is a JSON document carried as a string.
	var param map[string]string
	if err := json.Unmarshal([]byte(captured.MsgParam), &param); err != nil {
		t.Fatalf("msgParam is not valid JSON: %v", err)
	}
	if param["content"] != "hello" {
		t.Fatalf("msgParam content = %q, want %q", param["content"], "hello")
	}
}

func TestRobotSendMarkdown(t *testing.T) {
	var captured struct {
		MsgKey   string `json:"msgKey"`
		MsgParam string `json:"msgParam"`
	}

	client, _ := newFakePlatform(t, "tok1", 7200, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"processQueryKey": "pqk-2"})
	}, dingtalk.WithRobotCode("robot-1"))

	msg := &dingtalk.MarkdownMessage{Title: "Report", Text: "# done"}
	if _, err := client.Robot.SendMarkdown(context.Background(), msg, "user-a"); err != nil {
		t.Fatalf("SendMarkdown() error = %v", err)
	}

	if captured.MsgKey != dingtalk.MsgKeyMarkdown {
		t.Fatalf("msgKey = %q, want %q", captured.MsgKey, dingtalk.MsgKeyMarkdown)
	}
	var param dingtalk.MarkdownMessage
	if err := json.Unmarshal([]byte(captured.MsgParam), &param); err != nil {
		t.Fatalf("msgParam is not valid JSON: %v", err)
	}
	if param.Title != "Report" || param.Text != "# done" {
		t.Fatalf("msgParam = %+v, want %+v", param, *msg)
	}
}

func TestRobotBatchSendRequiresRobotCode(t *testing.T) {
	client, _ := newFakePlatform(t, "tok1", 7200, nil)

	_, err := client.Robot.SendText(context.Background(), "hello", "user-a")
	if err == nil {
		t.Fatal("SendText() error = nil, want error without robot code")
	}
}

func TestRobotBatchSendVendorError(t *testing.T) {
	client, _ := newFakePlatform(t, "tok1", 7200, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "Throttling.SystemBusy",
			"message": "system busy",
		})
	}, dingtalk.WithRobotCode("robot-1"))

	_, err := client.Robot.SendText(context.Background(), "hello", "user-a")
	apiErr, ok := dingtalk.AsError(err)
	if !ok {
		t.Fatalf("AsError(%v) = false, want true", err)
	}
	if !apiErr.IsRateLimit() {
		t.Fatalf("IsRateLimit() = false, want true for %v", apiErr)
	}
}

func TestRobotBatchSendMalformedBodyFailsClosed(t *testing.T) {
	client, _ := newFakePlatform(t, "tok1", 7200, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}, dingtalk.WithRobotCode("robot-1"))

	_, err := client.Robot.SendText(context.Background(), "hello", "user-a")
	if err == nil {
		t.Fatal("SendText() error = nil, want error")
	}
	if _, ok := dingtalk.AsError(err); ok {
		t.Fatalf("AsError(%v) = true, want transport error for non-envelope body", err)
	}
}
