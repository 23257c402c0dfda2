package dingtalk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/zhiyun/aibridge/pkg/dingtalk"
)

func TestContactGetUser(t *testing.T) {
	client, counter := newFakePlatform(t, "tok1", 7200, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contact/users/user-a" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "bad method", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"userId": "user-a",
			"name":   "张三",
			"mobile": "13800000000",
			"active": true,
		})
	})

	user, err := client.Contact.GetUser(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if user.UserID != "user-a" || user.Name != "张三" || !user.Active {
		t.Fatalf("GetUser() = %+v, want user-a/张三/active", user)
	}
	if n := counter.n.Load(); n != 1 {
		t.Fatalf("token exchanges = %d, want 1", n)
	}
}

func TestContactGetUserNotFound(t *testing.T) {
	client, _ := newFakePlatform(t, "tok1", 7200, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "NotFound.User",
			"message": "user not found",
		})
	})

	_, err := client.Contact.GetUser(context.Background(), "ghost")
	apiErr, ok := dingtalk.AsError(err)
	if !ok {
		t.Fatalf("AsError(%v) = false, want true", err)
	}
	if apiErr.Code != "NotFound.User" {
		t.Fatalf("Code = %q, want %q", apiErr.Code, "NotFound.User")
	}
}
