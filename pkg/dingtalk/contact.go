package dingtalk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// ContactService reads the organization address book.
type ContactService struct {
	client *Client
}

func newContactService(c *Client) *ContactService {
	return &ContactService{client: c}
}

// User is a contact record.
type User struct {
	UserID    string `json:"userId"`
	UnionID   string `json:"unionId"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	Title     string `json:"title"`
	JobNumber string `json:"jobNumber"`
	Active    bool   `json:"active"`
}

// GetUser fetches a user by their userId.
func (s *ContactService) GetUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, errors.New("dingtalk: empty user id")
	}

	var user User
	path := "/contact/users/" + url.PathEscape(userID)
	if err := s.client.doJSON(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
