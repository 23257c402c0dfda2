package dingtalk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/zhiyun/aibridge/pkg/credcache"
)

// TokenSafetyMargin is subtracted from a token's reported lifetime so a
// cached token is never used mid-expiry.
const TokenSafetyMargin = 5 * time.Minute

// tokenCacheKey is the single cache entry key. DingTalk issues one
// app-level token; there is no scope partitioning.
const tokenCacheKey = "default"

// tokenManager acquires and caches the app access token. The mutex
// serializes the check-then-exchange-then-publish sequence so concurrent
// callers cannot trigger redundant exchanges.
type tokenManager struct {
	mu  sync.Mutex
	cfg *clientConfig
	now func() time.Time
}

func newTokenManager(cfg *clientConfig) *tokenManager {
	return &tokenManager{
		cfg: cfg,
		now: time.Now,
	}
}

// acquire returns a valid token, exchanging the app credentials only on a
// cache miss.
func (m *tokenManager) acquire(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.noCache {
		cred, err := m.cfg.cache.Get(ctx, tokenCacheKey)
		if err == nil && cred.Valid(m.now()) {
			return cred.Token, nil
		}
		if err != nil && !errors.Is(err, credcache.ErrNotFound) {
			return "", wrapError(err, "read token cache")
		}
	}

	cred, err := m.exchange(ctx)
	if err != nil {
		return "", err
	}

	if !m.cfg.noCache {
		if err := m.cfg.cache.Put(ctx, tokenCacheKey, cred); err != nil {
			return "", wrapError(err, "write token cache")
		}
	}

	return cred.Token, nil
}

// invalidate drops the cached token.
func (m *tokenManager) invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.cache.Delete(ctx, tokenCacheKey)
}

// tokenResponse is the /oauth2/accessToken response. expireIn is in
// seconds, typically 7200.
type tokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpireIn    int64  `json:"expireIn"`
}

// exchange performs a synchronous credential exchange. No retry: a failed
// exchange surfaces immediately.
func (m *tokenManager) exchange(ctx context.Context) (*credcache.Credential, error) {
	reqBody, err := json.Marshal(map[string]string{
		"appKey":    m.cfg.appKey,
		"appSecret": m.cfg.appSecret,
	})
	if err != nil {
		return nil, wrapError(err, "marshal token request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		m.cfg.baseURL+"/oauth2/accessToken", bytes.NewReader(reqBody))
	if err != nil {
		return nil, wrapError(err, "create token request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.cfg.httpClient.Do(req)
	if err != nil {
		return nil, wrapError(err, "token exchange")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(err, "read token response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, wrapError(err, "decode token response")
	}
	if tr.AccessToken == "" {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	now := m.now()
	cred := &credcache.Credential{
		Token:     tr.AccessToken,
		ExpiresAt: now.Add(time.Duration(tr.ExpireIn)*time.Second - TokenSafetyMargin),
	}

	slog.Debug("dingtalk token exchanged",
		"expire_in", tr.ExpireIn,
		"expires_at", cred.ExpiresAt)

	return cred, nil
}
