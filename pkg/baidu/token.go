package baidu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/zhiyun/aibridge/pkg/credcache"
)

// Scope strings narrowing what an issued token may authorize. Baidu
// partitions tokens by capability; the console documentation is the source
// of truth for these identifiers.
const (
	ScopeTTS    = "audio_tts_post"
	ScopeOCR    = "brain_ocr_general_basic"
	ScopeImage  = "brain_all_scope"
	ScopeSpeech = "audio_voice_assistant_get"
)

// TokenSafetyMargin is subtracted from a token's reported lifetime so a
// cached token is never used mid-expiry. A provider TTL shorter than the
// margin yields an immediately expired credential; that degenerate case is
// accepted and simply forces an exchange per call.
const TokenSafetyMargin = 5 * time.Minute

// tokenManager acquires and caches access tokens per scope. It is the sole
// writer of the cache; the mutex serializes the check-then-exchange-then-
// publish sequence so concurrent callers cannot trigger redundant fetches.
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

// cacheKey maps a scope to its cache entry key.
func cacheKey(scope string) string {
	if scope == "" {
		return "default"
	}
	return scope
}

// acquire returns a valid token for the scope, exchanging credentials with
// the token endpoint only on a cache miss.
func (m *tokenManager) acquire(ctx context.Context, scope string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := cacheKey(scope)

	if !m.cfg.noCache {
		cred, err := m.cfg.cache.Get(ctx, key)
		if err == nil && cred.Valid(m.now()) {
			return cred.Token, nil
		}
		if err != nil && !errors.Is(err, credcache.ErrNotFound) {
			return "", wrapError(err, "read token cache")
		}
	}

	cred, err := m.exchange(ctx, scope)
	if err != nil {
		return "", err
	}

	if !m.cfg.noCache {
		if err := m.cfg.cache.Put(ctx, key, cred); err != nil {
			return "", wrapError(err, "write token cache")
		}
	}

	return cred.Token, nil
}

// invalidate drops the cached entry for the scope.
func (m *tokenManager) invalidate(ctx context.Context, scope string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cfg.cache.Delete(ctx, cacheKey(scope))
}

// tokenResponse is the token endpoint response. Success carries
// access_token/expires_in; failure carries error/error_description.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`

	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// exchange performs a synchronous client-credentials exchange. No retry,
// no fallback credential: a failed exchange surfaces immediately.
func (m *tokenManager) exchange(ctx context.Context, scope string) (*credcache.Credential, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {m.cfg.apiKey},
		"client_secret": {m.cfg.secretKey},
	}
	if scope != "" {
		form.Set("scope", scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.endpoints.Token,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, wrapError(err, "create token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.cfg.httpClient.Do(req)
	if err != nil {
		return nil, wrapError(err, "token exchange")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(err, "read token response")
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("decode token response (status %d): %w", resp.StatusCode, err)
	}

	if tr.ErrorCode != "" {
		return nil, &AuthError{
			Code:        tr.ErrorCode,
			Description: tr.ErrorDescription,
			HTTPStatus:  resp.StatusCode,
		}
	}
	if resp.StatusCode != http.StatusOK || tr.AccessToken == "" {
		return nil, &AuthError{
			Code:        fmt.Sprintf("http_%d", resp.StatusCode),
			Description: strings.TrimSpace(string(body)),
			HTTPStatus:  resp.StatusCode,
		}
	}

	now := m.now()
	cred := &credcache.Credential{
		Token:     tr.AccessToken,
		ExpiresAt: now.Add(time.Duration(tr.ExpiresIn)*time.Second - TokenSafetyMargin),
	}

	slog.Debug("baidu token exchanged",
		"scope", scope,
		"expires_in", tr.ExpiresIn,
		"expires_at", cred.ExpiresAt)

	return cred, nil
}
