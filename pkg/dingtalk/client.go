package dingtalk

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zhiyun/aibridge/pkg/credcache"
)

const (
	// DefaultBaseURL is the DingTalk open platform v1.0 API base URL.
	DefaultBaseURL = "https://api.dingtalk.com/v1.0"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second
)

// Client is the DingTalk open platform API client.
type Client struct {
	// Robot provides robot messaging operations.
	Robot *RobotService

	// Contact provides user/contact operations.
	Contact *ContactService

	config *clientConfig
	tokens *tokenManager
}

// clientConfig holds the client configuration.
type clientConfig struct {
	appKey     string
	appSecret  string
	robotCode  string
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	proxy      *url.URL
	cache      credcache.Store
	noCache    bool
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithRobotCode sets the default robot code used by messaging operations.
func WithRobotCode(code string) Option {
	return func(c *clientConfig) {
		c.robotCode = code
	}
}

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. It takes precedence over
// WithTimeout and WithProxy.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithProxy routes all outbound calls through the given proxy address.
func WithProxy(proxy *url.URL) Option {
	return func(c *clientConfig) {
		c.proxy = proxy
	}
}

// WithCredentialStore sets the token cache backend. The default is an
// in-memory store scoped to the client instance.
func WithCredentialStore(store credcache.Store) Option {
	return func(c *clientConfig) {
		c.cache = store
	}
}

// WithoutTokenCache disables token caching.
func WithoutTokenCache() Option {
	return func(c *clientConfig) {
		c.noCache = true
	}
}

// NewClient creates a new DingTalk client.
//
// appKey and appSecret are the application credentials from the DingTalk
// developer console.
func NewClient(appKey, appSecret string, opts ...Option) *Client {
	cfg := &clientConfig{
		appKey:    appKey,
		appSecret: appSecret,
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.httpClient == nil {
		transport := http.DefaultTransport
		if cfg.proxy != nil {
			transport = &http.Transport{
				Proxy: http.ProxyURL(cfg.proxy),
			}
		}
		cfg.httpClient = &http.Client{
			Timeout:   cfg.timeout,
			Transport: transport,
		}
	}
	if cfg.cache == nil {
		cfg.cache = credcache.NewMemory()
	}

	c := &Client{
		config: cfg,
		tokens: newTokenManager(cfg),
	}

	c.Robot = newRobotService(c)
	c.Contact = newContactService(c)

	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.config.baseURL
}

// AccessToken returns a valid access token, exchanging credentials only
// when the cache holds no usable entry.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	return c.tokens.acquire(ctx)
}

// InvalidateToken drops the cached token so the next call exchanges fresh
// credentials.
func (c *Client) InvalidateToken(ctx context.Context) error {
	return c.tokens.invalidate(ctx)
}

// doJSON issues an authenticated JSON call and decodes the response into
// result. A vendor error body is surfaced as *Error; an undecodable body
// fails closed as a transport error.
func (c *Client) doJSON(ctx context.Context, method, path string, body, result any) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return err
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return wrapError(err, "marshal request body")
		}
		bodyReader = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.baseURL+path, bodyReader)
	if err != nil {
		return wrapError(err, "create request")
	}
	req.Header.Set("x-acs-dingtalk-access-token", token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.config.httpClient.Do(req)
	if err != nil {
		return wrapError(err, "send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(err, "read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return wrapError(err, "unmarshal response")
		}
	}

	return nil
}
