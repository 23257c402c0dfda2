package baidu

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/zhiyun/aibridge/pkg/credcache"
)

const (
	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 30 * time.Second
)

// Endpoints holds the service endpoint URLs. All fields default to the
// public Baidu AI Cloud endpoints; override them for testing or for
// private deployments.
type Endpoints struct {
	Token       string
	TTS         string
	OCRGeneral  string
	OCRAccurate string
	Image       string
	Speech      string
	RealtimeWS  string
}

// DefaultEndpoints returns the public Baidu AI Cloud endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Token:       "https://aip.baidubce.com/oauth/2.0/token",
		TTS:         "https://tsn.baidubce.com/text2audio",
		OCRGeneral:  "https://aip.baidubce.com/rest/2.0/ocr/v1/general_basic",
		OCRAccurate: "https://aip.baidubce.com/rest/2.0/ocr/v1/accurate_basic",
		Image:       "https://aip.baidubce.com/rpc/2.0/ernievilg/v1/txt2img",
		Speech:      "https://vop.baidu.com/server_api",
		RealtimeWS:  "wss://vop.baidu.com/realtime_asr",
	}
}

// Client is the Baidu AI Cloud API client.
type Client struct {
	// TTS provides speech synthesis operations.
	TTS *TTSService

	// OCR provides text recognition operations.
	OCR *OCRService

	// Image provides ERNIE-ViLG image generation operations.
	Image *ImageService

	// Speech provides short-speech and realtime recognition operations.
	Speech *SpeechService

	config *clientConfig
	tokens *tokenManager
}

// clientConfig holds the client configuration.
type clientConfig struct {
	apiKey     string
	secretKey  string
	endpoints  Endpoints
	httpClient *http.Client
	timeout    time.Duration
	proxy      *url.URL
	cache      credcache.Store
	noCache    bool
	cuid       string
	appID      int
}

// Option is a function that configures the client.
type Option func(*clientConfig)

// WithEndpoints overrides the service endpoint URLs.
func WithEndpoints(ep Endpoints) Option {
	return func(c *clientConfig) {
		c.endpoints = ep
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

// WithProxy routes all outbound calls through the given proxy address,
// e.g. "http://127.0.0.1:7890".
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

// WithoutTokenCache disables token caching; every authenticated call
// performs a fresh token exchange.
func WithoutTokenCache() Option {
	return func(c *clientConfig) {
		c.noCache = true
	}
}

// WithCUID sets the device identifier sent with speech requests.
func WithCUID(cuid string) Option {
	return func(c *clientConfig) {
		c.cuid = cuid
	}
}

// WithAppID sets the numeric application ID from the console. It is only
// required for realtime streaming recognition, which authenticates with
// appid/appkey instead of an OAuth token.
func WithAppID(appID int) Option {
	return func(c *clientConfig) {
		c.appID = appID
	}
}

// NewClient creates a new Baidu AI Cloud client.
//
// apiKey and secretKey are the application credentials from the Baidu AI
// console.
//
// Example:
//
//	client := baidu.NewClient(apiKey, secretKey)
//	client := baidu.NewClient(apiKey, secretKey, baidu.WithTimeout(60*time.Second))
func NewClient(apiKey, secretKey string, opts ...Option) *Client {
	cfg := &clientConfig{
		apiKey:    apiKey,
		secretKey: secretKey,
		endpoints: DefaultEndpoints(),
		timeout:   DefaultTimeout,
		cuid:      "aibridge_client",
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

	// Initialize services
	c.TTS = newTTSService(c)
	c.OCR = newOCRService(c)
	c.Image = newImageService(c)
	c.Speech = newSpeechService(c)

	return c
}

// Endpoints returns the configured endpoint URLs.
func (c *Client) Endpoints() Endpoints {
	return c.config.endpoints
}

// AccessToken returns a valid access token for the given scope, performing
// a token exchange only when the cache holds no usable entry.
func (c *Client) AccessToken(ctx context.Context, scope string) (string, error) {
	return c.tokens.acquire(ctx, scope)
}

// InvalidateToken drops the cached token for the given scope so the next
// call performs a fresh exchange.
func (c *Client) InvalidateToken(ctx context.Context, scope string) error {
	return c.tokens.invalidate(ctx, scope)
}
