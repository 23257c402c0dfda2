package commands

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/zhiyun/aibridge/pkg/baidu"
	"github.com/zhiyun/aibridge/pkg/cli"
	"github.com/zhiyun/aibridge/pkg/credcache"
)

// loadRequest loads a request from a YAML or JSON file
func loadRequest(path string, v any) error {
	return cli.LoadRequest(path, v)
}

// outputBytes outputs binary data to a file
func outputBytes(data []byte, outputPath string) error {
	return cli.OutputBytes(data, outputPath)
}

// requireInputFile checks if input file is provided
func requireInputFile() error {
	if getInputFile() == "" {
		return fmt.Errorf("input file is required, use -f flag")
	}
	return nil
}

// resolveCredentials returns the API key pair from the context, falling back
// to BAIDU_API_KEY / BAIDU_SECRET_KEY when the context leaves them empty.
func resolveCredentials(ctx *cli.Context) (apiKey, secretKey string, err error) {
	apiKey = ctx.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("BAIDU_API_KEY")
	}
	secretKey = ctx.SecretKey
	if secretKey == "" {
		secretKey = os.Getenv("BAIDU_SECRET_KEY")
	}
	if apiKey == "" || secretKey == "" {
		return "", "", fmt.Errorf("api key and secret key are required (context %q or BAIDU_API_KEY/BAIDU_SECRET_KEY)", ctx.Name)
	}
	return apiKey, secretKey, nil
}

// openTokenStore opens the on-disk token cache for this app.
func openTokenStore() (credcache.Store, error) {
	paths, err := cli.NewPaths(appName)
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureTokenCacheDir(); err != nil {
		return nil, err
	}
	return credcache.NewBadger(credcache.BadgerOptions{
		Dir: paths.TokenCacheDir(),
	})
}

// createClient creates a Baidu API client from context configuration.
// The returned close function releases the token store.
func createClient(ctx *cli.Context) (*baidu.Client, func(), error) {
	apiKey, secretKey, err := resolveCredentials(ctx)
	if err != nil {
		return nil, nil, err
	}

	var opts []baidu.Option
	closeStore := func() {}

	if ctx.Timeout > 0 {
		opts = append(opts, baidu.WithTimeout(time.Duration(ctx.Timeout)*time.Second))
	}
	if ctx.Proxy != "" {
		proxyURL, err := url.Parse(ctx.Proxy)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid proxy url: %w", err)
		}
		opts = append(opts, baidu.WithProxy(proxyURL))
	}
	if ctx.AppID > 0 {
		opts = append(opts, baidu.WithAppID(ctx.AppID))
	}

	if noCache {
		opts = append(opts, baidu.WithoutTokenCache())
	} else {
		store, err := openTokenStore()
		if err != nil {
			return nil, nil, fmt.Errorf("open token cache: %w", err)
		}
		opts = append(opts, baidu.WithCredentialStore(store))
		closeStore = func() { store.Close() }
	}

	return baidu.NewClient(apiKey, secretKey, opts...), closeStore, nil
}
