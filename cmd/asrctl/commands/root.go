package commands

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhiyun/aibridge/pkg/baidu"
	"github.com/zhiyun/aibridge/pkg/cli"
	"github.com/zhiyun/aibridge/pkg/credcache"
)

const appName = "asr"

var (
	// Global flags
	cfgFile     string
	contextName string
	outputJSON  bool
	verbose     bool
	noCache     bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "asrctl",
	Short: "Chinese speech recognition CLI tool",
	Long: `asrctl - Chinese speech recognition from the command line.

Audio in any format ffmpeg understands (including DingTalk OGG/Opus
voice files) is transcoded to 16 kHz mono WAV and recognized by the
selected engine:

  cloud    - Baidu short-speech API
  offline  - a local recognizer process
  hybrid   - cloud first, one offline fallback (default)

Configuration is stored in ~/.aibridge/asr/ and supports multiple
contexts, similar to kubectl's context management.

Examples:
  # Set up a new context
  asrctl config add-context myctx --api-key KEY --secret-key SECRET

  # Recognize a DingTalk voice message
  asrctl -c myctx recognize voice.ogg

  # Force the offline engine
  asrctl -c myctx recognize voice.ogg --engine offline --offline-cmd "pocketsphinx_continuous -infile {}"
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.aibridge/asr/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-token-cache", false, "disable the on-disk token cache")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(recognizeCmd)
}

func initConfig() {
	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getContext returns the context configuration to use
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		if contextName == "" {
			return nil, fmt.Errorf("no context specified. Use -c flag or set a default context with 'asrctl config use-context'")
		}
		return nil, err
	}

	return ctx, nil
}

// outputResult outputs the result using cli package
func outputResult(result any, asJSON bool) error {
	format := cli.FormatYAML
	if asJSON {
		format = cli.FormatJSON
	}
	return cli.Output(result, cli.OutputOptions{Format: format})
}

// printVerbose prints verbose output if enabled
func printVerbose(format string, args ...any) {
	cli.PrintVerbose(verbose, format, args...)
}

// createBaiduClient creates a Baidu client for the cloud engine from the
// context configuration, falling back to BAIDU_API_KEY / BAIDU_SECRET_KEY.
func createBaiduClient(ctx *cli.Context) (*baidu.Client, func(), error) {
	apiKey := ctx.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("BAIDU_API_KEY")
	}
	secretKey := ctx.SecretKey
	if secretKey == "" {
		secretKey = os.Getenv("BAIDU_SECRET_KEY")
	}
	if apiKey == "" || secretKey == "" {
		return nil, nil, fmt.Errorf("api key and secret key are required (context %q or BAIDU_API_KEY/BAIDU_SECRET_KEY)", ctx.Name)
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

	if noCache {
		opts = append(opts, baidu.WithoutTokenCache())
	} else {
		paths, err := cli.NewPaths(appName)
		if err != nil {
			return nil, nil, err
		}
		if err := paths.EnsureTokenCacheDir(); err != nil {
			return nil, nil, err
		}
		store, err := credcache.NewBadger(credcache.BadgerOptions{
			Dir: paths.TokenCacheDir(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open token cache: %w", err)
		}
		opts = append(opts, baidu.WithCredentialStore(store))
		closeStore = func() { store.Close() }
	}

	return baidu.NewClient(apiKey, secretKey, opts...), closeStore, nil
}
