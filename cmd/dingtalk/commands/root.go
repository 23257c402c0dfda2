package commands

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhiyun/aibridge/pkg/cli"
	"github.com/zhiyun/aibridge/pkg/credcache"
	"github.com/zhiyun/aibridge/pkg/dingtalk"
)

const appName = "dingtalk"

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
	Use:   "dingtalk",
	Short: "DingTalk robot CLI tool",
	Long: `DingTalk CLI - A command line interface for DingTalk robot messaging.

This tool allows you to send one-to-one robot messages and look up
contacts through the DingTalk open platform.

Configuration is stored in ~/.aibridge/dingtalk/ and supports multiple
contexts, similar to kubectl's context management. Access tokens are
cached on disk so repeated invocations reuse them until expiry.

Examples:
  # Set up a new context
  dingtalk config add-context myctx --app-key KEY --app-secret SECRET --robot-code CODE

  # Send a text message
  dingtalk -c myctx send text "build finished" --user user123

  # Look up a contact
  dingtalk -c myctx user get user123 --json
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
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.aibridge/dingtalk/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-token-cache", false, "disable the on-disk token cache")

	// Add subcommands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(userCmd)
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
			return nil, fmt.Errorf("no context specified. Use -c flag or set a default context with 'dingtalk config use-context'")
		}
		return nil, err
	}

	return ctx, nil
}

// isJSONOutput returns whether output should be JSON
func isJSONOutput() bool {
	return outputJSON
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

// resolveCredentials returns the app credentials from the context, falling
// back to DINGTALK_APP_KEY / DINGTALK_APP_SECRET when the context leaves
// them empty.
func resolveCredentials(ctx *cli.Context) (appKey, appSecret string, err error) {
	appKey = ctx.AppKey
	if appKey == "" {
		appKey = os.Getenv("DINGTALK_APP_KEY")
	}
	appSecret = ctx.AppSecret
	if appSecret == "" {
		appSecret = os.Getenv("DINGTALK_APP_SECRET")
	}
	if appKey == "" || appSecret == "" {
		return "", "", fmt.Errorf("app key and app secret are required (context %q or DINGTALK_APP_KEY/DINGTALK_APP_SECRET)", ctx.Name)
	}
	return appKey, appSecret, nil
}

// createClient creates a DingTalk client from context configuration.
// The returned close function releases the token store.
func createClient(ctx *cli.Context) (*dingtalk.Client, func(), error) {
	appKey, appSecret, err := resolveCredentials(ctx)
	if err != nil {
		return nil, nil, err
	}

	var opts []dingtalk.Option
	closeStore := func() {}

	robotCode := ctx.RobotCode
	if robotCode == "" {
		robotCode = os.Getenv("DINGTALK_ROBOT_CODE")
	}
	if robotCode != "" {
		opts = append(opts, dingtalk.WithRobotCode(robotCode))
	}
	if ctx.BaseURL != "" {
		opts = append(opts, dingtalk.WithBaseURL(ctx.BaseURL))
	}
	if ctx.Timeout > 0 {
		opts = append(opts, dingtalk.WithTimeout(time.Duration(ctx.Timeout)*time.Second))
	}
	if ctx.Proxy != "" {
		proxyURL, err := url.Parse(ctx.Proxy)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid proxy url: %w", err)
		}
		opts = append(opts, dingtalk.WithProxy(proxyURL))
	}

	if noCache {
		opts = append(opts, dingtalk.WithoutTokenCache())
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
		opts = append(opts, dingtalk.WithCredentialStore(store))
		closeStore = func() { store.Close() }
	}

	return dingtalk.NewClient(appKey, appSecret, opts...), closeStore, nil
}
