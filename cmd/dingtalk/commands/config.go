package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zhiyun/aibridge/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and contexts.

Contexts allow you to manage multiple API configurations,
similar to kubectl's context management.

Configuration is stored in ~/.aibridge/dingtalk/config.yaml`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context with the specified name.

Example:
  dingtalk config add-context myctx --app-key KEY --app-secret SECRET --robot-code CODE`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		appKey, err := cmd.Flags().GetString("app-key")
		if err != nil {
			return fmt.Errorf("failed to read 'app-key' flag: %w", err)
		}
		if appKey == "" {
			return fmt.Errorf("--app-key is required")
		}

		appSecret, err := cmd.Flags().GetString("app-secret")
		if err != nil {
			return fmt.Errorf("failed to read 'app-secret' flag: %w", err)
		}
		if appSecret == "" {
			return fmt.Errorf("--app-secret is required")
		}

		robotCode, err := cmd.Flags().GetString("robot-code")
		if err != nil {
			return fmt.Errorf("failed to read 'robot-code' flag: %w", err)
		}
		proxy, err := cmd.Flags().GetString("proxy")
		if err != nil {
			return fmt.Errorf("failed to read 'proxy' flag: %w", err)
		}
		timeout, err := cmd.Flags().GetInt("timeout")
		if err != nil {
			return fmt.Errorf("failed to read 'timeout' flag: %w", err)
		}

		ctx := &cli.Context{
			AppKey:    appKey,
			AppSecret: appSecret,
			RobotCode: robotCode,
			Proxy:     proxy,
			Timeout:   timeout,
		}

		cfg := getConfig()
		if err := cfg.AddContext(name, ctx); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q added successfully", name)
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg := getConfig()
		if err := cfg.DeleteContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q deleted", name)
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg := getConfig()
		if err := cfg.UseContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Switched to context %q", name)
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Display the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if cfg.CurrentContext == "" {
			fmt.Println("No current context set")
			return nil
		}

		fmt.Println(cfg.CurrentContext)
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:     "list-contexts",
	Aliases: []string{"get-contexts"},
	Short:   "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if len(cfg.Contexts) == 0 {
			fmt.Println("No contexts configured")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tAPP_KEY\tROBOT_CODE")

		for name, ctx := range cfg.Contexts {
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", current, name, cli.MaskSecret(ctx.AppKey), ctx.RobotCode)
		}

		w.Flush()
		return nil
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		fmt.Printf("Config file: %s\n", cfg.Path())
		fmt.Printf("Current context: %s\n", cfg.CurrentContext)
		fmt.Printf("Contexts: %d\n", len(cfg.Contexts))

		if len(cfg.Contexts) > 0 {
			fmt.Println("\nContext details:")
			for name, ctx := range cfg.Contexts {
				fmt.Printf("\n  %s:\n", name)
				fmt.Printf("    App Key: %s\n", cli.MaskSecret(ctx.AppKey))
				fmt.Printf("    App Secret: %s\n", cli.MaskSecret(ctx.AppSecret))
				if ctx.RobotCode != "" {
					fmt.Printf("    Robot Code: %s\n", ctx.RobotCode)
				}
				if ctx.Proxy != "" {
					fmt.Printf("    Proxy: %s\n", ctx.Proxy)
				}
				if ctx.Timeout > 0 {
					fmt.Printf("    Timeout: %ds\n", ctx.Timeout)
				}
			}
		}

		return nil
	},
}

func init() {
	// add-context flags
	configAddContextCmd.Flags().String("app-key", "", "DingTalk app key (required)")
	configAddContextCmd.Flags().String("app-secret", "", "DingTalk app secret (required)")
	configAddContextCmd.Flags().String("robot-code", "", "Default robot code for messaging")
	configAddContextCmd.Flags().String("proxy", "", "Outbound proxy URL")
	configAddContextCmd.Flags().Int("timeout", 0, "Request timeout in seconds")

	// Add subcommands
	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}
