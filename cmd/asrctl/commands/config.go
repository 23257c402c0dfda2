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

Configuration is stored in ~/.aibridge/asr/config.yaml`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context with the specified name.

Example:
  asrctl config add-context myctx --api-key KEY --secret-key SECRET
  asrctl config add-context lab --api-key KEY --secret-key SECRET --offline-cmd "whisper-cli -f {}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		apiKey, err := cmd.Flags().GetString("api-key")
		if err != nil {
			return fmt.Errorf("failed to read 'api-key' flag: %w", err)
		}
		secretKey, err := cmd.Flags().GetString("secret-key")
		if err != nil {
			return fmt.Errorf("failed to read 'secret-key' flag: %w", err)
		}
		offlineCmd, err := cmd.Flags().GetString("offline-cmd")
		if err != nil {
			return fmt.Errorf("failed to read 'offline-cmd' flag: %w", err)
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
			APIKey:    apiKey,
			SecretKey: secretKey,
			Proxy:     proxy,
			Timeout:   timeout,
		}
		if offlineCmd != "" {
			ctx.SetExtra("offline_cmd", offlineCmd)
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
		fmt.Fprintln(w, "CURRENT\tNAME\tAPI_KEY\tOFFLINE_CMD")

		for name, ctx := range cfg.Contexts {
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", current, name, cli.MaskSecret(ctx.APIKey), ctx.GetExtra("offline_cmd"))
		}

		w.Flush()
		return nil
	},
}

func init() {
	// add-context flags
	configAddContextCmd.Flags().String("api-key", "", "Baidu console API key")
	configAddContextCmd.Flags().String("secret-key", "", "Baidu console secret key")
	configAddContextCmd.Flags().String("offline-cmd", "", "offline recognizer command line")
	configAddContextCmd.Flags().String("proxy", "", "Outbound proxy URL")
	configAddContextCmd.Flags().Int("timeout", 0, "Request timeout in seconds")

	// Add subcommands
	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configListContextsCmd)
}
