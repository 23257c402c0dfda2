package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Look up contacts",
}

var userGetCmd = &cobra.Command{
	Use:   "get <user-id>",
	Short: "Fetch a user by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		client, closeStore, err := createClient(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := client.Contact.GetUser(reqCtx, args[0])
		if err != nil {
			return fmt.Errorf("user lookup failed: %w", err)
		}

		return outputResult(user, isJSONOutput())
	},
}

func init() {
	userCmd.AddCommand(userGetCmd)
}
