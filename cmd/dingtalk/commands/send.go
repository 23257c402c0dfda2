package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhiyun/aibridge/pkg/dingtalk"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send robot messages",
	Long: `Send one-to-one robot messages.

Recipients are given with repeated --user flags. The robot code comes
from the context configuration unless overridden with --robot-code.

Examples:
  dingtalk -c myctx send text "deploy finished" --user user123
  dingtalk -c myctx send markdown --title Report --text "# done" --user user123
  dingtalk -c myctx send link --title Docs --text "release notes" --url https://example.com --user user123`,
}

// sendTimeout bounds one send invocation.
const sendTimeout = 30 * time.Second

func sendFlags(cmd *cobra.Command) (userIDs []string, robotCode string, err error) {
	userIDs, err = cmd.Flags().GetStringArray("user")
	if err != nil {
		return nil, "", fmt.Errorf("failed to read 'user' flag: %w", err)
	}
	if len(userIDs) == 0 {
		return nil, "", fmt.Errorf("at least one --user is required")
	}
	robotCode, err = cmd.Flags().GetString("robot-code")
	if err != nil {
		return nil, "", fmt.Errorf("failed to read 'robot-code' flag: %w", err)
	}
	return userIDs, robotCode, nil
}

func outputSendResult(resp *dingtalk.BatchSendResponse) error {
	result := map[string]any{
		"process_query_key": resp.ProcessQueryKey,
	}
	if len(resp.InvalidStaffIDList) > 0 {
		result["invalid_users"] = resp.InvalidStaffIDList
	}
	if len(resp.FlowControlledStaffIDList) > 0 {
		result["flow_controlled_users"] = resp.FlowControlledStaffIDList
	}
	return outputResult(result, isJSONOutput())
}

var sendTextCmd = &cobra.Command{
	Use:   "text <message>",
	Short: "Send a plain text message",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}
		userIDs, robotCode, err := sendFlags(cmd)
		if err != nil {
			return err
		}

		client, closeStore, err := createClient(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		reqCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		printVerbose("Sending text to %d user(s)", len(userIDs))

		param, err := json.Marshal(map[string]string{"content": args[0]})
		if err != nil {
			return err
		}
		resp, err := client.Robot.BatchSend(reqCtx, &dingtalk.BatchSendRequest{
			RobotCode: robotCode,
			UserIDs:   userIDs,
			MsgKey:    dingtalk.MsgKeyText,
			MsgParam:  string(param),
		})
		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}

		return outputSendResult(resp)
	},
}

var sendMarkdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Send a markdown message",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}
		userIDs, robotCode, err := sendFlags(cmd)
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		text, _ := cmd.Flags().GetString("text")
		if title == "" || text == "" {
			return fmt.Errorf("--title and --text are required")
		}

		client, closeStore, err := createClient(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		reqCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		param, err := json.Marshal(&dingtalk.MarkdownMessage{
			Title: title,
			Text:  text,
		})
		if err != nil {
			return err
		}
		resp, err := client.Robot.BatchSend(reqCtx, &dingtalk.BatchSendRequest{
			RobotCode: robotCode,
			UserIDs:   userIDs,
			MsgKey:    dingtalk.MsgKeyMarkdown,
			MsgParam:  string(param),
		})
		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}

		return outputSendResult(resp)
	},
}

var sendLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Send a link card message",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}
		userIDs, robotCode, err := sendFlags(cmd)
		if err != nil {
			return err
		}

		title, _ := cmd.Flags().GetString("title")
		text, _ := cmd.Flags().GetString("text")
		msgURL, _ := cmd.Flags().GetString("url")
		picURL, _ := cmd.Flags().GetString("pic-url")
		if title == "" || msgURL == "" {
			return fmt.Errorf("--title and --url are required")
		}

		client, closeStore, err := createClient(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		reqCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		param, err := json.Marshal(&dingtalk.LinkMessage{
			Title:      title,
			Text:       text,
			MessageURL: msgURL,
			PicURL:     picURL,
		})
		if err != nil {
			return err
		}
		resp, err := client.Robot.BatchSend(reqCtx, &dingtalk.BatchSendRequest{
			RobotCode: robotCode,
			UserIDs:   userIDs,
			MsgKey:    dingtalk.MsgKeyLink,
			MsgParam:  string(param),
		})
		if err != nil {
			return fmt.Errorf("send failed: %w", err)
		}

		return outputSendResult(resp)
	},
}

func init() {
	for _, c := range []*cobra.Command{sendTextCmd, sendMarkdownCmd, sendLinkCmd} {
		c.Flags().StringArray("user", nil, "recipient user id (repeatable)")
		c.Flags().String("robot-code", "", "override the context robot code")
	}
	sendMarkdownCmd.Flags().String("title", "", "message title")
	sendMarkdownCmd.Flags().String("text", "", "markdown body")
	sendLinkCmd.Flags().String("title", "", "card title")
	sendLinkCmd.Flags().String("text", "", "card text")
	sendLinkCmd.Flags().String("url", "", "target URL")
	sendLinkCmd.Flags().String("pic-url", "", "picture URL")

	sendCmd.AddCommand(sendTextCmd)
	sendCmd.AddCommand(sendMarkdownCmd)
	sendCmd.AddCommand(sendLinkCmd)
}
