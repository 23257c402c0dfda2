// Package main provides the DingTalk robot CLI tool.
//
// Usage:
//
//	dingtalk [flags] <command> [args]
//
// Commands:
//
//	send     - Send robot messages
//	user     - Look up contacts
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.aibridge/dingtalk/
//	Use 'dingtalk config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/zhiyun/aibridge/cmd/dingtalk/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
