// Package main provides the asrctl speech recognition CLI tool.
//
// Usage:
//
//	asrctl [flags] <command> [args]
//
// Commands:
//
//	recognize - Recognize speech from an audio file
//	config    - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.aibridge/asr/
//	Use 'asrctl config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/zhiyun/aibridge/cmd/asrctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
