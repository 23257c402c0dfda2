// Package main provides the Baidu AI CLI tool.
//
// Usage:
//
//	baidu [flags] <service> <command> [args]
//
// Services:
//
//	tts      - Speech synthesis service
//	ocr      - Text recognition service
//	image    - Image generation service
//	speech   - Speech recognition service
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.aibridge/baidu/
//	Use 'baidu config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/zhiyun/aibridge/cmd/baidu/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
