package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhiyun/aibridge/pkg/baidu"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Image generation service",
	Long: `Image generation (ERNIE-ViLG) service.

Example request file (image.yaml):
  prompt: 山水画,国画风格
  style: 水墨画
  resolution: 1024x1024
  steps: 30`,
}

var imageGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an image from a prompt",
	Long: `Generate an image from a text prompt.

The image is saved to the file given with -o.

Examples:
  baidu -c myctx image generate -f image.yaml -o out.png
  baidu -c myctx image generate --prompt 山水画 -o out.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		var req baidu.ImageGenerateRequest
		if getInputFile() != "" {
			if err := loadRequest(getInputFile(), &req); err != nil {
				return err
			}
		}
		if prompt, _ := cmd.Flags().GetString("prompt"); prompt != "" {
			req.Prompt = prompt
		}
		if req.Prompt == "" {
			return fmt.Errorf("prompt is required, use -f or --prompt")
		}

		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for image data, use -o flag")
		}

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Prompt: %s", req.Prompt)

		client, closeStore, err := createClient(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		// Generation can take a while.
		reqCtx, cancel := context.WithTimeout(context.Background(), 300*time.Second)
		defer cancel()

		resp, err := client.Image.Generate(reqCtx, &req)
		if err != nil {
			return fmt.Errorf("image generation failed: %w", err)
		}

		if err := outputBytes(resp.Image, outputPath); err != nil {
			return fmt.Errorf("failed to write image file: %w", err)
		}
		printVerbose("Image saved to: %s", outputPath)

		result := map[string]any{
			"image_size":  len(resp.Image),
			"output_file": outputPath,
		}

		return outputResult(result, "", isJSONOutput())
	},
}

func init() {
	imageGenerateCmd.Flags().String("prompt", "", "generation prompt (overrides request file)")
	imageCmd.AddCommand(imageGenerateCmd)
}
