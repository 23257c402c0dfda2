package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhiyun/aibridge/pkg/baidu"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Text recognition service",
	Long: `Text recognition (OCR) service.

Reads an image file and returns the recognized text lines in order.

Examples:
  baidu -c myctx ocr general photo.jpg
  baidu -c myctx ocr accurate scan.png --json`,
}

// runOCR handles both the general and accurate variants.
func runOCR(accurate bool, cmd *cobra.Command, args []string) error {
	ctx, err := getContext()
	if err != nil {
		return err
	}

	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	language, _ := cmd.Flags().GetString("language")
	detectDirection, _ := cmd.Flags().GetBool("detect-direction")

	req := &baidu.OCRRequest{
		Image:           image,
		Language:        baidu.OCRLanguage(language),
		DetectDirection: detectDirection,
	}

	printVerbose("Using context: %s", ctx.Name)
	printVerbose("Image size: %d bytes", len(image))

	client, closeStore, err := createClient(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var resp *baidu.OCRResponse
	if accurate {
		resp, err = client.OCR.Accurate(reqCtx, req)
	} else {
		resp, err = client.OCR.General(reqCtx, req)
	}
	if err != nil {
		return fmt.Errorf("text recognition failed: %w", err)
	}

	result := map[string]any{
		"words": resp.Words,
	}

	return outputResult(result, getOutputFile(), isJSONOutput())
}

var ocrGeneralCmd = &cobra.Command{
	Use:   "general <image>",
	Short: "Recognize text with the general model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOCR(false, cmd, args)
	},
}

var ocrAccurateCmd = &cobra.Command{
	Use:   "accurate <image>",
	Short: "Recognize text with the high-accuracy model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOCR(true, cmd, args)
	},
}

func init() {
	for _, c := range []*cobra.Command{ocrGeneralCmd, ocrAccurateCmd} {
		c.Flags().String("language", "", "language type (default CHN_ENG)")
		c.Flags().Bool("detect-direction", false, "detect image orientation")
	}
	ocrCmd.AddCommand(ocrGeneralCmd)
	ocrCmd.AddCommand(ocrAccurateCmd)
}
