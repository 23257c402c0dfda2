package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhiyun/aibridge/pkg/baidu"
	"github.com/zhiyun/aibridge/pkg/cli"
)

var ttsCmd = &cobra.Command{
	Use:   "tts",
	Short: "Speech synthesis service",
	Long: `Speech synthesis (TTS) service.

Example request file (tts.yaml):
  text: 你好，世界
  voice: 4
  speed: 5
  pitch: 5
  volume: 5
  format: mp3`,
}

var ttsSynthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Synthesize speech from text",
	Long: `Synthesize speech from text.

The audio output is saved to the file given with -o.

Examples:
  baidu -c myctx tts synthesize -f tts.yaml -o output.mp3
  baidu -c myctx tts synthesize --text 你好 -o output.mp3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		var req baidu.TTSRequest
		if getInputFile() != "" {
			if err := loadRequest(getInputFile(), &req); err != nil {
				return err
			}
		}
		if text, _ := cmd.Flags().GetString("text"); text != "" {
			req.Text = text
		}
		if req.Text == "" {
			return fmt.Errorf("text is required, use -f or --text")
		}

		outputPath := getOutputFile()
		if outputPath == "" {
			return fmt.Errorf("output file is required for audio, use -o flag")
		}

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Text length: %d characters", len(req.Text))

		client, closeStore, err := createClient(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		reqCtx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		resp, err := client.TTS.Synthesize(reqCtx, &req)
		if err != nil {
			return fmt.Errorf("speech synthesis failed: %w", err)
		}

		if err := outputBytes(resp.Audio, outputPath); err != nil {
			return fmt.Errorf("failed to write audio file: %w", err)
		}
		printVerbose("Audio saved to: %s (%s)", outputPath, cli.FormatBytes(int64(len(resp.Audio))))

		result := map[string]any{
			"audio_size":  len(resp.Audio),
			"format":      resp.Format,
			"output_file": outputPath,
		}

		return outputResult(result, "", isJSONOutput())
	},
}

func init() {
	ttsSynthesizeCmd.Flags().String("text", "", "text to synthesize (overrides request file)")
	ttsCmd.AddCommand(ttsSynthesizeCmd)
}
