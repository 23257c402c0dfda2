package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zhiyun/aibridge/pkg/baidu"
	"github.com/zhiyun/aibridge/pkg/cli"
)

var speechCmd = &cobra.Command{
	Use:   "speech",
	Short: "Speech recognition service",
	Long: `Speech recognition (ASR) service.

The recognize command submits a complete 16 kHz mono WAV/PCM file; the
stream command feeds PCM audio over a realtime WebSocket session and
prints partial results as they arrive.

Examples:
  baidu -c myctx speech recognize voice.wav
  baidu -c myctx speech stream voice.pcm`,
}

var speechRecognizeCmd = &cobra.Command{
	Use:   "recognize <audio>",
	Short: "Recognize a short speech file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}

		audio, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read audio: %w", err)
		}

		format, _ := cmd.Flags().GetString("format")
		rate, _ := cmd.Flags().GetInt("rate")
		devPID, _ := cmd.Flags().GetInt("dev-pid")

		printVerbose("Using context: %s", ctx.Name)
		printVerbose("Audio size: %s", cli.FormatBytes(int64(len(audio))))

		client, closeStore, err := createClient(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		resp, err := client.Speech.Recognize(reqCtx, &baidu.SpeechRequest{
			Audio:      audio,
			Format:     baidu.SpeechFormat(format),
			SampleRate: rate,
			DevPID:     devPID,
		})
		if err != nil {
			return fmt.Errorf("speech recognition failed: %w", err)
		}

		result := map[string]any{
			"transcript": resp.Text(),
			"candidates": resp.Results,
			"sn":         resp.SN,
		}

		return outputResult(result, getOutputFile(), isJSONOutput())
	},
}

var speechStreamCmd = &cobra.Command{
	Use:   "stream <audio.pcm>",
	Short: "Recognize speech over a realtime session",
	Long: `Recognize speech over a realtime WebSocket session.

The input must be raw 16 kHz mono s16le PCM. Partial transcripts are
printed as they arrive; the final transcript is printed last.

Requires a context with --app-id set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := getContext()
		if err != nil {
			return err
		}
		if ctx.AppID == 0 {
			return fmt.Errorf("realtime recognition requires an app id, set it with 'baidu config add-context --app-id'")
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open audio: %w", err)
		}
		defer f.Close()

		client, closeStore, err := createClient(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		reqCtx, cancel := context.WithTimeout(context.Background(), 300*time.Second)
		defer cancel()

		var final string
		for result, err := range client.Speech.RecognizeStream(reqCtx, &baidu.RealtimeRequest{
			Audio: f,
		}) {
			if err != nil {
				return fmt.Errorf("realtime recognition failed: %w", err)
			}
			if result.Final {
				final = result.Text
				printVerbose("final: %s", result.Text)
			} else {
				printVerbose("partial: %s", result.Text)
			}
		}

		result := map[string]any{
			"transcript": final,
		}

		return outputResult(result, getOutputFile(), isJSONOutput())
	},
}

func init() {
	speechRecognizeCmd.Flags().String("format", "wav", "audio format (wav, pcm, amr)")
	speechRecognizeCmd.Flags().Int("rate", 16000, "sample rate in Hz")
	speechRecognizeCmd.Flags().Int("dev-pid", baidu.DevPIDMandarin, "recognition model")
	speechCmd.AddCommand(speechRecognizeCmd)
	speechCmd.AddCommand(speechStreamCmd)
}
