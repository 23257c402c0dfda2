package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/zhiyun/aibridge/pkg/asr"
	"github.com/zhiyun/aibridge/pkg/baidu"
	"github.com/zhiyun/aibridge/pkg/cli"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <audio>",
	Short: "Recognize speech from an audio file",
	Long: `Recognize speech from an audio file.

The input may be in any format ffmpeg understands; it is transcoded to
16 kHz mono WAV before recognition. The offline command may contain {}
as a placeholder for the WAV path; without one, the path is appended.

Examples:
  asrctl -c myctx recognize voice.ogg
  asrctl -c myctx recognize voice.ogg --engine cloud --dev-pid 1737
  asrctl recognize voice.ogg --engine offline --offline-cmd "whisper-cli -f {}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engineName, _ := cmd.Flags().GetString("engine")
		offlineCmd, _ := cmd.Flags().GetString("offline-cmd")
		ffmpeg, _ := cmd.Flags().GetString("ffmpeg")
		devPID, _ := cmd.Flags().GetInt("dev-pid")

		closeStore := func() {}
		defer func() { closeStore() }()

		newCloud := func() (asr.Engine, error) {
			ctx, err := getContext()
			if err != nil {
				return nil, err
			}
			client, cs, err := createBaiduClient(ctx)
			if err != nil {
				return nil, err
			}
			closeStore = cs
			if offlineCmd == "" {
				offlineCmd = ctx.GetExtra("offline_cmd")
			}
			return asr.NewCloudEngine(client, asr.WithDevPID(devPID)), nil
		}

		newOffline := func() (asr.Engine, error) {
			if offlineCmd == "" {
				if ctx, err := getContext(); err == nil {
					offlineCmd = ctx.GetExtra("offline_cmd")
				}
			}
			if offlineCmd == "" {
				return nil, fmt.Errorf("offline command is required, use --offline-cmd or set offline_cmd in the context")
			}
			argv, err := shlex.Split(offlineCmd)
			if err != nil {
				return nil, fmt.Errorf("invalid offline command: %w", err)
			}
			return asr.NewOfflineEngine(argv...)
		}

		var engine asr.Engine
		var err error
		switch engineName {
		case "cloud":
			engine, err = newCloud()
		case "offline":
			engine, err = newOffline()
		case "hybrid":
			var cloud, offline asr.Engine
			if cloud, err = newCloud(); err != nil {
				return err
			}
			if offline, err = newOffline(); err != nil {
				return err
			}
			engine = asr.NewHybridEngine(cloud, offline)
		default:
			return fmt.Errorf("unknown engine %q (cloud, offline, hybrid)", engineName)
		}
		if err != nil {
			return err
		}

		recognizer := asr.NewRecognizer(engine,
			asr.WithTranscoder(asr.NewTranscoder(ffmpeg)))

		printVerbose("Engine: %s", engineName)
		printVerbose("Input: %s", args[0])

		reqCtx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
		defer cancel()

		start := time.Now()
		result, err := recognizer.RecognizeFile(reqCtx, args[0])
		if err != nil {
			return fmt.Errorf("recognition failed: %w", err)
		}
		printVerbose("Recognized in %s", cli.FormatDuration(int(time.Since(start).Milliseconds())))

		out := map[string]any{
			"transcript": result.Text,
			"source":     string(result.Source),
		}
		if result.SN != "" {
			out["sn"] = result.SN
		}

		return outputResult(out, outputJSON)
	},
}

func init() {
	recognizeCmd.Flags().String("engine", "hybrid", "recognition engine (cloud, offline, hybrid)")
	recognizeCmd.Flags().String("offline-cmd", "", "offline recognizer command line")
	recognizeCmd.Flags().String("ffmpeg", "", "ffmpeg binary (default: ffmpeg from PATH)")
	recognizeCmd.Flags().Int("dev-pid", baidu.DevPIDMandarin, "cloud recognition model")
}
