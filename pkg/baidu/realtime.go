package baidu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// RealtimeRequest configures a realtime streaming recognition session.
type RealtimeRequest struct {
	// Audio supplies raw 16 kHz mono s16le PCM.
	Audio io.Reader

	// DevPID selects the recognition model. Default DevPIDRealtimeInput.
	DevPID int

	// SampleRate is the PCM sample rate in Hz. Default 16000.
	SampleRate int
}

// RealtimeResult is one recognition event from a streaming session.
type RealtimeResult struct {
	// Text is the transcript so far (partial) or the finalized sentence.
	Text string

	// Final reports whether this is a finalized sentence (FIN_TEXT) rather
	// than a partial update.
	Final bool

	// SN is the provider's serial number for the event.
	SN string
}

// realtimeFrameSize is the number of PCM bytes per audio frame, 100 ms at
// 16 kHz mono s16le.
const realtimeFrameSize = 3200

// realtimeServerFrame is a JSON frame from the realtime endpoint.
type realtimeServerFrame struct {
	Type   string `json:"type"` // MID_TEXT, FIN_TEXT, HEARTBEAT
	ErrNo  int    `json:"err_no"`
	ErrMsg string `json:"err_msg"`
	Result string `json:"result"`
	SN     string `json:"sn"`
}

// RecognizeStream performs realtime streaming recognition over WebSocket.
//
// The session authenticates with the numeric application ID (WithAppID) and
// the API key; it does not use the OAuth token endpoint. Audio is consumed
// from req.Audio until EOF, then the session is finished and remaining
// events are drained.
//
// Example:
//
//	for result, err := range client.Speech.RecognizeStream(ctx, &baidu.RealtimeRequest{Audio: pcm}) {
//	    if err != nil {
//	        return err
//	    }
//	    if result.Final {
//	        fmt.Println(result.Text)
//	    }
//	}
func (s *SpeechService) RecognizeStream(ctx context.Context, req *RealtimeRequest) iter.Seq2[*RealtimeResult, error] {
	return func(yield func(*RealtimeResult, error) bool) {
		cfg := s.client.config

		if cfg.appID == 0 {
			yield(nil, fmt.Errorf("realtime recognition requires an application ID, see WithAppID"))
			return
		}

		sn := uuid.New().String()
		url := cfg.endpoints.RealtimeWS + "?sn=" + sn

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err != nil {
			yield(nil, wrapError(err, "connect websocket"))
			return
		}
		defer conn.Close()

		devPID := req.DevPID
		if devPID == 0 {
			devPID = DevPIDRealtimeInput
		}
		sampleRate := req.SampleRate
		if sampleRate == 0 {
			sampleRate = 16000
		}

		start := map[string]any{
			"type": "START",
			"data": map[string]any{
				"appid":   cfg.appID,
				"appkey":  cfg.apiKey,
				"dev_pid": devPID,
				"cuid":    cfg.cuid,
				"format":  "pcm",
				"sample":  sampleRate,
			},
		}
		if err := conn.WriteJSON(start); err != nil {
			yield(nil, wrapError(err, "send start frame"))
			return
		}

		// Unblock ReadMessage when the caller cancels.
		stop := context.AfterFunc(ctx, func() { conn.Close() })
		defer stop()

		// Feed audio in a goroutine so server events are consumed while
		// uploading. On failure the connection is closed so the read loop
		// unblocks and surfaces the recorded error.
		sendDone := make(chan error, 1)
		go func() {
			defer close(sendDone)
			buf := make([]byte, realtimeFrameSize)
			for {
				n, err := io.ReadFull(req.Audio, buf)
				if n > 0 {
					if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
						sendDone <- wrapError(werr, "send audio frame")
						conn.Close()
						return
					}
				}
				if err == io.EOF || err == io.ErrUnexpectedEOF {
					break
				}
				if err != nil {
					sendDone <- wrapError(err, "read audio")
					conn.Close()
					return
				}
			}
			finish := map[string]any{"type": "FINISH"}
			if werr := conn.WriteJSON(finish); werr != nil {
				sendDone <- wrapError(werr, "send finish frame")
				conn.Close()
			}
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if cerr := ctx.Err(); cerr != nil {
					yield(nil, cerr)
					return
				}
				if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					if serr := <-sendDone; serr != nil {
						yield(nil, serr)
					}
					return
				}
				// The sender closes the connection on failure; its error is
				// the root cause, not the resulting read error.
				select {
				case serr := <-sendDone:
					if serr != nil {
						yield(nil, serr)
						return
					}
				default:
				}
				yield(nil, wrapError(err, "read message"))
				return
			}

			var frame realtimeServerFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				yield(nil, wrapError(err, "decode server frame"))
				return
			}

			if frame.ErrNo != 0 {
				yield(nil, &Error{
					Code:    frame.ErrNo,
					Message: frame.ErrMsg,
				})
				return
			}

			switch frame.Type {
			case "MID_TEXT", "FIN_TEXT":
				result := &RealtimeResult{
					Text:  frame.Result,
					Final: frame.Type == "FIN_TEXT",
					SN:    frame.SN,
				}
				if !yield(result, nil) {
					return
				}
			case "HEARTBEAT":
				// keepalive, nothing to surface
			default:
				slog.Debug("baidu realtime: unknown frame type", "type", frame.Type)
			}
		}
	}
}
