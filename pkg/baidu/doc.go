// Package baidu provides a Go client for Baidu AI Cloud REST APIs.
//
// The client covers speech synthesis (TTS), general and accurate OCR,
// ERNIE-ViLG image generation, and short-speech recognition. All services
// authenticate through the Baidu OAuth token endpoint; issued tokens are
// cached per scope and reused until a safety margin before their reported
// expiry.
//
// # Usage
//
//	client := baidu.NewClient(apiKey, secretKey)
//	audio, err := client.TTS.Synthesize(ctx, &baidu.TTSRequest{
//	    Text: "你好，世界",
//	})
//
// Requests carry fixed provider defaults for unset optional parameters
// (neutral speed/pitch/volume for TTS, "1024x1024" resolution for image
// generation), matching the Baidu console defaults.
//
// # Errors
//
// A token exchange failure is reported as *AuthError. A vendor error
// envelope ({error_code, error_msg} or {err_no, err_msg}) is reported as
// *Error carrying both code and message. Network failures and response
// bodies that do not decode are returned as wrapped transport errors.
// The client performs no retries; every failure surfaces to the caller.
package baidu
