package baidu

// AudioFormat is the TTS output audio format.
type AudioFormat string

const (
	AudioMP3 AudioFormat = "mp3"
	AudioPCM AudioFormat = "pcm"
	AudioWAV AudioFormat = "wav"
)

// aueCode maps the format to the provider's aue parameter value.
func (f AudioFormat) aueCode() string {
	switch f {
	case AudioPCM:
		return "4"
	case AudioWAV:
		return "5"
	default:
		return "3" // mp3
	}
}

// Voice identifies a TTS speaker (the per parameter).
type Voice int

const (
	VoiceFemale        Voice = 0
	VoiceMale          Voice = 1
	VoiceEmotionalMale Voice = 3
	VoiceEmotionalFem  Voice = 4
)

// TTSRequest holds speech synthesis parameters. Zero-valued optional fields
// take the provider's neutral defaults.
type TTSRequest struct {
	// Text is the text to synthesize. Required.
	Text string `json:"text" yaml:"text"`

	// Speed is the speech rate, 0-15. Default 5.
	Speed *int `json:"speed,omitempty" yaml:"speed,omitempty"`

	// Pitch is the voice pitch, 0-15. Default 5.
	Pitch *int `json:"pitch,omitempty" yaml:"pitch,omitempty"`

	// Volume is the playback volume, 0-15. Default 5.
	Volume *int `json:"volume,omitempty" yaml:"volume,omitempty"`

	// Voice selects the speaker. Default VoiceFemale.
	Voice Voice `json:"voice,omitempty" yaml:"voice,omitempty"`

	// Format is the output audio format. Default AudioMP3.
	Format AudioFormat `json:"format,omitempty" yaml:"format,omitempty"`

	// Language is the synthesis language. Only "zh" is currently supported
	// by the provider; it is also the default.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// TTSResponse is the result of a synthesis call.
type TTSResponse struct {
	// Audio is the raw synthesized audio in the requested format.
	Audio []byte `json:"-" yaml:"-"`

	// Format echoes the effective output format.
	Format AudioFormat `json:"format" yaml:"format"`
}

// OCRLanguage is the OCR language_type hint.
type OCRLanguage string

const (
	OCRChineseEnglish OCRLanguage = "CHN_ENG"
	OCREnglish        OCRLanguage = "ENG"
	OCRJapanese       OCRLanguage = "JAP"
	OCRKorean         OCRLanguage = "KOR"
)

// OCRRequest holds text recognition parameters.
type OCRRequest struct {
	// Image is the raw image bytes; the client base64-encodes them. Required.
	Image []byte `json:"-" yaml:"-"`

	// Language is the language hint. Default OCRChineseEnglish.
	Language OCRLanguage `json:"language,omitempty" yaml:"language,omitempty"`

	// DetectDirection enables image orientation detection.
	DetectDirection bool `json:"detect_direction,omitempty" yaml:"detect_direction,omitempty"`

	// DetectLanguage enables automatic language detection.
	DetectLanguage bool `json:"detect_language,omitempty" yaml:"detect_language,omitempty"`

	// Paragraph enables paragraph grouping in the result.
	Paragraph bool `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`
}

// OCRResponse is the result of a recognition call.
type OCRResponse struct {
	// Words are the recognized text fragments in document order.
	Words []string `json:"words" yaml:"words"`

	// Direction is the detected orientation when DetectDirection was set:
	// -1 undefined, 0 upright, 1/2/3 rotated by 90/180/270 degrees.
	Direction int `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// ImageGenerateRequest holds ERNIE-ViLG text-to-image parameters.
type ImageGenerateRequest struct {
	// Prompt is the generation prompt. Required.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Style is the art style name. Default "默认".
	Style string `json:"style,omitempty" yaml:"style,omitempty"`

	// Resolution is the output size. Default "1024x1024".
	Resolution string `json:"resolution,omitempty" yaml:"resolution,omitempty"`

	// Num is the number of images to generate. Default 1.
	Num int `json:"num,omitempty" yaml:"num,omitempty"`

	// Steps is the number of diffusion steps. Default 30.
	Steps int `json:"steps,omitempty" yaml:"steps,omitempty"`

	// GuidanceScale controls prompt adherence. Default 7.5.
	GuidanceScale float64 `json:"guidance_scale,omitempty" yaml:"guidance_scale,omitempty"`
}

// ImageResponse is the result of an image generation call.
type ImageResponse struct {
	// Image is the decoded image bytes.
	Image []byte `json:"-" yaml:"-"`
}

// SpeechFormat is the recognition input audio format.
type SpeechFormat string

const (
	SpeechPCM SpeechFormat = "pcm"
	SpeechWAV SpeechFormat = "wav"
	SpeechAMR SpeechFormat = "amr"
)

// Recognition model identifiers (dev_pid).
const (
	DevPIDMandarin      = 1537  // Mandarin with simple English
	DevPIDEnglish       = 1737  // English
	DevPIDCantonese     = 1637  // Cantonese
	DevPIDSichuan       = 1837  // Sichuan dialect
	DevPIDRealtimeInput = 15372 // realtime input-method model
)

// SpeechRequest holds short-speech recognition parameters.
type SpeechRequest struct {
	// Audio is the raw audio; the client base64-encodes it. Required.
	Audio []byte `json:"-" yaml:"-"`

	// Format is the audio container format. Default SpeechWAV.
	Format SpeechFormat `json:"format,omitempty" yaml:"format,omitempty"`

	// SampleRate is the audio sample rate in Hz. Default 16000.
	SampleRate int `json:"sample_rate,omitempty" yaml:"sample_rate,omitempty"`

	// Channels is the channel count. Default 1; the provider accepts mono only.
	Channels int `json:"channels,omitempty" yaml:"channels,omitempty"`

	// DevPID selects the recognition model. Default DevPIDMandarin.
	DevPID int `json:"dev_pid,omitempty" yaml:"dev_pid,omitempty"`
}

// SpeechResponse is the result of a short-speech recognition call.
type SpeechResponse struct {
	// Results holds the candidate transcripts, best first.
	Results []string `json:"results" yaml:"results"`

	// SN is the provider's serial number for the request.
	SN string `json:"sn,omitempty" yaml:"sn,omitempty"`
}

// Text returns the best transcript, or "" when recognition produced none.
func (r *SpeechResponse) Text() string {
	if r == nil || len(r.Results) == 0 {
		return ""
	}
	return r.Results[0]
}
