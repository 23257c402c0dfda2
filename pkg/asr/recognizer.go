package asr

import "context"

// Recognizer bundles format conversion with an engine: any input ffmpeg
// understands comes in, a transcript comes out.
type Recognizer struct {
	engine     Engine
	transcoder *Transcoder
}

// RecognizerOption configures a Recognizer.
type RecognizerOption func(*Recognizer)

// WithTranscoder replaces the default transcoder.
func WithTranscoder(t *Transcoder) RecognizerOption {
	return func(r *Recognizer) {
		r.transcoder = t
	}
}

// NewRecognizer creates a recognizer around the given engine.
func NewRecognizer(engine Engine, opts ...RecognizerOption) *Recognizer {
	r := &Recognizer{
		engine:     engine,
		transcoder: NewTranscoder(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecognizeFile transcodes the audio file and recognizes it. The
// intermediate WAV is removed on every exit path.
func (r *Recognizer) RecognizeFile(ctx context.Context, path string) (*Result, error) {
	wavPath, cleanup, err := r.transcoder.ToWAV(ctx, path)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return r.engine.Recognize(ctx, wavPath)
}
