// Package asr provides Chinese speech recognition over interchangeable
// engines.
//
// Three engines are provided: a cloud engine backed by the Baidu
// short-speech API, an offline engine driving a local recognizer process,
// and a hybrid engine that tries the cloud first and falls back to the
// offline engine at most once.
//
// Engines consume 16 kHz mono s16le WAV. Transcode converts arbitrary
// inputs (including DingTalk OGG/Opus voice files) to that format with
// ffmpeg, and Recognizer bundles transcoding with an engine.
package asr
