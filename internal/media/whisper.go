package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// WhisperTranscriber handles speech-to-text transcription using an
// OpenAI-compatible Whisper API.
type WhisperTranscriber struct {
	apiBase string
	apiKey  string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

// WhisperConfig configures the transcription provider.
type WhisperConfig struct {
	APIBase string
	APIKey  string
	Model   string
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewWhisperTranscriber creates a Whisper transcription provider.
func NewWhisperTranscriber(cfg WhisperConfig) *WhisperTranscriber {
	if cfg.APIBase == "" {
		cfg.APIBase = "https://api.openai.com/v1"
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &WhisperTranscriber{
		apiBase: cfg.APIBase,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  log.With(slog.String("service", "transcriber")),
	}
}

// Configured reports whether the provider has credentials.
func (w *WhisperTranscriber) Configured() bool {
	return strings.TrimSpace(w.apiKey) != ""
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe converts audio bytes to text. filename should carry the
// extension the backend uses for format detection (e.g. "audio.ogg").
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	if !w.Configured() {
		return "", ErrNotConfigured
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("copy audio data: %w", err)
	}
	_ = writer.WriteField("model", w.model)
	_ = writer.WriteField("response_format", "json")
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.apiBase+"/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call transcription backend: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription backend returned %d", resp.StatusCode)
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	w.logger.Debug("audio transcribed", slog.Int("chars", len(parsed.Text)))
	return parsed.Text, nil
}

var _ Transcriber = (*WhisperTranscriber)(nil)
