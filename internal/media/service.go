package media

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/marialabs/mari-gateway/internal/chat"
)

// Fixed fallback strings. Interpretation failures never abort the
// pipeline; the classifier receives these instead.
const (
	FallbackVisionUnavailable = "Serviço de visão não configurado."
	FallbackImageFailed       = "Não foi possível interpretar a imagem."
	FallbackAudioFailed       = "Não foi possível interpretar o áudio."

	// StubTranscript is served when no transcription backend is configured,
	// so development setups can exercise the audio path without credentials.
	StubTranscript = `O usuário disse: "Quero adicionar o tênis azul tamanho 42 ao meu carrinho."`
)

// Interpreter turns the first attachment of a message into text.
type Interpreter struct {
	vision      VisionDescriber
	transcriber Transcriber
	fetcher     Fetcher
	logger      *slog.Logger
}

// NewInterpreter creates the attachment interpreter. Any collaborator may
// be nil; the matching attachment kind then takes its degraded path.
func NewInterpreter(log *slog.Logger, vision VisionDescriber, transcriber Transcriber, fetcher Fetcher) *Interpreter {
	if log == nil {
		log = slog.Default()
	}
	return &Interpreter{
		vision:      vision,
		transcriber: transcriber,
		fetcher:     fetcher,
		logger:      log.With(slog.String("service", "media")),
	}
}

// Interpret converts the attachments into a textual interpretation. Only
// the first attachment is read; the rest are ignored. Unknown attachment
// types and empty lists produce a nil text.
func (s *Interpreter) Interpret(ctx context.Context, attachments []Attachment) Interpretation {
	if len(attachments) == 0 {
		return Interpretation{}
	}
	first := attachments[0]
	s.logger.Info("interpreting attachment",
		slog.String("attachment_type", string(first.Type)),
		slog.String("url", first.URL),
	)

	switch first.Type {
	case AttachmentTypeImage:
		text := s.interpretImage(ctx, first.URL)
		return Interpretation{Text: &text}
	case AttachmentTypeAudio:
		text := s.interpretAudio(ctx, first.URL)
		return Interpretation{Text: &text}
	default:
		return Interpretation{}
	}
}

func (s *Interpreter) interpretImage(ctx context.Context, url string) string {
	if s.vision == nil {
		return FallbackVisionUnavailable
	}
	text, err := s.vision.Describe(ctx, url)
	if err != nil {
		if errors.Is(err, chat.ErrNotConfigured) {
			return FallbackVisionUnavailable
		}
		s.logger.Error("image interpretation failed", slog.String("error", err.Error()))
		return FallbackImageFailed
	}
	if strings.TrimSpace(text) == "" {
		return FallbackImageFailed
	}
	return text
}

func (s *Interpreter) interpretAudio(ctx context.Context, url string) string {
	if s.transcriber == nil || s.fetcher == nil || !s.transcriber.Configured() {
		s.logger.Debug("transcription backend not configured, using stub transcript",
			slog.String("audio_url", url),
		)
		return StubTranscript
	}

	audio, filename, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Error("audio fetch failed", slog.String("error", err.Error()))
		return FallbackAudioFailed
	}
	defer func() {
		_ = audio.Close()
	}()

	text, err := s.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return StubTranscript
		}
		s.logger.Error("audio transcription failed", slog.String("error", err.Error()))
		return FallbackAudioFailed
	}
	if strings.TrimSpace(text) == "" {
		return FallbackAudioFailed
	}
	return text
}
