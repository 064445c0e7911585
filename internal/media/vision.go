package media

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/marialabs/mari-gateway/internal/chat"
)

// visionInstruction is the fixed prompt sent with every image.
const visionInstruction = "Descreva a imagem e sugira um produto relacionado: "

const visionMaxTokens = 300

// ChatVision describes images through the chat backend's vision-capable
// model.
type ChatVision struct {
	client chat.Client
	model  string
	logger *slog.Logger
}

// NewChatVision creates a VisionDescriber backed by the given chat client.
func NewChatVision(log *slog.Logger, client chat.Client, model string) *ChatVision {
	if log == nil {
		log = slog.Default()
	}
	return &ChatVision{
		client: client,
		model:  model,
		logger: log.With(slog.String("service", "vision")),
	}
}

// Describe asks the vision model for a description of the image URL.
func (v *ChatVision) Describe(ctx context.Context, imageURL string) (string, error) {
	maxTokens := visionMaxTokens
	result, err := v.client.Complete(ctx, chat.Request{
		Model: v.model,
		Messages: []chat.Message{
			{Role: chat.RoleUser, Content: visionInstruction + imageURL},
		},
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("describe image: %w", err)
	}
	text := strings.TrimSpace(result.Message.Content)
	if text == "" {
		return "", chat.ErrEmptyCompletion
	}
	return text, nil
}

var _ VisionDescriber = (*ChatVision)(nil)
