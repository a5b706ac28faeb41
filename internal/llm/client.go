package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"medchat/internal/domain"
)

// ErrEmptyCompletion se devuelve cuando el proveedor no trae contenido.
var ErrEmptyCompletion = errors.New("llm empty response")

// ChatCompleter define la interfaz para generar respuestas a partir de un historial.
type ChatCompleter interface {
	Complete(ctx context.Context, turns []domain.Turn) (string, error)
}

// OpenAIClient implementa ChatCompleter contra cualquier API compatible con OpenAI (Groq incluido).
type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewOpenAIClient construye un cliente apuntando a baseURL.
func NewOpenAIClient(baseURL, apiKey, model string, maxTokens int, logger *zap.Logger) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenAIClient{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, turns []domain.Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{Role: t.Role, Content: t.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		// Temperature 0 se omite en el JSON; el mínimo positivo equivale a respuestas deterministas.
		Temperature: math.SmallestNonzeroFloat32,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		c.logger.Warn("llm completion failed", zap.String("model", c.model), zap.Error(err))
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	c.logger.Debug("llm completion",
		zap.String("model", c.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}
