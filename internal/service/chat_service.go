package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"medchat/internal/domain"
	"medchat/internal/llm"
	"medchat/internal/repository"
)

// NoMatchingProductsReply se devuelve cuando el filtro no encuentra productos.
const NoMatchingProductsReply = "No matching products found."

var ErrChatServiceNotConfigured = errors.New("chat service not configured")

// PromptLoader entrega el prompt de sistema vigente.
type PromptLoader interface {
	Load() (string, error)
}

// ChatService responde mensajes combinando el LLM con el catálogo de productos.
type ChatService struct {
	logger   *zap.Logger
	llm      llm.ChatCompleter
	products repository.ProductRepository
	history  HistoryStore
	prompts  PromptLoader
}

func NewChatService(
	logger *zap.Logger,
	llmClient llm.ChatCompleter,
	products repository.ProductRepository,
	history HistoryStore,
	prompts PromptLoader,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if history == nil {
		history = NewMemoryHistoryStore(0)
	}
	if prompts == nil {
		prompts = NewSystemPromptLoader("")
	}
	return &ChatService{
		logger:   logger,
		llm:      llmClient,
		products: products,
		history:  history,
		prompts:  prompts,
	}
}

// Reply procesa un mensaje del usuario. La primera respuesta del LLM puede
// nombrar categorías y atributos; si lo hace, se buscan productos y se pide
// una segunda respuesta con los datos del catálogo en el prompt.
func (s *ChatService) Reply(ctx context.Context, userInput string) (string, error) {
	if s == nil || s.llm == nil || s.products == nil {
		return "", ErrChatServiceNotConfigured
	}

	systemPrompt, err := s.prompts.Load()
	if err != nil {
		return "", fmt.Errorf("load system prompt: %w", err)
	}

	if err := s.history.Append(ctx, domain.Turn{Role: domain.RoleUser, Content: userInput}); err != nil {
		return "", fmt.Errorf("append history: %w", err)
	}

	first, err := s.complete(ctx, systemPrompt)
	if err != nil {
		return "", err
	}

	query := ExtractProductQuery(first)
	if query.IsEmpty() {
		return first, nil
	}

	parentIDs, err := s.products.FindParentIDs(ctx, query)
	if err != nil {
		return "", fmt.Errorf("find products: %w", err)
	}
	s.logger.Info("product lookup",
		zap.Strings("categories", query.Categories),
		zap.Int("conditions", len(query.Conditions)),
		zap.Int("matches", len(parentIDs)),
	)
	if len(parentIDs) == 0 {
		return NoMatchingProductsReply, nil
	}

	children, err := s.products.ListChildren(ctx, parentIDs)
	if err != nil {
		return "", fmt.Errorf("list product variants: %w", err)
	}

	return s.complete(ctx, BuildProductPrompt(children))
}

// Reset limpia el historial compartido.
func (s *ChatService) Reset(ctx context.Context) error {
	if s == nil {
		return ErrChatServiceNotConfigured
	}
	return s.history.Reset(ctx)
}

// complete llama al LLM con systemPrompt + historial y registra la respuesta.
func (s *ChatService) complete(ctx context.Context, systemPrompt string) (string, error) {
	history, err := s.history.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list history: %w", err)
	}

	turns := make([]domain.Turn, 0, len(history)+1)
	turns = append(turns, domain.Turn{Role: domain.RoleSystem, Content: systemPrompt})
	turns = append(turns, history...)

	reply, err := s.llm.Complete(ctx, turns)
	if err != nil {
		return "", fmt.Errorf("llm completion: %w", err)
	}

	if err := s.history.Append(ctx, domain.Turn{Role: domain.RoleAssistant, Content: reply}); err != nil {
		return "", fmt.Errorf("append history: %w", err)
	}
	return reply, nil
}
