package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"medchat/internal/domain"
	"medchat/internal/llm"
)

type mockProductRepo struct {
	parentIDs   []string
	children    []domain.Product
	findErr     error
	lastQuery   domain.ProductQuery
	findCalls   int
	lastParents []string
}

func (m *mockProductRepo) FindParentIDs(_ context.Context, query domain.ProductQuery) ([]string, error) {
	m.findCalls++
	m.lastQuery = query
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.parentIDs, nil
}

func (m *mockProductRepo) ListChildren(_ context.Context, parentIDs []string) ([]domain.Product, error) {
	m.lastParents = parentIDs
	return m.children, nil
}

type staticPrompt string

func (p staticPrompt) Load() (string, error) { return string(p), nil }

func newTestChatService(client llm.ChatCompleter, repo *mockProductRepo, history HistoryStore) *ChatService {
	return NewChatService(zap.NewNop(), client, repo, history, staticPrompt("sys"))
}

func TestChatServiceReply_PlainConversation(t *testing.T) {
	client := &llm.MockClient{Responses: []string{"Hello! How can I help?"}}
	repo := &mockProductRepo{}
	history := NewMemoryHistoryStore(0)
	svc := newTestChatService(client, repo, history)

	out, err := svc.Reply(context.Background(), "hi")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "Hello! How can I help?" {
		t.Fatalf("unexpected reply %q", out)
	}
	if repo.findCalls != 0 {
		t.Fatalf("expected no catalog lookup")
	}
	if len(client.Calls) != 1 {
		t.Fatalf("expected one llm call, got %d", len(client.Calls))
	}
	call := client.Calls[0]
	if call[0].Role != domain.RoleSystem || call[0].Content != "sys" || call[1].Content != "hi" {
		t.Fatalf("unexpected llm turns %+v", call)
	}

	turns, _ := history.List(context.Background())
	if len(turns) != 2 || turns[1].Role != domain.RoleAssistant {
		t.Fatalf("expected user+assistant in history, got %+v", turns)
	}
}

func TestChatServiceReply_ProductRecommendation(t *testing.T) {
	client := &llm.MockClient{Responses: []string{
		"Category: Protein, Vitamins\nTags: vegan",
		"Try Whey Plus at ₹999",
	}}
	repo := &mockProductRepo{
		parentIDs: []string{"p1"},
		children:  []domain.Product{{"name": "Whey Plus", "price": 999}},
	}
	svc := newTestChatService(client, repo, NewMemoryHistoryStore(0))

	out, err := svc.Reply(context.Background(), "need protein")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != "Try Whey Plus at ₹999" {
		t.Fatalf("unexpected reply %q", out)
	}
	if len(repo.lastQuery.Categories) != 2 || len(repo.lastQuery.Conditions) != 1 {
		t.Fatalf("unexpected query %+v", repo.lastQuery)
	}
	if len(repo.lastParents) != 1 || repo.lastParents[0] != "p1" {
		t.Fatalf("expected children lookup for p1, got %+v", repo.lastParents)
	}
	if len(client.Calls) != 2 {
		t.Fatalf("expected two llm calls, got %d", len(client.Calls))
	}
	second := client.Calls[1]
	if !strings.Contains(second[0].Content, `"name":"Whey Plus"`) {
		t.Fatalf("expected product data in system prompt, got %q", second[0].Content)
	}
	if second[len(second)-1].Role != domain.RoleAssistant {
		t.Fatalf("expected first assistant reply in history, got %+v", second)
	}
}

func TestChatServiceReply_NoMatchingProducts(t *testing.T) {
	client := &llm.MockClient{Responses: []string{"Category: Unicorn"}}
	svc := newTestChatService(client, &mockProductRepo{}, nil)

	out, err := svc.Reply(context.Background(), "unicorn food")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != NoMatchingProductsReply {
		t.Fatalf("expected %q, got %q", NoMatchingProductsReply, out)
	}
}

func TestChatServiceReply_Errors(t *testing.T) {
	llmErr := errors.New("groq down")
	svc := newTestChatService(&llm.MockClient{Err: llmErr}, &mockProductRepo{}, nil)
	if _, err := svc.Reply(context.Background(), "hi"); !errors.Is(err, llmErr) {
		t.Fatalf("expected llm error, got %v", err)
	}

	repoErr := errors.New("db down")
	svc = newTestChatService(&llm.MockClient{Responses: []string{"Tags: vegan"}}, &mockProductRepo{findErr: repoErr}, nil)
	if _, err := svc.Reply(context.Background(), "hi"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestChatService_NotConfigured(t *testing.T) {
	var svc *ChatService
	if _, err := svc.Reply(context.Background(), "hi"); !errors.Is(err, ErrChatServiceNotConfigured) {
		t.Fatalf("expected ErrChatServiceNotConfigured, got %v", err)
	}
	svc = NewChatService(nil, nil, nil, nil, nil)
	if _, err := svc.Reply(context.Background(), "hi"); !errors.Is(err, ErrChatServiceNotConfigured) {
		t.Fatalf("expected ErrChatServiceNotConfigured, got %v", err)
	}
}

func TestChatServiceReset(t *testing.T) {
	history := NewMemoryHistoryStore(0)
	svc := newTestChatService(&llm.MockClient{Responses: []string{"hi"}}, &mockProductRepo{}, history)
	if _, err := svc.Reply(context.Background(), "hello"); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if err := svc.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if turns, _ := history.List(context.Background()); len(turns) != 0 {
		t.Fatalf("expected empty history, got %+v", turns)
	}
}
