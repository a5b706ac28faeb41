package llm

import (
	"context"
	"sync"

	"medchat/internal/domain"
)

// MockClient permite tests sin llamar a un LLM real.
// Devuelve Responses en orden; cuando se agotan repite la última.
type MockClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     [][]domain.Turn
}

func (m *MockClient) Complete(_ context.Context, turns []domain.Turn) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]domain.Turn, len(turns))
	copy(snapshot, turns)
	m.Calls = append(m.Calls, snapshot)

	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	idx := len(m.Calls) - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}
