package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"medchat/internal/domain"
)

// HistoryStore guarda el historial compartido que se envía al LLM.
type HistoryStore interface {
	Append(ctx context.Context, turns ...domain.Turn) error
	List(ctx context.Context) ([]domain.Turn, error)
	Reset(ctx context.Context) error
}

// MemoryHistoryStore mantiene el historial en memoria del proceso.
type MemoryHistoryStore struct {
	mu    sync.Mutex
	limit int
	turns []domain.Turn
}

// NewMemoryHistoryStore crea un store acotado a limit turnos (0 = sin límite).
func NewMemoryHistoryStore(limit int) *MemoryHistoryStore {
	return &MemoryHistoryStore{limit: limit}
}

func (s *MemoryHistoryStore) Append(_ context.Context, turns ...domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turns...)
	if s.limit > 0 && len(s.turns) > s.limit {
		s.turns = append([]domain.Turn(nil), s.turns[len(s.turns)-s.limit:]...)
	}
	return nil
}

func (s *MemoryHistoryStore) List(_ context.Context) ([]domain.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out, nil
}

func (s *MemoryHistoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	s.turns = nil
	s.mu.Unlock()
	return nil
}

type redisLister interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisHistoryStore struct {
	client redisLister
	key    string
	limit  int
}

// NewRedisHistoryStore guarda el historial como una lista JSON en Redis,
// así varias instancias del backend comparten la misma conversación.
func NewRedisHistoryStore(client *redis.Client, limit int) HistoryStore {
	if client == nil {
		return nil
	}
	return &redisHistoryStore{client: client, key: "chat:history", limit: limit}
}

func (s *redisHistoryStore) Append(ctx context.Context, turns ...domain.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshal turn: %w", err)
		}
		values = append(values, string(data))
	}
	if err := s.client.RPush(ctx, s.key, values...).Err(); err != nil {
		return fmt.Errorf("push history: %w", err)
	}
	if s.limit > 0 {
		if err := s.client.LTrim(ctx, s.key, int64(-s.limit), -1).Err(); err != nil {
			return fmt.Errorf("trim history: %w", err)
		}
	}
	return nil
}

func (s *redisHistoryStore) List(ctx context.Context) ([]domain.Turn, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	turns := make([]domain.Turn, 0, len(raw))
	for _, item := range raw {
		var t domain.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (s *redisHistoryStore) Reset(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
