package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter decide si una IP puede enviar otro mensaje de chat.
// Cuando rechaza, devuelve cuánto falta para que se abra la ventana.
type RateLimiter interface {
	Allow(ctx context.Context, clientIP string) (bool, time.Duration)
}

// El script devuelve {mensajes en la ventana, segundos restantes de la ventana}.
const redisChatWindowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisChatRateLimiter struct {
	client      redisEvaler
	window      time.Duration
	maxMessages int
}

// NewRedisChatRateLimiter limita a maxMessages por IP en cada ventana.
// Devuelve nil (sin límite) si no hay cliente o maxMessages <= 0.
func NewRedisChatRateLimiter(client *redis.Client, window time.Duration, maxMessages int) RateLimiter {
	if client == nil || maxMessages <= 0 {
		return nil
	}
	if window < time.Second {
		window = time.Minute
	}
	return &redisChatRateLimiter{client: client, window: window, maxMessages: maxMessages}
}

func chatWindowKey(clientIP string) string {
	return "chat:rl:" + clientIP
}

// Allow falla abierto: si Redis no responde, el mensaje pasa.
func (l *redisChatRateLimiter) Allow(ctx context.Context, clientIP string) (bool, time.Duration) {
	if l == nil || l.client == nil {
		return true, 0
	}
	clientIP = strings.TrimSpace(clientIP)
	if clientIP == "" {
		return false, l.window
	}

	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	res, err := l.client.Eval(ctx, redisChatWindowScript, []string{chatWindowKey(clientIP)}, int(l.window/time.Second)).Int64Slice()
	if err != nil || len(res) != 2 {
		return true, 0
	}
	if res[0] <= int64(l.maxMessages) {
		return true, 0
	}

	retryAfter := time.Duration(res[1]) * time.Second
	if retryAfter <= 0 {
		retryAfter = l.window
	}
	return false, retryAfter
}
