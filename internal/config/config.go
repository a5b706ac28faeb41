package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del backend de chat.
type Config struct {
	HTTPPort         string        `env:"HTTP_PORT" envDefault:"8000"`
	DatabaseURL      string        `env:"DATABASE_URL,required,notEmpty"`
	LLMAPIKey        string        `env:"LLM_API_KEY,required,notEmpty"`
	LLMBaseURL       string        `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel         string        `env:"LLM_MODEL" envDefault:"qwen-2.5-32b"`
	LLMMaxTokens     int           `env:"LLM_MAX_TOKENS" envDefault:"1024"`
	SystemPromptFile string        `env:"SYSTEM_PROMPT_FILE" envDefault:"keys.txt"`
	StaticDir        string        `env:"STATIC_DIR" envDefault:"static"`
	CORSOrigins      []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	RedisAddr        string        `env:"REDIS_ADDR"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	HistoryLimit     int           `env:"HISTORY_LIMIT" envDefault:"50"`
	ChatRateLimit    int           `env:"CHAT_RATE_LIMIT" envDefault:"30"`
	ChatRateWindow   time.Duration `env:"CHAT_RATE_WINDOW" envDefault:"1m"`
}

// ClientConfig configura el cliente de conversación de terminal.
type ClientConfig struct {
	ChatAPIURL     string `env:"CHAT_API_URL" envDefault:"http://localhost:8000"`
	ViewportHeight int    `env:"VIEWPORT_HEIGHT" envDefault:"24"`
}

// LoadConfig carga la configuración del servidor desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClientConfig carga la configuración del cliente desde variables de entorno.
func LoadClientConfig() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
