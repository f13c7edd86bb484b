package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Pinata PinataConfig
	Gemini GeminiConfig
	Redis  RedisConfig
}

// PinataConfig holds the pinning-gateway credentials and endpoints. Missing
// keys are tolerated at startup; the dependent endpoints fail fast with a
// configuration error instead.
type PinataConfig struct {
	APIKey     string        `env:"PINATA_API_KEY"`
	SecretKey  string        `env:"PINATA_SECRET_API_KEY"`
	BaseURL    string        `env:"PINATA_BASE_URL,    default=https://api.pinata.cloud"`
	GatewayURL string        `env:"PINATA_GATEWAY_URL, default=https://gateway.pinata.cloud"`
	Timeout    time.Duration `env:"PINATA_TIMEOUT,     default=15s"`
}

type GeminiConfig struct {
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"GEMINI_MODEL,   default=gemini-pro"`
	Timeout time.Duration `env:"GEMINI_TIMEOUT, default=30s"`
}

// RedisConfig configures the optional email directory. An empty Addr disables
// the directory; login then requires the client-held CID.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
