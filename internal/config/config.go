package config

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DataDir        string `envconfig:"DATA_DIR" default:"data"`
	VectorStoreDir string `envconfig:"VECTOR_STORE_DIR"`
	LeadsCSV       string `envconfig:"LEADS_CSV"`

	OpenAIAPIKey    string        `envconfig:"OPENAI_API_KEY"`
	ChatModel       string        `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`
	EmbeddingModel  string        `envconfig:"EMBEDDING_MODEL"`
	GenerateTimeout time.Duration `envconfig:"GENERATE_TIMEOUT" default:"30s"`
	MaxAnswerTokens int           `envconfig:"MAX_ANSWER_TOKENS" default:"512"`

	ChunkSize      int     `envconfig:"CHUNK_SIZE" default:"1200"`
	ChunkOverlap   int     `envconfig:"CHUNK_OVERLAP" default:"250"`
	TopK           int     `envconfig:"TOP_K" default:"5"`
	ScoreThreshold float64 `envconfig:"SCORE_THRESHOLD" default:"0.35"`

	// Optional YAML file overriding the built-in intent keyword sets
	IntentKeywordsFile string `envconfig:"INTENT_KEYWORDS_FILE"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("LEADLINE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.VectorStoreDir == "" {
		cfg.VectorStoreDir = filepath.Join(cfg.DataDir, "vector_store")
	}
	if cfg.LeadsCSV == "" {
		cfg.LeadsCSV = filepath.Join(cfg.DataDir, "leads.csv")
	}

	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be positive, got %d", cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE), got %d", cfg.ChunkOverlap)
	}
	if cfg.TopK <= 0 {
		return nil, fmt.Errorf("TOP_K must be positive, got %d", cfg.TopK)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
