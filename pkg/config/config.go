package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Knowledge KnowledgeConfig
	RAG       RAGConfig
	LLM       LLMConfig
	OpenAI    OpenAIConfig
	GigaChat  GigaChatConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type KnowledgeConfig struct {
	DatabasePath string
}

type RAGConfig struct {
	// TopK is the number of ranked entries handed to the answer generator.
	TopK int
	// SearchLimit caps the general search path.
	SearchLimit int
}

type LLMConfig struct {
	Provider string // "openai" or "gigachat"
	Timeout  time.Duration
}

type OpenAIConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// Missing .env is fine: environment variables are used directly
	// (the usual case in Docker/K8s).

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	ragTopK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "3"))
	searchLimit, _ := strconv.Atoi(getEnv("SEARCH_LIMIT", "10"))
	llmTimeout, _ := strconv.Atoi(getEnv("LLM_TIMEOUT_SECONDS", "30"))
	maxTokens, _ := strconv.Atoi(getEnv("OPENAI_MAX_TOKENS", "1000"))
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true"

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8001"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Knowledge: KnowledgeConfig{
			DatabasePath: getEnv("SUPPORT_DATABASE_PATH", "./support_database.json"),
		},
		RAG: RAGConfig{
			TopK:        ragTopK,
			SearchLimit: searchLimit,
		},
		LLM: LLMConfig{
			Provider: getEnv("LLM_PROVIDER", "openai"),
			Timeout:  time.Duration(llmTimeout) * time.Second,
		},
		OpenAI: OpenAIConfig{
			APIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens: maxTokens,
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
