package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Catalog   CatalogConfig
	Recommend RecommendConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	SocketLogFilePath  string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Driver     string // "postgres" or "memory"
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	Jina         string
}

type AIConfig struct {
	EmbeddingProvider    string // "ollama", "gemini" or "jina"
	OllamaBaseURL        string
	OllamaModel          string
	EmbeddingDimension   int
	BreakerMaxFailures   int
	BreakerOpenTimeout   time.Duration
	CacheCourseEmbedding bool
}

type CatalogConfig struct {
	Path      string
	EmojiPath string
}

type RecommendConfig struct {
	Limit              int
	DefaultSimilarity  float64
	MinSimilarity      float64
	ClassificationTTL  time.Duration
	UserFallbackCorpus bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			SocketLogFilePath:  getEnv("SOCKET_LOG_FILE_PATH", "logs/socket.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:5000"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Jina:         getEnv("JINA_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    strings.ToLower(getEnv("EMBEDDING_PROVIDER", "ollama")),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:          getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			EmbeddingDimension:   getEnvAsInt("EMBEDDING_DIMENSION", 384),
			BreakerMaxFailures:   getEnvAsInt("EMBEDDING_BREAKER_MAX_FAILURES", 5),
			BreakerOpenTimeout:   getEnvAsDuration("EMBEDDING_BREAKER_OPEN_TIMEOUT", 30*time.Second),
			CacheCourseEmbedding: getEnvAsBool("CACHE_COURSE_EMBEDDINGS", true),
		},
		Catalog: CatalogConfig{
			Path:      getEnv("CATALOG_PATH", "data/coursera.csv"),
			EmojiPath: getEnv("EMOJI_PATH", ""),
		},
		Recommend: RecommendConfig{
			Limit:              getEnvAsInt("RECOMMEND_LIMIT", 3),
			DefaultSimilarity:  getEnvAsFloat("RECOMMEND_DEFAULT_SIMILARITY", 0.3),
			MinSimilarity:      getEnvAsFloat("CLASSIFIER_MIN_SIMILARITY", 0.05),
			ClassificationTTL:  getEnvAsDuration("CLASSIFICATION_TTL", time.Hour),
			UserFallbackCorpus: getEnvAsBool("USER_FALLBACK_CORPUS", false),
		},
	}
}

// CorsOrigins splits the configured origins list.
func (c AppConfig) CorsOrigins() []string {
	origins := make([]string, 0)
	for _, o := range strings.Split(c.CorsAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
