package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"RECOMMEND_LIMIT", "RECOMMEND_DEFAULT_SIMILARITY", "CLASSIFIER_MIN_SIMILARITY", "CLASSIFICATION_TTL", "EMBEDDING_DIMENSION", "STORE_DRIVER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 3, cfg.Recommend.Limit)
	assert.Equal(t, 0.3, cfg.Recommend.DefaultSimilarity)
	assert.Equal(t, 0.05, cfg.Recommend.MinSimilarity)
	assert.Equal(t, time.Hour, cfg.Recommend.ClassificationTTL)
	assert.Equal(t, 384, cfg.Ai.EmbeddingDimension)
	assert.False(t, cfg.Recommend.UserFallbackCorpus)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RECOMMEND_LIMIT", "5")
	t.Setenv("CLASSIFICATION_TTL", "120")
	t.Setenv("CLASSIFIER_MIN_SIMILARITY", "0.2")
	t.Setenv("STORE_DRIVER", "Memory")

	cfg := Load()

	assert.Equal(t, 5, cfg.Recommend.Limit)
	assert.Equal(t, 2*time.Minute, cfg.Recommend.ClassificationTTL)
	assert.Equal(t, 0.2, cfg.Recommend.MinSimilarity)
	assert.Equal(t, "memory", cfg.Database.Driver)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "garbage")
	assert.Equal(t, time.Second, getEnvAsDuration("TEST_DURATION", time.Second))
}

func TestCorsOrigins(t *testing.T) {
	app := AppConfig{CorsAllowedOrigins: "http://a, ,http://b"}
	assert.Equal(t, []string{"http://a", "http://b"}, app.CorsOrigins())
}
