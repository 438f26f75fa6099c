package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"skill-exchange-ai/pkg/classifier"
	"skill-exchange-ai/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaEmbedding(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}

	embedder := embedding.NewEmbedder(embedding.NewOllamaProvider(baseURL, os.Getenv("OLLAMA_EMBEDDING_MODEL")), "ollama-it")
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	python, err := embedder.Embed(ctx, "python sql data analysis")
	require.NoError(t, err)
	pandas, err := embedder.Embed(ctx, "pandas numpy data science")
	require.NoError(t, err)
	baking, err := embedder.Embed(ctx, "baking bread pastry")
	require.NoError(t, err)

	assert.NotEmpty(t, python)
	assert.Greater(t, classifier.Cosine(python, pandas), classifier.Cosine(python, baking))
}
