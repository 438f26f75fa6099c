package embedding

import "context"

// Task types understood by providers that distinguish them (Gemini). Others ignore it.
const (
	TaskSemanticSimilarity = "SEMANTIC_SIMILARITY"
	TaskClassification     = "CLASSIFICATION"
)

// EmbeddingProvider defines the interface for generating text embeddings
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error)
}

// TextEmbedder is what the classification and ranking code depends on.
type TextEmbedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}
