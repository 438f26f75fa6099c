package classifier

import (
	"context"
	"fmt"

	"skill-exchange-ai/pkg/catalog"
	"skill-exchange-ai/pkg/embedding"
	"skill-exchange-ai/pkg/utils"

	"gonum.org/v1/gonum/floats"
)

const (
	UnknownCategory  = "Unknown"
	DefaultThreshold = 0.05
)

// Result is the nearest catalog course for a corpus, or Unknown with zero similarity.
type Result struct {
	Category   string
	Skills     []string
	Similarity float64
}

func Unknown() Result {
	return Result{Category: UnknownCategory, Skills: []string{}, Similarity: 0}
}

type Options struct {
	// Threshold is the minimum similarity a course must strictly exceed.
	Threshold float64
}

type Classifier struct {
	embedder  embedding.TextEmbedder
	threshold float64
}

func New(embedder embedding.TextEmbedder, opts Options) *Classifier {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Classifier{embedder: embedder, threshold: threshold}
}

// CorpusText normalizes each message and joins the non-empty results.
func CorpusText(corpus []string) string {
	return utils.NormalizeJoin(corpus)
}

// Classify labels a corpus with the closest course of cat. An empty normalized corpus
// is Unknown without an embedding call. Ties keep the earliest course.
func (c *Classifier) Classify(ctx context.Context, corpus []string, cat *catalog.Catalog) (Result, error) {
	return c.ClassifyText(ctx, CorpusText(corpus), cat)
}

// ClassifyText is Classify for text that is already normalized.
func (c *Classifier) ClassifyText(ctx context.Context, text string, cat *catalog.Catalog) (Result, error) {
	if text == "" {
		return Unknown(), nil
	}

	vector, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("classify: %w", err)
	}
	return c.Nearest(vector, cat), nil
}

// Nearest scans the catalog in order and keeps the first course with the highest
// similarity above the threshold.
func (c *Classifier) Nearest(vector []float64, cat *catalog.Catalog) Result {
	best := Unknown()
	for _, profile := range cat.Profiles() {
		if len(profile.Skills) == 0 {
			continue
		}
		sim := Cosine(vector, profile.Embedding)
		if sim > best.Similarity && sim > c.threshold {
			best = Result{
				Category:   profile.CourseName,
				Skills:     append([]string(nil), profile.Skills...),
				Similarity: sim,
			}
		}
	}
	return best
}

// Cosine returns the cosine similarity of a and b, 0 when either is a zero vector
// or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}
