package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"skill-exchange-ai/pkg/embedding"
	"skill-exchange-ai/pkg/utils"
)

const DefaultDimension = 384

// CourseProfile is one classification target. Profiles are immutable once built.
type CourseProfile struct {
	Position   int
	CourseName string
	Partner    string
	Rating     float64
	Level      string
	Duration   string
	Skills     []string
	SkillsText string
	Embedding  []float64
}

// Catalog is the ordered, read-only set of course profiles. Order is file order.
type Catalog struct {
	profiles  []CourseProfile
	dimension int
}

func (c *Catalog) Profiles() []CourseProfile {
	if c == nil {
		return nil
	}
	return c.profiles
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.profiles)
}

func (c *Catalog) Dimension() int {
	if c == nil {
		return 0
	}
	return c.dimension
}

// EmbeddingCache persists skill-text vectors across restarts.
type EmbeddingCache interface {
	Get(ctx context.Context, key string) ([]float64, bool, error)
	Put(ctx context.Context, key, model, text string, vector []float64) error
}

// BuildStats summarises one build.
type BuildStats struct {
	Rows        int
	Dropped     int
	Embedded    int
	CacheHits   int
	CacheErrors int
}

type BuildOption func(*buildSettings)

type buildSettings struct {
	dimension int
	cache     EmbeddingCache
	model     string
}

func WithDimension(d int) BuildOption {
	return func(s *buildSettings) {
		if d > 0 {
			s.dimension = d
		}
	}
}

// WithEmbeddingCache reuses vectors stored for the same model and skills text.
func WithEmbeddingCache(cache EmbeddingCache, model string) BuildOption {
	return func(s *buildSettings) {
		s.cache = cache
		s.model = model
	}
}

// Build turns raw rows into profiles: rows without skills are dropped, the remaining
// skills are normalized into SkillsText and embedded once. Empty SkillsText gets a
// zero vector of the configured dimension.
func Build(ctx context.Context, rows []Row, embedder embedding.TextEmbedder, opts ...BuildOption) (*Catalog, BuildStats, error) {
	settings := buildSettings{dimension: DefaultDimension}
	for _, opt := range opts {
		opt(&settings)
	}

	stats := BuildStats{Rows: len(rows)}
	profiles := make([]CourseProfile, 0, len(rows))

	for _, row := range rows {
		skills := ParseSkills(row.Skills)
		if len(skills) == 0 {
			stats.Dropped++
			continue
		}

		skillsText := utils.NormalizeJoin(skills)
		vector, err := settings.vectorFor(ctx, embedder, skillsText, &stats)
		if err != nil {
			return nil, stats, fmt.Errorf("embed course %q: %w", row.Course, err)
		}

		profiles = append(profiles, CourseProfile{
			Position:   len(profiles),
			CourseName: row.Course,
			Partner:    row.Partner,
			Rating:     parseRating(row.Rating),
			Level:      row.Level,
			Duration:   row.Duration,
			Skills:     skills,
			SkillsText: skillsText,
			Embedding:  vector,
		})
	}

	return &Catalog{profiles: profiles, dimension: settings.dimension}, stats, nil
}

func (s buildSettings) vectorFor(ctx context.Context, embedder embedding.TextEmbedder, text string, stats *BuildStats) ([]float64, error) {
	if text == "" {
		return make([]float64, s.dimension), nil
	}

	var key string
	if s.cache != nil {
		key = CacheKey(s.model, text)
		vector, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			stats.CacheErrors++
		case ok:
			stats.CacheHits++
			return vector, nil
		}
	}

	vector, err := embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	stats.Embedded++

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, s.model, text, vector); err != nil {
			stats.CacheErrors++
		}
	}
	return vector, nil
}

// CacheKey identifies a vector by model and input text.
func CacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// Holder publishes a catalog once it has been built. Readers never block.
type Holder struct {
	current atomic.Pointer[Catalog]
}

func NewHolder() *Holder {
	return &Holder{}
}

func (h *Holder) Set(c *Catalog) {
	h.current.Store(c)
}

// Get returns the loaded catalog or nil.
func (h *Holder) Get() *Catalog {
	return h.current.Load()
}

// Ready reports whether a non-empty catalog is loaded.
func (h *Holder) Ready() bool {
	return h.Get().Len() > 0
}
