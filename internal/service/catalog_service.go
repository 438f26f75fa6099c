package service

import (
	"context"
	"time"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/metrics"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/pkg/catalog"
	"skill-exchange-ai/pkg/embedding"
)

const catalogModule = "CATALOG"

type ICatalogService interface {
	// Load embeds the catalog rows and publishes the result to the holder.
	Load(ctx context.Context) error
	// LoadInBackground retries Load every interval until it succeeds or ctx is done.
	LoadInBackground(ctx context.Context, interval time.Duration)
}

type CatalogOptions struct {
	Dimension int
	// Model names the embedding model in cache keys. Empty disables the embedding cache.
	Model string
}

type catalogService struct {
	rows       []catalog.Row
	embedder   embedding.TextEmbedder
	uowFactory unitofwork.RepositoryFactory
	holder     *catalog.Holder
	logger     logger.ILogger
	opts       CatalogOptions
}

func NewCatalogService(
	rows []catalog.Row,
	embedder embedding.TextEmbedder,
	uowFactory unitofwork.RepositoryFactory,
	holder *catalog.Holder,
	logger logger.ILogger,
	opts CatalogOptions,
) ICatalogService {
	return &catalogService{
		rows:       rows,
		embedder:   embedder,
		uowFactory: uowFactory,
		holder:     holder,
		logger:     logger,
		opts:       opts,
	}
}

func (s *catalogService) Load(ctx context.Context) error {
	buildOpts := []catalog.BuildOption{catalog.WithDimension(s.opts.Dimension)}
	if s.opts.Model != "" {
		buildOpts = append(buildOpts, catalog.WithEmbeddingCache(&courseEmbeddingCache{uowFactory: s.uowFactory}, s.opts.Model))
	}

	start := time.Now()
	cat, stats, err := catalog.Build(ctx, s.rows, s.embedder, buildOpts...)
	if err != nil {
		return err
	}

	s.holder.Set(cat)
	metrics.CatalogCourses.Set(float64(cat.Len()))
	s.logger.Info(catalogModule, "Catalog loaded", map[string]interface{}{
		"rows":         stats.Rows,
		"courses":      cat.Len(),
		"dropped":      stats.Dropped,
		"embedded":     stats.Embedded,
		"cache_hits":   stats.CacheHits,
		"cache_errors": stats.CacheErrors,
		"elapsed_ms":   time.Since(start).Milliseconds(),
	})
	return nil
}

func (s *catalogService) LoadInBackground(ctx context.Context, interval time.Duration) {
	go func() {
		for {
			err := s.Load(ctx)
			if err == nil {
				return
			}
			s.logger.Warn(catalogModule, "Catalog build failed, retrying", map[string]interface{}{
				"error":    err.Error(),
				"retry_in": interval.String(),
			})

			select {
			case <-ctx.Done():
				return
			case <-time.After(interval):
			}
		}
	}()
}

// courseEmbeddingCache stores course vectors in the course_embeddings table.
type courseEmbeddingCache struct {
	uowFactory unitofwork.RepositoryFactory
}

func (c *courseEmbeddingCache) Get(ctx context.Context, key string) ([]float64, bool, error) {
	stored, err := c.uowFactory.NewUnitOfWork(ctx).CourseEmbeddingRepository().FindByKey(ctx, key)
	if err != nil || stored == nil {
		return nil, false, err
	}

	vector := make([]float64, len(stored.Embedding))
	for i, v := range stored.Embedding {
		vector[i] = float64(v)
	}
	return vector, true, nil
}

func (c *courseEmbeddingCache) Put(ctx context.Context, key, model, text string, vector []float64) error {
	values := make([]float32, len(vector))
	for i, v := range vector {
		values[i] = float32(v)
	}
	return c.uowFactory.NewUnitOfWork(ctx).CourseEmbeddingRepository().Upsert(ctx, &entity.CourseEmbedding{
		Key:        key,
		Model:      model,
		SkillsText: text,
		Embedding:  values,
		CreatedAt:  time.Now().UTC(),
	})
}
