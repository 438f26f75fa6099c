package service

import (
	"context"
	"time"

	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/metrics"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/internal/pkg/serverutils"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/pkg/sentiment"

	"github.com/patrickmn/go-cache"
)

const (
	sentimentModule = "SENTIMENT"

	FeedbackSubmitted = "feedback submitted"

	lexiconCacheTTL     = 10 * time.Minute
	lexiconCacheCleanup = 20 * time.Minute
)

type ISentimentService interface {
	Analyze(ctx context.Context, request *dto.AnalyzeSentimentRequest) (*dto.AnalyzeSentimentResponse, error)
	// AnalyzeMessage never fails: a broken lexicon yields the neutral result.
	AnalyzeMessage(ctx context.Context, message, language string) sentiment.Result
	SubmitFeedback(ctx context.Context, request *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
}

type sentimentService struct {
	uowFactory unitofwork.RepositoryFactory
	analyzer   *sentiment.Analyzer
	logger     logger.ILogger
}

func NewSentimentService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger, opts ...sentiment.Option) ISentimentService {
	lexicon := NewCachedLexicon(uowFactory)
	return &sentimentService{
		uowFactory: uowFactory,
		analyzer:   sentiment.NewAnalyzer(lexicon, opts...),
		logger:     logger,
	}
}

func (s *sentimentService) Analyze(ctx context.Context, request *dto.AnalyzeSentimentRequest) (*dto.AnalyzeSentimentResponse, error) {
	language := request.Language
	if language == "" {
		language = sentiment.LanguageAuto
	}

	result := s.AnalyzeMessage(ctx, request.Message, language)
	return &dto.AnalyzeSentimentResponse{
		Emotions: result.Emotions,
		Emoji:    result.Emoji,
		Language: result.Language,
	}, nil
}

func (s *sentimentService) AnalyzeMessage(ctx context.Context, message, language string) sentiment.Result {
	result, err := s.analyzer.Analyze(ctx, message, language)
	if err != nil {
		s.logger.Error(sentimentModule, "Sentiment analysis failed, returning neutral", map[string]interface{}{
			"error": err.Error(),
		})
		fallback := language
		if fallback == "" || fallback == sentiment.LanguageAuto {
			fallback = sentiment.LanguageEnglish
		}
		result = sentiment.Neutral(fallback)
	}

	metrics.SentimentAnalyses.WithLabelValues(result.Language).Inc()
	s.logger.Debug(sentimentModule, "Message analyzed", map[string]interface{}{
		"language": result.Language,
		"dominant": result.Dominant,
		"matched":  len(result.Matched),
	})
	return result
}

func (s *sentimentService) SubmitFeedback(ctx context.Context, request *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	feedback := &entity.SentimentFeedback{
		MessageId: request.MessageId,
		Feedback:  request.Feedback,
		CreatedAt: time.Now(),
	}
	if err := uow.FeedbackRepository().Create(ctx, feedback); err != nil {
		return nil, serverutils.Internal("Failed to store feedback", err)
	}

	s.logger.Info(sentimentModule, "Feedback stored", map[string]interface{}{
		"message_id": request.MessageId,
	})
	return &dto.FeedbackResponse{Status: FeedbackSubmitted}, nil
}

// CachedLexicon reads lexicon entries through the store and keeps them in memory for a while.
type CachedLexicon struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewCachedLexicon(uowFactory unitofwork.RepositoryFactory) *CachedLexicon {
	return &CachedLexicon{
		uowFactory: uowFactory,
		cache:      cache.New(lexiconCacheTTL, lexiconCacheCleanup),
	}
}

func (l *CachedLexicon) Lookup(ctx context.Context, word string) ([]sentiment.Entry, error) {
	if x, found := l.cache.Get(word); found {
		return x.([]sentiment.Entry), nil
	}

	uow := l.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.LexiconRepository().FindByWord(ctx, word)
	if err != nil {
		return nil, err
	}

	entries := make([]sentiment.Entry, 0, len(stored))
	for _, e := range stored {
		entries = append(entries, sentiment.Entry{
			Word:     e.Word,
			Language: e.Language,
			Emotions: e.Emotions,
		})
	}
	l.cache.Set(word, entries, cache.DefaultExpiration)
	return entries, nil
}
