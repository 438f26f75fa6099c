package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"skill-exchange-ai/internal/constant"
	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/metrics"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/pkg/catalog"
	"skill-exchange-ai/pkg/classifier"
	"skill-exchange-ai/pkg/timedcache"
	"skill-exchange-ai/pkg/utils"
)

const classificationModule = "CLASSIFICATION"

type IClassificationService interface {
	ClassifyGroup(ctx context.Context, group entity.Group, force bool) (*entity.GroupClassification, error)
	// ClassifyGroups keeps input order. A group that fails is reported as Unknown and not cached.
	ClassifyGroups(ctx context.Context, groups []entity.Group, force bool) []*entity.GroupClassification
	ClassifyUser(ctx context.Context, userId string, force bool) (*entity.UserClassification, error)
	GroupSnapshot(ctx context.Context) ([]dto.GroupClassificationResponse, error)
	UserSnapshot(ctx context.Context) ([]dto.UserClassificationResponse, error)
	Snapshot(ctx context.Context) (*dto.CacheSnapshotResponse, error)
}

type ClassificationOptions struct {
	TTL                time.Duration
	UserFallbackCorpus bool
	Clock              func() time.Time
}

type classificationService struct {
	uowFactory     unitofwork.RepositoryFactory
	catalogs       *catalog.Holder
	classifier     *classifier.Classifier
	groupCache     *timedcache.Cache[string, entity.GroupClassification]
	userCache      *timedcache.Cache[string, entity.UserClassification]
	logger         logger.ILogger
	fallbackCorpus bool
	now            func() time.Time
}

func NewClassificationService(
	uowFactory unitofwork.RepositoryFactory,
	catalogs *catalog.Holder,
	classifier *classifier.Classifier,
	logger logger.ILogger,
	opts ClassificationOptions,
) IClassificationService {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	groupCache := timedcache.New[string, entity.GroupClassification](
		&groupClassificationBackend{uowFactory: uowFactory},
		timedcache.WithTTL[string, entity.GroupClassification](opts.TTL),
		timedcache.WithClock[string, entity.GroupClassification](now),
		timedcache.WithObserver[string, entity.GroupClassification](&cacheObserver{entity: "group", logger: logger}),
	)
	userCache := timedcache.New[string, entity.UserClassification](
		&userClassificationBackend{uowFactory: uowFactory},
		timedcache.WithTTL[string, entity.UserClassification](opts.TTL),
		timedcache.WithClock[string, entity.UserClassification](now),
		timedcache.WithObserver[string, entity.UserClassification](&cacheObserver{entity: "user", logger: logger}),
	)

	return &classificationService{
		uowFactory:     uowFactory,
		catalogs:       catalogs,
		classifier:     classifier,
		groupCache:     groupCache,
		userCache:      userCache,
		logger:         logger,
		fallbackCorpus: opts.UserFallbackCorpus,
		now:            now,
	}
}

func (s *classificationService) ClassifyGroup(ctx context.Context, group entity.Group, force bool) (*entity.GroupClassification, error) {
	entry, err := s.groupCache.GetOrCompute(ctx, group.Id, func(ctx context.Context) (entity.GroupClassification, error) {
		return s.computeGroup(ctx, group)
	}, force)
	if err != nil {
		return nil, err
	}

	res := entry.Value
	res.LastUpdated = entry.UpdatedAt
	return &res, nil
}

func (s *classificationService) ClassifyGroups(ctx context.Context, groups []entity.Group, force bool) []*entity.GroupClassification {
	res := make([]*entity.GroupClassification, 0, len(groups))
	for _, group := range groups {
		classification, err := s.ClassifyGroup(ctx, group, force)
		if err != nil {
			s.logger.Error(classificationModule, "Failed to classify group", map[string]interface{}{
				"group_id": group.Id,
				"error":    err.Error(),
			})
			unknown := classifier.Unknown()
			classification = &entity.GroupClassification{
				GroupId:     group.Id,
				Name:        group.Name,
				Category:    unknown.Category,
				Skills:      unknown.Skills,
				Similarity:  unknown.Similarity,
				LastUpdated: s.now(),
			}
		}
		res = append(res, classification)
	}
	return res
}

func (s *classificationService) computeGroup(ctx context.Context, group entity.Group) (entity.GroupClassification, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindByConversation(ctx, group.Id)
	if err != nil {
		return entity.GroupClassification{}, err
	}

	corpus := make([]string, 0, len(messages))
	for _, m := range messages {
		corpus = append(corpus, m.Content)
	}

	text := classifier.CorpusText(corpus)
	if text == "" {
		s.logger.Debug(classificationModule, "Group has no message text, using its name", map[string]interface{}{
			"group_id": group.Id,
		})
		text = strings.TrimSpace(utils.NormalizeText(group.Name))
	}

	result, err := s.classifier.ClassifyText(ctx, text, s.catalogs.Get())
	if err != nil {
		return entity.GroupClassification{}, err
	}

	s.logger.Info(classificationModule, "Group classified", map[string]interface{}{
		"group_id":   group.Id,
		"category":   result.Category,
		"similarity": result.Similarity,
	})

	return entity.GroupClassification{
		GroupId:    group.Id,
		Name:       group.Name,
		Category:   result.Category,
		Skills:     result.Skills,
		Similarity: result.Similarity,
	}, nil
}

func (s *classificationService) ClassifyUser(ctx context.Context, userId string, force bool) (*entity.UserClassification, error) {
	entry, err := s.userCache.GetOrCompute(ctx, userId, func(ctx context.Context) (entity.UserClassification, error) {
		return s.computeUser(ctx, userId)
	}, force)
	if err != nil {
		return nil, err
	}

	res := entry.Value
	res.LastUpdated = entry.UpdatedAt
	return &res, nil
}

func (s *classificationService) computeUser(ctx context.Context, userId string) (entity.UserClassification, error) {
	corpus, err := s.userCorpus(ctx, userId)
	if err != nil {
		return entity.UserClassification{}, err
	}

	text := classifier.CorpusText(corpus)
	if text == "" {
		unknown := classifier.Unknown()
		return entity.UserClassification{
			UserId:     userId,
			Keywords:   []string{},
			Category:   unknown.Category,
			Skills:     unknown.Skills,
			Similarity: unknown.Similarity,
		}, nil
	}

	keywords, err := utils.ExtractKeywords(text, constant.KeywordLimit)
	if err != nil {
		s.logger.Warn(classificationModule, "Keyword extraction failed", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		keywords = []string{}
	}

	result, err := s.classifier.ClassifyText(ctx, text, s.catalogs.Get())
	if err != nil {
		return entity.UserClassification{}, err
	}

	s.logger.Info(classificationModule, "User classified", map[string]interface{}{
		"user_id":    userId,
		"category":   result.Category,
		"similarity": result.Similarity,
	})

	return entity.UserClassification{
		UserId:     userId,
		Keywords:   keywords,
		Category:   result.Category,
		Skills:     result.Skills,
		Similarity: result.Similarity,
	}, nil
}

// userCorpus collects what the user wrote and what was said in their conversations.
func (s *classificationService) userCorpus(ctx context.Context, userId string) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindByParticipant(ctx, userId, false)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(conversations))
	for _, c := range conversations {
		ids = append(ids, c.Id)
	}

	messages, err := uow.MessageRepository().FindForUser(ctx, userId, ids)
	if err != nil {
		return nil, err
	}

	corpus := make([]string, 0, len(messages))
	for _, m := range messages {
		if utf8.RuneCountInString(strings.TrimSpace(m.Content)) >= constant.MinUserMessageLength {
			corpus = append(corpus, m.Content)
		}
	}

	if len(corpus) == 0 && s.fallbackCorpus {
		corpus = append(corpus, constant.UserFallbackCorpus)
	}
	return corpus, nil
}

func (s *classificationService) GroupSnapshot(ctx context.Context) ([]dto.GroupClassificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	groups, err := uow.GroupClassificationRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]dto.GroupClassificationResponse, 0, len(groups))
	for _, g := range groups {
		res = append(res, dto.GroupClassificationResponse{
			GroupId:     g.GroupId,
			Name:        g.Name,
			Category:    g.Category,
			Skills:      g.Skills,
			Similarity:  g.Similarity,
			LastUpdated: formatTimestamp(g.LastUpdated),
		})
	}
	return res, nil
}

func (s *classificationService) UserSnapshot(ctx context.Context) ([]dto.UserClassificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users, err := uow.UserClassificationRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]dto.UserClassificationResponse, 0, len(users))
	for _, u := range users {
		res = append(res, dto.UserClassificationResponse{
			UserId:      u.UserId,
			Keywords:    u.Keywords,
			Category:    u.Category,
			Skills:      u.Skills,
			Similarity:  u.Similarity,
			LastUpdated: formatTimestamp(u.LastUpdated),
		})
	}
	return res, nil
}

func (s *classificationService) Snapshot(ctx context.Context) (*dto.CacheSnapshotResponse, error) {
	groups, err := s.GroupSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.UserSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CacheSnapshotResponse{
		GroupClassifications: groups,
		UserClassifications:  users,
	}, nil
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

type groupClassificationBackend struct {
	uowFactory unitofwork.RepositoryFactory
}

func (b *groupClassificationBackend) Load(ctx context.Context, groupId string) (*timedcache.Entry[entity.GroupClassification], error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.GroupClassificationRepository().FindByGroupID(ctx, groupId)
	if err != nil || stored == nil {
		return nil, err
	}
	return &timedcache.Entry[entity.GroupClassification]{Value: *stored, UpdatedAt: stored.LastUpdated}, nil
}

func (b *groupClassificationBackend) Save(ctx context.Context, groupId string, entry timedcache.Entry[entity.GroupClassification]) error {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	value := entry.Value
	value.GroupId = groupId
	value.LastUpdated = entry.UpdatedAt
	return uow.GroupClassificationRepository().Upsert(ctx, &value)
}

type userClassificationBackend struct {
	uowFactory unitofwork.RepositoryFactory
}

func (b *userClassificationBackend) Load(ctx context.Context, userId string) (*timedcache.Entry[entity.UserClassification], error) {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	stored, err := uow.UserClassificationRepository().FindByUserID(ctx, userId)
	if err != nil || stored == nil {
		return nil, err
	}
	return &timedcache.Entry[entity.UserClassification]{Value: *stored, UpdatedAt: stored.LastUpdated}, nil
}

func (b *userClassificationBackend) Save(ctx context.Context, userId string, entry timedcache.Entry[entity.UserClassification]) error {
	uow := b.uowFactory.NewUnitOfWork(ctx)
	value := entry.Value
	value.UserId = userId
	value.LastUpdated = entry.UpdatedAt
	return uow.UserClassificationRepository().Upsert(ctx, &value)
}

type cacheObserver struct {
	entity string
	logger logger.ILogger
}

func (o *cacheObserver) Lookup(key string, outcome timedcache.Outcome) {
	metrics.CacheObserver{Entity: o.entity}.Lookup(key, string(outcome))
	o.logger.Debug(classificationModule, "Classification cache lookup", map[string]interface{}{
		"entity":  o.entity,
		"key":     key,
		"outcome": string(outcome),
	})
}

func (o *cacheObserver) BackendError(key string, op string, err error) {
	metrics.CacheObserver{Entity: o.entity}.BackendError(key, op)
	level := o.logger.Warn
	if errors.Is(err, context.Canceled) {
		level = o.logger.Debug
	}
	level(classificationModule, "Classification cache backend failed", map[string]interface{}{
		"entity": o.entity,
		"key":    key,
		"op":     op,
		"error":  err.Error(),
	})
}
