package service

import (
	"context"

	"skill-exchange-ai/internal/constant"
	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/metrics"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/internal/pkg/serverutils"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/pkg/classifier"
	"skill-exchange-ai/pkg/recommend"
	"skill-exchange-ai/pkg/utils"
)

const recommendationModule = "RECOMMENDATION"

type IRecommendationService interface {
	RecommendGroups(ctx context.Context, request *dto.RecommendGroupsRequest) (*dto.RecommendGroupsResponse, error)
	// RecommendWithCache always returns a body; on failure it carries the cache captured so far next to the error.
	RecommendWithCache(ctx context.Context, request *dto.RecommendGroupsRequest) (*dto.RecommendWithCacheResponse, error)
}

type recommendationService struct {
	uowFactory     unitofwork.RepositoryFactory
	health         IHealthService
	classification IClassificationService
	ranker         *recommend.Ranker
	events         IEventPublisher
	logger         logger.ILogger
}

func NewRecommendationService(
	uowFactory unitofwork.RepositoryFactory,
	health IHealthService,
	classification IClassificationService,
	ranker *recommend.Ranker,
	events IEventPublisher,
	logger logger.ILogger,
) IRecommendationService {
	return &recommendationService{
		uowFactory:     uowFactory,
		health:         health,
		classification: classification,
		ranker:         ranker,
		events:         events,
		logger:         logger,
	}
}

func (s *recommendationService) RecommendGroups(ctx context.Context, request *dto.RecommendGroupsRequest) (*dto.RecommendGroupsResponse, error) {
	if err := s.health.Ready(ctx); err != nil {
		return nil, err
	}

	groups, err := s.loadGroups(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		metrics.Recommendations.WithLabelValues("no_groups").Inc()
		return &dto.RecommendGroupsResponse{
			Message:         constant.NoGroupsMessage,
			Recommendations: []dto.RecommendationResponse{},
		}, nil
	}

	return s.rank(ctx, request.UserId, groups)
}

func (s *recommendationService) RecommendWithCache(ctx context.Context, request *dto.RecommendGroupsRequest) (*dto.RecommendWithCacheResponse, error) {
	res := &dto.RecommendWithCacheResponse{
		Cache: dto.CacheSnapshotResponse{
			GroupClassifications: []dto.GroupClassificationResponse{},
			UserClassifications:  []dto.UserClassificationResponse{},
		},
	}

	if err := s.health.Ready(ctx); err != nil {
		return res, err
	}

	users, err := s.classification.UserSnapshot(ctx)
	if err != nil {
		return res, serverutils.Unavailable(constant.ErrMsgStoreUnavailable, err)
	}
	res.Cache.UserClassifications = users

	groups, err := s.loadGroups(ctx)
	if err != nil {
		return res, err
	}
	if len(groups) == 0 {
		metrics.Recommendations.WithLabelValues("no_groups").Inc()
		res.Message = constant.NoGroupsMessage
		res.Recommendations = []dto.RecommendationResponse{}
		return res, nil
	}

	ranked, err := s.rank(ctx, request.UserId, groups)
	if err != nil {
		return res, err
	}

	groupCache, err := s.classification.GroupSnapshot(ctx)
	if err != nil {
		return res, serverutils.Unavailable(constant.ErrMsgStoreUnavailable, err)
	}
	res.Cache.GroupClassifications = groupCache
	res.Recommendations = ranked.Recommendations
	return res, nil
}

func unknownUser(userId string) *entity.UserClassification {
	unknown := classifier.Unknown()
	return &entity.UserClassification{
		UserId:     userId,
		Keywords:   []string{},
		Category:   unknown.Category,
		Skills:     unknown.Skills,
		Similarity: unknown.Similarity,
	}
}

func (s *recommendationService) loadGroups(ctx context.Context) ([]entity.Group, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	conversations, err := uow.ConversationRepository().FindGroups(ctx)
	if err != nil {
		return nil, serverutils.Unavailable(constant.ErrMsgStoreUnavailable, err)
	}

	groups := make([]entity.Group, 0, len(conversations))
	for _, c := range conversations {
		groups = append(groups, c.AsGroup())
	}
	return groups, nil
}

// rank reclassifies every group, then scores the ones the user has not joined.
func (s *recommendationService) rank(ctx context.Context, userId string, groups []entity.Group) (*dto.RecommendGroupsResponse, error) {
	classified := s.classification.ClassifyGroups(ctx, groups, true)

	user, err := s.classification.ClassifyUser(ctx, userId, false)
	if err != nil {
		s.logger.Error(recommendationModule, "Failed to classify user, using Unknown", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		user = unknownUser(userId)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	memberships, err := uow.ConversationRepository().FindByParticipant(ctx, userId, true)
	if err != nil {
		return nil, serverutils.Unavailable(constant.ErrMsgStoreUnavailable, err)
	}
	joined := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		joined[m.Id] = true
	}

	candidates := make([]recommend.Group, 0, len(classified))
	for _, g := range classified {
		candidates = append(candidates, recommend.Group{
			ID:         g.GroupId,
			Name:       g.Name,
			Category:   g.Category,
			Skills:     g.Skills,
			Similarity: g.Similarity,
		})
	}

	path := "skills"
	if utils.NormalizeJoin(recommend.MergeSkills(user.Skills, candidates, joined)) == "" {
		path = "popular"
	}

	recs, err := s.ranker.Rank(ctx, user.Skills, candidates, joined)
	if err != nil {
		return nil, serverutils.Internal("Failed to rank groups", err)
	}
	metrics.Recommendations.WithLabelValues(path).Inc()

	res := make([]dto.RecommendationResponse, 0, len(recs))
	groupIds := make([]string, 0, len(recs))
	for _, r := range recs {
		res = append(res, dto.RecommendationResponse{
			GroupId:    r.GroupID,
			GroupName:  r.GroupName,
			Category:   r.Category,
			Skills:     r.Skills,
			Similarity: r.Similarity,
		})
		groupIds = append(groupIds, r.GroupID)
	}

	s.logger.Info(recommendationModule, "Groups recommended", map[string]interface{}{
		"user_id": userId,
		"path":    path,
		"count":   len(res),
		"joined":  len(joined),
	})
	s.events.PublishGroupsRecommended(ctx, userId, groupIds)

	return &dto.RecommendGroupsResponse{Recommendations: res}, nil
}
