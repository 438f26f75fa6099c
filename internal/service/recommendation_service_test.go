package service

import (
	"encoding/json"
	"errors"
	"testing"

	"skill-exchange-ai/internal/constant"
	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/pkg/serverutils"
	"skill-exchange-ai/pkg/catalog"
	"skill-exchange-ai/pkg/classifier"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupIds(recs []dto.RecommendationResponse) []string {
	ids := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.GroupId)
	}
	return ids
}

func seedSkillGroups(t *testing.T, f *fixture) {
	t.Helper()
	f.addConversation(t, &entity.Conversation{Id: "g1", IsGroup: true, GroupName: "SQL club", ParticipantIds: []string{"u1", "u2"}})
	f.addConversation(t, &entity.Conversation{Id: "g2", IsGroup: true, GroupName: "Pythonistas"})
	f.addConversation(t, &entity.Conversation{Id: "g3", IsGroup: true, GroupName: "Bakers"})
	f.addConversation(t, &entity.Conversation{Id: "g4", IsGroup: true, GroupName: "Strummers"})
	f.addConversation(t, &entity.Conversation{Id: "g5", IsGroup: true, GroupName: "Analysts"})
	f.addConversation(t, &entity.Conversation{Id: "dm", ParticipantIds: []string{"u1", "u3"}})

	f.addMessage(t, "g1", "u1", "python sql data analysis")
	f.addMessage(t, "g2", "u2", "python data notebooks")
	f.addMessage(t, "g3", "u3", "baking cooking")
	f.addMessage(t, "g4", "u4", "guitar music")
	f.addMessage(t, "g5", "u5", "sql data")
}

func TestRecommendGroups_NoGroups(t *testing.T) {
	f := newFixture(t)

	res, err := f.recommendation.RecommendGroups(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.NoError(t, err)
	assert.Equal(t, constant.NoGroupsMessage, res.Message)
	assert.Equal(t, []dto.RecommendationResponse{}, res.Recommendations)
}

func TestRecommendGroups_ExcludesJoinedAndCaps(t *testing.T) {
	f := newFixture(t)
	seedSkillGroups(t, f)

	res, err := f.recommendation.RecommendGroups(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.NoError(t, err)

	require.Len(t, res.Recommendations, 3)
	assert.NotContains(t, groupIds(res.Recommendations), "g1")
	assert.Equal(t, []string{"g2", "g5", "g3"}, groupIds(res.Recommendations))
	for i := 1; i < len(res.Recommendations); i++ {
		assert.GreaterOrEqual(t, res.Recommendations[i-1].Similarity, res.Recommendations[i].Similarity)
	}
	assert.Equal(t, "Pythonistas", res.Recommendations[0].GroupName)
	assert.Equal(t, "Data Science", res.Recommendations[0].Category)
}

func TestRecommendGroups_PopularFallback(t *testing.T) {
	f := newFixture(t)
	f.addConversation(t, &entity.Conversation{Id: "g1", IsGroup: true, GroupName: "one"})
	f.addConversation(t, &entity.Conversation{Id: "g2", IsGroup: true, GroupName: "two"})
	f.addConversation(t, &entity.Conversation{Id: "g3", IsGroup: true, GroupName: "zzz"})
	f.addMessage(t, "g1", "u2", "python")
	f.addMessage(t, "g2", "u2", "baking")

	res, err := f.recommendation.RecommendGroups(f.ctx, &dto.RecommendGroupsRequest{UserId: "newcomer"})
	require.NoError(t, err)

	assert.Equal(t, []string{"g2", "g1"}, groupIds(res.Recommendations))
	assert.InDelta(t, 0.707, res.Recommendations[0].Similarity, 0.001)
	assert.InDelta(t, 0.577, res.Recommendations[1].Similarity, 0.001)
}

func TestRecommendGroups_ForcesGroupReclassification(t *testing.T) {
	f := newFixture(t)
	seedSkillGroups(t, f)

	_, err := f.recommendation.RecommendGroups(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.NoError(t, err)
	first := f.embedder.Calls()

	_, err = f.recommendation.RecommendGroups(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.NoError(t, err)

	// five groups are reclassified again, the user classification is still fresh,
	// the ranker embeds the user text and the four candidate groups.
	assert.Equal(t, 5+1+4, f.embedder.Calls()-first)
}

func TestRecommendGroups_PublishesEvent(t *testing.T) {
	f := newFixture(t)
	seedSkillGroups(t, f)

	_, err := f.recommendation.RecommendGroups(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.NoError(t, err)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, "recommended", f.events.events[0].kind)
	assert.Equal(t, "u1", f.events.events[0].userId)
	assert.Equal(t, []string{"g2", "g5", "g3"}, f.events.events[0].groupIds)
}

func TestRecommendGroups_Unavailable(t *testing.T) {
	t.Run("store", func(t *testing.T) {
		f := newFixture(t)
		f.wire(&pingFailingFactory{RepositoryFactory: f.uowFactory, err: errors.New("connection refused")})

		_, err := f.recommendation.RecommendGroups(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
		require.Error(t, err)
		code, message := serverutils.StatusAndMessage(err)
		assert.Equal(t, fiber.StatusInternalServerError, code)
		assert.Contains(t, message, constant.ErrMsgStoreUnavailable)
	})

	t.Run("catalog", func(t *testing.T) {
		f := newFixture(t)
		f.catalogs = catalog.NewHolder()
		f.wire(f.uowFactory)

		_, err := f.recommendation.RecommendGroups(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
		require.Error(t, err)
		code, message := serverutils.StatusAndMessage(err)
		assert.Equal(t, fiber.StatusInternalServerError, code)
		assert.Equal(t, constant.ErrMsgCatalogUnavailable, message)
	})
}

func TestRecommendWithCache_CapturesUserCacheBeforeRanking(t *testing.T) {
	f := newFixture(t)
	seedSkillGroups(t, f)

	res, err := f.recommendation.RecommendWithCache(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.NoError(t, err)

	assert.Len(t, res.Recommendations, 3)
	assert.Empty(t, res.Cache.UserClassifications)
	assert.Len(t, res.Cache.GroupClassifications, 5)

	res, err = f.recommendation.RecommendWithCache(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.NoError(t, err)
	require.Len(t, res.Cache.UserClassifications, 1)
	assert.Equal(t, "u1", res.Cache.UserClassifications[0].UserId)
}

func TestRecommendWithCache_NoGroups(t *testing.T) {
	f := newFixture(t)

	res, err := f.recommendation.RecommendWithCache(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.NoError(t, err)
	assert.Equal(t, constant.NoGroupsMessage, res.Message)
	assert.Equal(t, []dto.GroupClassificationResponse{}, res.Cache.GroupClassifications)
	assert.Equal(t, []dto.RecommendationResponse{}, res.Recommendations)
}

func TestRecommendWithCache_ErrorKeepsBody(t *testing.T) {
	f := newFixture(t)
	f.wire(&pingFailingFactory{RepositoryFactory: f.uowFactory, err: errors.New("down")})

	res, err := f.recommendation.RecommendWithCache(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.NotNil(t, res.Cache.GroupClassifications)
	assert.NotNil(t, res.Cache.UserClassifications)
}

func TestRecommendWithCache_BodyAlwaysListsRecommendations(t *testing.T) {
	f := newFixture(t)

	res, err := f.recommendation.RecommendWithCache(f.ctx, &dto.RecommendGroupsRequest{UserId: "u1"})
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))

	require.Contains(t, body, "recommendations")
	assert.Equal(t, []interface{}{}, body["recommendations"])
	assert.NotContains(t, body, "error")
}

func TestUnknownUser(t *testing.T) {
	user := unknownUser("u9")

	assert.Equal(t, "u9", user.UserId)
	assert.Equal(t, classifier.UnknownCategory, user.Category)
	assert.Equal(t, []string{}, user.Skills)
	assert.Equal(t, []string{}, user.Keywords)
	assert.Zero(t, user.Similarity)
}
