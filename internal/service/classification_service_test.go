package service

import (
	"errors"
	"testing"
	"time"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/pkg/logger"
	"skill-exchange-ai/pkg/classifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyGroup_MatchesClosestCourse(t *testing.T) {
	f := newFixture(t)
	f.addConversation(t, &entity.Conversation{Id: "g1", IsGroup: true, GroupName: "Analysts"})
	f.addMessage(t, "g1", "u1", "I love Python and SQL!")

	res, err := f.classification.ClassifyGroup(f.ctx, entity.Group{Id: "g1", Name: "Analysts"}, false)
	require.NoError(t, err)

	assert.Equal(t, "Data Science", res.Category)
	assert.Equal(t, []string{"Python", "SQL", "Data"}, res.Skills)
	assert.Greater(t, res.Similarity, 0.05)
	assert.Equal(t, "Analysts", res.Name)
	assert.Equal(t, f.now, res.LastUpdated)
}

func TestClassifyGroup_FreshnessWindow(t *testing.T) {
	f := newFixture(t)
	f.addConversation(t, &entity.Conversation{Id: "g1", IsGroup: true})
	f.addMessage(t, "g1", "u1", "python sql")
	group := entity.Group{Id: "g1", Name: "g1"}

	_, err := f.classification.ClassifyGroup(f.ctx, group, false)
	require.NoError(t, err)
	assert.Equal(t, 1, f.embedder.Calls())

	f.now = f.now.Add(30 * time.Minute)
	_, err = f.classification.ClassifyGroup(f.ctx, group, false)
	require.NoError(t, err)
	assert.Equal(t, 1, f.embedder.Calls(), "a fresh entry must not be recomputed")

	f.now = f.now.Add(time.Hour)
	_, err = f.classification.ClassifyGroup(f.ctx, group, false)
	require.NoError(t, err)
	assert.Equal(t, 2, f.embedder.Calls(), "a stale entry is recomputed once")

	_, err = f.classification.ClassifyGroup(f.ctx, group, true)
	require.NoError(t, err)
	assert.Equal(t, 3, f.embedder.Calls(), "force always recomputes")
}

func TestClassifyGroup_UsesNameWhenNoMessages(t *testing.T) {
	f := newFixture(t)
	f.addConversation(t, &entity.Conversation{Id: "g1", IsGroup: true, GroupName: "Guitar & Music"})

	res, err := f.classification.ClassifyGroup(f.ctx, entity.Group{Id: "g1", Name: "Guitar & Music"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Guitar for Beginners", res.Category)
}

func TestClassifyGroups_FailureDegradesToUnknown(t *testing.T) {
	f := newFixture(t)
	f.addConversation(t, &entity.Conversation{Id: "g1", IsGroup: true})
	f.addConversation(t, &entity.Conversation{Id: "g2", IsGroup: true})
	f.addMessage(t, "g1", "u1", "python")
	f.addMessage(t, "g2", "u1", "baking")
	f.embedder.Fail(errors.New("model offline"))

	res := f.classification.ClassifyGroups(f.ctx, []entity.Group{{Id: "g1", Name: "one"}, {Id: "g2", Name: "two"}}, true)
	require.Len(t, res, 2)
	assert.Equal(t, "g1", res[0].GroupId)
	assert.Equal(t, "g2", res[1].GroupId)
	for _, r := range res {
		assert.Equal(t, classifier.UnknownCategory, r.Category)
		assert.Empty(t, r.Skills)
		assert.Zero(t, r.Similarity)
	}

	snapshot, err := f.classification.GroupSnapshot(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot, "failed classifications are not cached")
}

func TestClassifyUser_EmptyCorpusIsUnknownWithoutEmbedding(t *testing.T) {
	f := newFixture(t)

	res, err := f.classification.ClassifyUser(f.ctx, "u1", false)
	require.NoError(t, err)

	assert.Equal(t, classifier.UnknownCategory, res.Category)
	assert.Equal(t, []string{}, res.Skills)
	assert.Equal(t, []string{}, res.Keywords)
	assert.Zero(t, res.Similarity)
	assert.Zero(t, f.embedder.Calls())
}

func TestClassifyUser_CorpusAndKeywords(t *testing.T) {
	f := newFixture(t)
	f.addConversation(t, &entity.Conversation{Id: "g1", IsGroup: true, ParticipantIds: []string{"u1", "u2"}})
	f.addConversation(t, &entity.Conversation{Id: "g2", IsGroup: true, ParticipantIds: []string{"u3"}})
	f.addMessage(t, "g1", "u2", "baking bread and cooking pasta")
	f.addMessage(t, "g1", "u1", "ok")
	f.addMessage(t, "g2", "u3", "python python python")

	res, err := f.classification.ClassifyUser(f.ctx, "u1", false)
	require.NoError(t, err)

	assert.Equal(t, "Pastry Basics", res.Category)
	assert.Equal(t, []string{"and", "baking", "bread", "cooking", "pasta"}, res.Keywords)
}

func TestClassifyUser_FallbackCorpus(t *testing.T) {
	f := newFixture(t)
	f.classification = NewClassificationService(
		f.uowFactory,
		f.catalogs,
		classifier.New(f.embedder, classifier.Options{}),
		logger.NewNopLogger(),
		ClassificationOptions{UserFallbackCorpus: true, Clock: func() time.Time { return f.now }},
	)

	res, err := f.classification.ClassifyUser(f.ctx, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, "Data Science", res.Category)
	assert.Contains(t, res.Keywords, "python")
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)
	f.addConversation(t, &entity.Conversation{Id: "g1", IsGroup: true, ParticipantIds: []string{"u1"}})
	f.addMessage(t, "g1", "u1", "python data")

	_, err := f.classification.ClassifyGroup(f.ctx, entity.Group{Id: "g1", Name: "g1"}, false)
	require.NoError(t, err)
	_, err = f.classification.ClassifyUser(f.ctx, "u1", false)
	require.NoError(t, err)

	snapshot, err := f.classification.Snapshot(f.ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.GroupClassifications, 1)
	require.Len(t, snapshot.UserClassifications, 1)
	assert.Equal(t, "g1", snapshot.GroupClassifications[0].GroupId)
	assert.Equal(t, f.now.Format(time.RFC3339Nano), snapshot.GroupClassifications[0].LastUpdated)
	assert.Equal(t, "u1", snapshot.UserClassifications[0].UserId)
}
