package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/model"
	"skill-exchange-ai/internal/repository/unitofwork"
	"skill-exchange-ai/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(gormDB, model.All()...))

	return unitofwork.NewRepositoryFactory(gormDB)
}

func TestGormConnection(t *testing.T) {
	uowFactory := openStore(t)
	ctx := context.Background()
	require.NoError(t, uowFactory.Ping(ctx))

	uow := uowFactory.NewUnitOfWork(ctx)
	suffix := uuid.NewString()[:8]
	groupId := "it-group-" + suffix
	userId := "it-user-" + suffix

	t.Run("Conversation and messages", func(t *testing.T) {
		require.NoError(t, uow.ConversationRepository().Create(ctx, &entity.Conversation{
			Id:             groupId,
			IsGroup:        true,
			GroupName:      "Integration Group",
			ParticipantIds: []string{userId, "it-other-" + suffix},
		}))

		require.NoError(t, uow.MessageRepository().Create(ctx, &entity.Message{
			ConversationId: groupId,
			SenderId:       userId,
			Content:        "python and sql for data",
			Language:       "eng",
			Emotions:       map[string]float64{"joy": 0.5},
			Emoji:          "😊",
			CreatedAt:      time.Now().UTC(),
		}))

		corpus, err := uow.MessageRepository().FindByConversation(ctx, groupId)
		require.NoError(t, err)
		require.Len(t, corpus, 1)
		assert.Equal(t, 0.5, corpus[0].Emotions["joy"])

		joined, err := uow.ConversationRepository().FindByParticipant(ctx, userId, true)
		require.NoError(t, err)
		require.Len(t, joined, 1)
		assert.Equal(t, groupId, joined[0].Id)
	})

	t.Run("Classification upsert", func(t *testing.T) {
		repo := uow.GroupClassificationRepository()
		first := &entity.GroupClassification{GroupId: groupId, Name: "Integration Group", Category: "Data Science", Skills: []string{"Python"}, Similarity: 0.8, LastUpdated: time.Now().UTC()}
		require.NoError(t, repo.Upsert(ctx, first))

		first.Category = "Unknown"
		first.Skills = []string{}
		require.NoError(t, repo.Upsert(ctx, first))

		stored, err := repo.FindByGroupID(ctx, groupId)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Unknown", stored.Category)
		assert.Empty(t, stored.Skills)
	})

	t.Run("Course embedding vector", func(t *testing.T) {
		key := "it-" + suffix
		require.NoError(t, uow.CourseEmbeddingRepository().Upsert(ctx, &entity.CourseEmbedding{
			Key:        key,
			Model:      "integration",
			SkillsText: "python sql",
			Embedding:  []float32{0.1, 0.2, 0.3},
		}))

		stored, err := uow.CourseEmbeddingRepository().FindByKey(ctx, key)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.InDeltaSlice(t, []float32{0.1, 0.2, 0.3}, stored.Embedding, 1e-6)
	})
}
