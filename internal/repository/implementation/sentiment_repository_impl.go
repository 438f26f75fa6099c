package implementation

import (
	"context"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/mapper"
	"skill-exchange-ai/internal/model"
	"skill-exchange-ai/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LexiconRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SentimentMapper
}

func NewLexiconRepository(db *gorm.DB) contract.LexiconRepository {
	return &LexiconRepositoryImpl{
		db:     db,
		mapper: mapper.NewSentimentMapper(),
	}
}

func (r *LexiconRepositoryImpl) FindByWord(ctx context.Context, word string) ([]*entity.LexiconEntry, error) {
	var models []*model.SentimentLexiconEntry
	if err := r.db.WithContext(ctx).Where("word = ?", word).Order("language ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]*entity.LexiconEntry, len(models))
	for i, m := range models {
		res[i] = r.mapper.LexiconToEntity(m)
	}
	return res, nil
}

func (r *LexiconRepositoryImpl) Upsert(ctx context.Context, entry *entity.LexiconEntry) error {
	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	m := r.mapper.LexiconToModel(entry)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "word"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{"emotions"}),
	}).Create(m).Error
}

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SentimentMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewSentimentMapper(),
	}
}

func (r *FeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.SentimentFeedback) error {
	if feedback.Id == uuid.Nil {
		feedback.Id = uuid.New()
	}
	m := r.mapper.FeedbackToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feedback = *r.mapper.FeedbackToEntity(m)
	return nil
}
