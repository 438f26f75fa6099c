package memory

import (
	"context"
	"sort"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type LexiconRepository struct {
	store *Store
}

func NewLexiconRepository(store *Store) contract.LexiconRepository {
	return &LexiconRepository{store: store}
}

func (r *LexiconRepository) FindByWord(ctx context.Context, word string) ([]*entity.LexiconEntry, error) {
	x, found := r.store.lexicon.Get(word)
	if !found {
		return []*entity.LexiconEntry{}, nil
	}
	byLanguage := x.(map[string]*entity.LexiconEntry)
	res := make([]*entity.LexiconEntry, 0, len(byLanguage))
	for _, e := range byLanguage {
		cp := *e
		cp.Emotions = copyScores(e.Emotions)
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Language < res[j].Language })
	return res, nil
}

func (r *LexiconRepository) Upsert(ctx context.Context, entry *entity.LexiconEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}

	byLanguage := make(map[string]*entity.LexiconEntry)
	if x, found := r.store.lexicon.Get(entry.Word); found {
		for lang, e := range x.(map[string]*entity.LexiconEntry) {
			byLanguage[lang] = e
		}
	}
	cp := *entry
	cp.Emotions = copyScores(entry.Emotions)
	byLanguage[entry.Language] = &cp
	r.store.lexicon.Set(entry.Word, byLanguage, cache.NoExpiration)
	return nil
}

type FeedbackRepository struct {
	store *Store
}

func NewFeedbackRepository(store *Store) contract.FeedbackRepository {
	return &FeedbackRepository{store: store}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *entity.SentimentFeedback) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if feedback.Id == uuid.Nil {
		feedback.Id = uuid.New()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = r.store.now()
	}
	cp := *feedback
	r.store.feedback = append(r.store.feedback, &cp)
	return nil
}
