package memory

import (
	"sync"
	"time"

	"skill-exchange-ai/internal/entity"

	"github.com/patrickmn/go-cache"
)

// Store keeps every table in process memory. It backs local runs and tests.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*entity.Conversation
	messages      []*entity.Message
	feedback      []*entity.SentimentFeedback

	groupClassifications *cache.Cache
	userClassifications  *cache.Cache
	lexicon              *cache.Cache
	courseEmbeddings     *cache.Cache

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		conversations:        make(map[string]*entity.Conversation),
		groupClassifications: cache.New(cache.NoExpiration, 0),
		userClassifications:  cache.New(cache.NoExpiration, 0),
		lexicon:              cache.New(cache.NoExpiration, 0),
		courseEmbeddings:     cache.New(cache.NoExpiration, 0),
		now:                  time.Now,
	}
}

// Feedback returns a copy of the stored feedback rows.
func (s *Store) Feedback() []entity.SentimentFeedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.SentimentFeedback, len(s.feedback))
	for i, f := range s.feedback {
		out[i] = *f
	}
	return out
}

// Messages returns a copy of the stored messages in insertion order.
func (s *Store) Messages() []entity.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Message, len(s.messages))
	for i, m := range s.messages {
		out[i] = *m
	}
	return out
}

func copyConversation(c *entity.Conversation) *entity.Conversation {
	cp := *c
	cp.ParticipantIds = append([]string(nil), c.ParticipantIds...)
	if c.LastMessage != nil {
		last := *c.LastMessage
		cp.LastMessage = &last
	}
	return &cp
}

func copyMessage(m *entity.Message) *entity.Message {
	cp := *m
	cp.Emotions = copyScores(m.Emotions)
	cp.ReceiverEmotions = copyScores(m.ReceiverEmotions)
	return &cp
}

func copyScores(scores map[string]float64) map[string]float64 {
	if scores == nil {
		return nil
	}
	out := make(map[string]float64, len(scores))
	for k, v := range scores {
		out[k] = v
	}
	return out
}

func copyStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
