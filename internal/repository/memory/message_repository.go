package memory

import (
	"context"
	"sort"
	"strings"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/repository/contract"

	"github.com/google/uuid"
)

type MessageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) contract.MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if message.Id == uuid.Nil {
		message.Id = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = r.store.now()
	}
	r.store.messages = append(r.store.messages, copyMessage(message))
	return nil
}

func (r *MessageRepository) FindForUser(ctx context.Context, userId string, conversationIds []string) ([]*entity.Message, error) {
	in := make(map[string]bool, len(conversationIds))
	for _, id := range conversationIds {
		in[id] = true
	}
	return r.filter(func(m *entity.Message) bool {
		return !m.IsSystemMessage && (m.SenderId == userId || in[m.ConversationId])
	}), nil
}

func (r *MessageRepository) FindByConversation(ctx context.Context, conversationId string) ([]*entity.Message, error) {
	return r.filter(func(m *entity.Message) bool {
		return m.ConversationId == conversationId && !m.IsSystemMessage && strings.TrimSpace(m.Content) != ""
	}), nil
}

func (r *MessageRepository) filter(keep func(m *entity.Message) bool) []*entity.Message {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res := make([]*entity.Message, 0)
	for _, m := range r.store.messages {
		if keep(m) {
			res = append(res, copyMessage(m))
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res
}
