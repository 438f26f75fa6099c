package memory

import (
	"context"
	"fmt"
	"sort"

	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/repository/contract"
)

type ConversationRepository struct {
	store *Store
}

func NewConversationRepository(store *Store) contract.ConversationRepository {
	return &ConversationRepository{store: store}
}

func (r *ConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.conversations[conversation.Id]; exists {
		return fmt.Errorf("conversation %s already exists", conversation.Id)
	}
	if conversation.CreatedAt.IsZero() {
		conversation.CreatedAt = r.store.now()
	}
	conversation.UpdatedAt = conversation.CreatedAt
	r.store.conversations[conversation.Id] = copyConversation(conversation)
	return nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.conversations[id]
	if !ok {
		return nil, nil
	}
	return copyConversation(c), nil
}

func (r *ConversationRepository) FindGroups(ctx context.Context) ([]*entity.Conversation, error) {
	return r.filter(func(c *entity.Conversation) bool { return c.IsGroup }), nil
}

func (r *ConversationRepository) FindByParticipant(ctx context.Context, userId string, groupsOnly bool) ([]*entity.Conversation, error) {
	return r.filter(func(c *entity.Conversation) bool {
		if groupsOnly && !c.IsGroup {
			return false
		}
		return c.HasParticipant(userId)
	}), nil
}

func (r *ConversationRepository) UpdateLastMessage(ctx context.Context, id string, last entity.LastMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.conversations[id]
	if !ok {
		return nil
	}
	c.LastMessage = &last
	c.UpdatedAt = r.store.now()
	return nil
}

func (r *ConversationRepository) filter(keep func(c *entity.Conversation) bool) []*entity.Conversation {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res := make([]*entity.Conversation, 0)
	for _, c := range r.store.conversations {
		if keep(c) {
			res = append(res, copyConversation(c))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].Id < res[j].Id
	})
	return res
}
