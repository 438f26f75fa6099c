package mapper

import (
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(c *model.Conversation) *entity.Conversation {
	if c == nil {
		return nil
	}

	participants := make([]string, 0, len(c.Participants))
	for _, p := range c.Participants {
		participants = append(participants, p.UserId)
	}

	var last *entity.LastMessage
	if c.LastMessageAt != nil {
		last = &entity.LastMessage{
			Content:   c.LastMessageContent,
			SenderId:  c.LastMessageSenderId,
			CreatedAt: *c.LastMessageAt,
		}
	}

	return &entity.Conversation{
		Id:             c.Id,
		IsGroup:        c.IsGroup,
		GroupName:      c.GroupName,
		ParticipantIds: participants,
		LastMessage:    last,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (m *ConversationMapper) ToModel(c *entity.Conversation) *model.Conversation {
	if c == nil {
		return nil
	}

	participants := make([]model.ConversationParticipant, 0, len(c.ParticipantIds))
	for _, id := range c.ParticipantIds {
		participants = append(participants, model.ConversationParticipant{ConversationId: c.Id, UserId: id})
	}

	res := &model.Conversation{
		Id:           c.Id,
		IsGroup:      c.IsGroup,
		GroupName:    c.GroupName,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Participants: participants,
	}
	if c.LastMessage != nil {
		at := c.LastMessage.CreatedAt
		res.LastMessageContent = c.LastMessage.Content
		res.LastMessageSenderId = c.LastMessage.SenderId
		res.LastMessageAt = &at
	}
	return res
}

func (m *ConversationMapper) ToEntities(conversations []*model.Conversation) []*entity.Conversation {
	entities := make([]*entity.Conversation, len(conversations))
	for i, c := range conversations {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
