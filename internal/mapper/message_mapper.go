package mapper

import (
	"skill-exchange-ai/internal/entity"
	"skill-exchange-ai/internal/model"

	"gorm.io/datatypes"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:               msg.Id,
		ConversationId:   msg.ConversationId,
		SenderId:         msg.SenderId,
		ReceiverId:       msg.ReceiverId,
		Content:          msg.Content,
		Language:         msg.Language,
		Emotions:         msg.Emotions.Data(),
		Emoji:            msg.Emoji,
		ReceiverEmotions: msg.ReceiverEmotions.Data(),
		ReceiverEmoji:    msg.ReceiverEmoji,
		IsSystemMessage:  msg.IsSystemMessage,
		Read:             msg.Read,
		Edited:           msg.Edited,
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:               msg.Id,
		ConversationId:   msg.ConversationId,
		SenderId:         msg.SenderId,
		ReceiverId:       msg.ReceiverId,
		Content:          msg.Content,
		Language:         msg.Language,
		Emotions:         datatypes.NewJSONType(msg.Emotions),
		Emoji:            msg.Emoji,
		ReceiverEmotions: datatypes.NewJSONType(msg.ReceiverEmotions),
		ReceiverEmoji:    msg.ReceiverEmoji,
		IsSystemMessage:  msg.IsSystemMessage,
		Read:             msg.Read,
		Edited:           msg.Edited,
		CreatedAt:        msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(messages []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(messages))
	for i, msg := range messages {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
