package specification

import (
	"gorm.io/gorm"
)

type GroupsOnly struct{}

func (s GroupsOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_group = ?", true)
}

// ParticipantOf keeps conversations the user takes part in.
type ParticipantOf struct {
	UserID string
}

func (s ParticipantOf) Apply(db *gorm.DB) *gorm.DB {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table("conversation_participants").
		Select("conversation_id").
		Where("user_id = ?", s.UserID)
	return db.Where("id IN (?)", sub)
}

// StableOrder orders conversations by creation time, id breaking ties.
type StableOrder struct{}

func (s StableOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
