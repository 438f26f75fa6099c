package model

import (
	"time"

	"gorm.io/datatypes"
)

// GroupClassification holds one cached label per group. The primary key makes upserts atomic per group.
type GroupClassification struct {
	GroupId     string                      `gorm:"type:varchar(64);primaryKey"`
	Name        string                      `gorm:"type:varchar(255)"`
	Category    string                      `gorm:"type:varchar(255);not null"`
	Skills      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Similarity  float64                     `gorm:"not null;default:0"`
	LastUpdated time.Time                   `gorm:"not null;index"`
}

func (GroupClassification) TableName() string {
	return "group_classifications"
}

type UserClassification struct {
	UserId      string                      `gorm:"type:varchar(64);primaryKey"`
	Keywords    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Category    string                      `gorm:"type:varchar(255);not null"`
	Skills      datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Similarity  float64                     `gorm:"not null;default:0"`
	LastUpdated time.Time                   `gorm:"not null;index"`
}

func (UserClassification) TableName() string {
	return "user_classifications"
}
