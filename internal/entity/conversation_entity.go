package entity

import (
	"time"
)

const DefaultGroupName = "Unnamed group"

type Conversation struct {
	Id             string
	IsGroup        bool
	GroupName      string
	ParticipantIds []string
	LastMessage    *LastMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type LastMessage struct {
	Content   string
	SenderId  string
	CreatedAt time.Time
}

// IsIndividual reports whether the conversation is a one-to-one chat.
func (c *Conversation) IsIndividual() bool {
	return !c.IsGroup && len(c.ParticipantIds) == 2
}

// OtherParticipant returns the participant that is not userId, or "" when none.
func (c *Conversation) OtherParticipant(userId string) string {
	for _, id := range c.ParticipantIds {
		if id != userId {
			return id
		}
	}
	return ""
}

func (c *Conversation) HasParticipant(userId string) bool {
	for _, id := range c.ParticipantIds {
		if id == userId {
			return true
		}
	}
	return false
}

// Group is the view of a group conversation used by classification.
type Group struct {
	Id   string
	Name string
}

// AsGroup returns the classification view of the conversation, defaulting the name.
func (c *Conversation) AsGroup() Group {
	name := c.GroupName
	if name == "" {
		name = DefaultGroupName
	}
	return Group{Id: c.Id, Name: name}
}
