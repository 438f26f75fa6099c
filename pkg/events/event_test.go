package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewGroupsRecommended(t *testing.T) {
	at := time.Now()
	evt := NewGroupsRecommended("u1", []string{"g1", "g2"}, at)

	assert.Equal(t, TypeGroupsRecommended, evt.EventType())
	assert.Equal(t, 2, evt.Payload()["count"])
	assert.Equal(t, at, evt.Timestamp())
}

func TestNewMessageCreated(t *testing.T) {
	evt := NewMessageCreated("m1", "g1", "u1", "eng", "😊", time.Now())

	assert.Equal(t, TypeMessageCreated, evt.EventType())
	assert.Equal(t, "g1", evt.Payload()["conversation_id"])
}
