package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skill-exchange-ai/internal/constant"
	"skill-exchange-ai/internal/dto"
	"skill-exchange-ai/internal/pkg/logger"
	internalWS "skill-exchange-ai/internal/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageService struct {
	requests []dto.SocketMessageRequest
	err      error
}

func (f *fakeMessageService) Send(ctx context.Context, request *dto.SocketMessageRequest) (*dto.SocketMessageResponse, error) {
	f.requests = append(f.requests, *request)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SocketMessageResponse{
		Id:           "m1",
		Sender:       request.UserId,
		Conversation: request.GroupId,
		Content:      request.Message,
		Emoji:        "😐",
	}, nil
}

type socketFixture struct {
	hub      *internalWS.Hub
	messages *fakeMessageService
	handler  *SocketHandler
}

func newSocketFixture(t *testing.T) *socketFixture {
	t.Helper()
	hub := internalWS.NewHub(nil, logger.NewNopLogger())
	messages := &fakeMessageService{}
	return &socketFixture{
		hub:      hub,
		messages: messages,
		handler:  NewSocketHandler(messages, hub, logger.NewNopLogger()),
	}
}

func (f *socketFixture) connect(id string) *internalWS.Client {
	client := &internalWS.Client{Hub: f.hub, ID: id, Send: make(chan []byte, 8)}
	f.hub.Register(client)
	return client
}

func frame(t *testing.T, event string, data interface{}) []byte {
	t.Helper()
	raw, err := internalWS.EncodeFrame(event, data)
	require.NoError(t, err)
	return raw
}

func next(t *testing.T, c *internalWS.Client) dto.SocketEnvelope {
	t.Helper()
	select {
	case raw := <-c.Send:
		var envelope dto.SocketEnvelope
		require.NoError(t, json.Unmarshal(raw, &envelope))
		return envelope
	case <-time.After(time.Second):
		t.Fatalf("client %s received nothing", c.ID)
		return dto.SocketEnvelope{}
	}
}

func TestSocketHandler_MessageBroadcastToRoom(t *testing.T) {
	f := newSocketFixture(t)
	sender := f.connect("sender")
	member := f.connect("member")
	outsider := f.connect("outsider")

	f.handler.HandleFrame(member, frame(t, constant.SocketEventJoin, dto.SocketJoinRequest{GroupId: "g1"}))
	f.handler.HandleFrame(sender, frame(t, constant.SocketEventMessage, dto.SocketMessageRequest{
		Message: "hello there",
		UserId:  "u1",
		GroupId: "g1",
	}))

	require.Len(t, f.messages.requests, 1)
	assert.Equal(t, "u1", f.messages.requests[0].UserId)

	for _, c := range []*internalWS.Client{sender, member} {
		envelope := next(t, c)
		assert.Equal(t, constant.SocketEventMessage, envelope.Event)

		var res dto.SocketMessageResponse
		require.NoError(t, json.Unmarshal(envelope.Data, &res))
		assert.Equal(t, "hello there", res.Content)
		assert.Equal(t, "g1", res.Conversation)
	}
	assert.Empty(t, outsider.Send)
}

func TestSocketHandler_InvalidMessage(t *testing.T) {
	f := newSocketFixture(t)
	sender := f.connect("sender")

	f.handler.HandleFrame(sender, frame(t, constant.SocketEventMessage, map[string]string{"message": "hi", "user_id": "u1"}))

	envelope := next(t, sender)
	assert.Equal(t, constant.SocketEventError, envelope.Event)
	assert.JSONEq(t, `{"message":"Invalid message data"}`, string(envelope.Data))
	assert.Empty(t, f.messages.requests)
}

func TestSocketHandler_StoreFailure(t *testing.T) {
	f := newSocketFixture(t)
	f.messages.err = errors.New("db down")
	sender := f.connect("sender")
	member := f.connect("member")
	f.hub.Join(member, "g1")

	f.handler.HandleFrame(sender, frame(t, constant.SocketEventMessage, dto.SocketMessageRequest{Message: "hi", UserId: "u1", GroupId: "g1"}))

	envelope := next(t, sender)
	assert.Equal(t, constant.SocketEventError, envelope.Event)
	assert.JSONEq(t, `{"message":"Failed to store message"}`, string(envelope.Data))
	assert.Empty(t, member.Send)
}

func TestSocketHandler_MalformedAndUnknownFrames(t *testing.T) {
	f := newSocketFixture(t)
	client := f.connect("c")

	f.handler.HandleFrame(client, []byte("not json"))
	assert.JSONEq(t, `{"message":"Invalid frame"}`, string(next(t, client).Data))

	f.handler.HandleFrame(client, frame(t, "typing", map[string]string{}))
	assert.JSONEq(t, `{"message":"Unknown event"}`, string(next(t, client).Data))

	f.handler.HandleFrame(client, frame(t, constant.SocketEventJoin, map[string]string{}))
	assert.JSONEq(t, `{"message":"Invalid join data"}`, string(next(t, client).Data))
	assert.Equal(t, 0, f.hub.RoomSize(""))
}
