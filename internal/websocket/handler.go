package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection and blocks until it closes.
func ServeWs(hub *Hub, conn *websocket.Conn, onFrame FrameHandler) {
	client := NewClient(hub, conn)
	hub.Register(client)

	go client.writePump()
	client.readPump(onFrame)
}
