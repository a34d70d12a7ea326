package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// Hub wraps the Socket.IO server and fans events out to per-user rooms.
// Clients emit "join" with their own userId after connecting; services then
// reach them through NotifyUser.
type Hub struct {
	Server *socketio.Server
}

// NewHub initializes the Socket.IO server and its event handlers.
func NewHub() *Hub {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, userID string) {
		if userID == "" {
			log.Println("❌ Invalid userId in join request")
			return
		}
		log.Printf("👥 Socket %s joined room %s\n", c.ID(), userID)
		c.Join(userID)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", reason)
	})

	return &Hub{Server: server}
}

// NotifyUser broadcasts an event to every connection in the user's room.
func (h *Hub) NotifyUser(userID, event string, payload interface{}) {
	h.Server.BroadcastToRoom("/", userID, event, payload)
}
