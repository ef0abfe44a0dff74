package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// BoopNotification is what the target's client receives when someone boops them.
type BoopNotification struct {
	FromUserID string `json:"fromUserId"`
	Value      int64  `json:"value"`
	Timestamp  string `json:"timestamp"`
}

// NewSocketServer initializes the Socket.IO server. Clients join a room named
// after their own user id; boop notifications are broadcast into that room.
func NewSocketServer() *socketio.Server {
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
		c.Join(userID)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("Socket disconnected:", c.ID(), reason)
	})

	return server
}

// NotifyBoop pushes a boop notification to the target's room. Best effort:
// an offline target simply misses the push and sees the boop in history.
func NotifyBoop(server *socketio.Server, targetUserID string, notification BoopNotification) {
	server.BroadcastToRoom("/", targetUserID, "boopReceived", notification)
}
