package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vnkhanh/wild-series-backend/models"
)

// GlobalRoom nhận các sự kiện của danh sách chương trình.
const GlobalRoom = "global"

// EpisodeRoom is the room of clients following one episode's comments.
func EpisodeRoom(episodeID uint) string {
	return fmt.Sprintf("episode:%d", episodeID)
}

type Client struct {
	conn *websocket.Conn
	send chan []byte
}

type Hub struct {
	rooms map[string]map[*Client]struct{}
	mu    sync.RWMutex
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
	}
}

// Register adds conn to room and starts its write pump.
func (h *Hub) Register(room string, conn *websocket.Conn) *Client {
	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.mu.Lock()
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]struct{})
	}
	h.rooms[room][client] = struct{}{}
	h.mu.Unlock()

	go h.writePump(client)
	return client
}

// Unregister removes client from room and closes its send channel.
func (h *Hub) Unregister(room string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[room]
	if !ok {
		return
	}
	if _, ok := clients[client]; ok {
		close(client.send)
		delete(clients, client)
	}
	if len(clients) == 0 {
		delete(h.rooms, room)
	}
}

// Broadcast queues data for every client of room. Slow clients whose
// buffer is full miss the message. It returns how many clients got it.
func (h *Hub) Broadcast(room string, data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.rooms[room] {
		select {
		case client.send <- data:
			delivered++
		default:
			h.log.Warn("websocket client buffer full", zap.String("room", room))
		}
	}
	return delivered
}

func (h *Hub) BroadcastJSON(room string, v interface{}) int {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("websocket marshal failed", zap.Error(err))
		return 0
	}
	return h.Broadcast(room, data)
}

type Stats struct {
	Rooms   int `json:"rooms"`
	Clients int `json:"clients"`
}

func (h *Hub) GetStats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := Stats{Rooms: len(h.rooms)}
	for _, clients := range h.rooms {
		stats.Clients += len(clients)
	}
	return stats
}

// CommentMessage là payload gửi khi có bình luận mới.
type CommentMessage struct {
	Type      string    `json:"type"`
	ID        uint      `json:"id"`
	EpisodeID uint      `json:"episode_id"`
	Author    string    `json:"author"`
	Comment   string    `json:"comment"`
	Rate      int       `json:"rate"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Hub) CommentPosted(comment *models.Comment) int {
	msg := CommentMessage{
		Type:      "comment_posted",
		ID:        comment.ID,
		EpisodeID: comment.EpisodeID,
		Comment:   comment.Comment,
		Rate:      comment.Rate,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		msg.Author = comment.Author.FullName
	}
	return h.BroadcastJSON(EpisodeRoom(comment.EpisodeID), msg)
}

type ProgramListMessage struct {
	Type  string `json:"type"`
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// ProgramListChanged báo cho trang danh sách khi chương trình được tạo hoặc xoá.
func (h *Hub) ProgramListChanged(event string, program *models.Program) int {
	return h.BroadcastJSON(GlobalRoom, ProgramListMessage{
		Type:  event,
		ID:    program.ID,
		Slug:  program.Slug,
		Title: program.Title,
	})
}

func (h *Hub) writePump(client *Client) {
	defer func() {
		client.conn.WriteMessage(websocket.CloseMessage, []byte{})
		client.conn.Close()
	}()
	for msg := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
