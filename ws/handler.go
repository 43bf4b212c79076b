package ws

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vnkhanh/wild-series-backend/utils"
)

type Handler struct {
	hub      *Hub
	jwt      *utils.JWTService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// NewHandler accepts any origin when allowedOrigins is empty.
func NewHandler(hub *Hub, jwtSvc *utils.JWTService, log *zap.Logger, allowedOrigins []string) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		hub: hub,
		jwt: jwtSvc,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// Episode streams new comments of one episode.
func (h *Handler) Episode(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID tập phim không hợp lệ"})
		return
	}
	h.serve(c, EpisodeRoom(uint(id)))
}

// Global streams program list changes.
func (h *Handler) Global(c *gin.Context) {
	h.serve(c, GlobalRoom)
}

func (h *Handler) serve(c *gin.Context, room string) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Thiếu token"})
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token không hợp lệ hoặc hết hạn"})
		return
	}

	log := h.log.With(zap.String("room", room), zap.Uint("user_id", claims.UserID))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := h.hub.Register(room, conn)
	defer h.hub.Unregister(room, client)
	log.Debug("websocket connected")

	if data, err := json.Marshal(gin.H{"type": "connected", "room": room}); err == nil {
		client.send <- data
	}

	// Chỉ đọc để phát hiện client ngắt kết nối
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	log.Debug("websocket disconnected")
}
