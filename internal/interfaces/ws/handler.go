package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"monkframe.backend/internal/domain/entities"
	"monkframe.backend/pkg/jwt"
	"monkframe.backend/pkg/logger"
)

// setupTimeout bounds how long a connection may stay unauthenticated.
// Connect is step one of the handshake; the setup frame is step two.
const setupTimeout = 10 * time.Second

// SetupFrame is the identity announcement a client sends after connecting
type SetupFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Handler upgrades HTTP requests and runs the socket handshake
type Handler struct {
	hub        *Hub
	jwtService *jwt.JWTService
	upgrader   websocket.Upgrader
}

// NewHandler creates a socket handler
func NewHandler(hub *Hub, jwtService *jwt.JWTService) *Handler {
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws. The connection is unauthenticated until the client
// sends a setup frame with a valid token; no events are delivered before
// that, and a connection that never authenticates is dropped.
func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error(c.Request.Context(), "Websocket upgrade failed", zap.Error(err))
		return
	}

	claims, err := h.awaitSetup(conn)
	if err != nil {
		logger.Warn(c.Request.Context(), "Websocket setup failed", zap.Error(err))
		_ = conn.WriteMessage(websocket.TextMessage, mustEncode(Event{Name: "error", Data: gin.H{"message": "setup required"}}))
		_ = conn.Close()
		return
	}

	client := NewClient(conn)
	rooms := []string{claims.UserID.String()}
	if claims.Role == string(entities.UserRoleAdmin) {
		rooms = append(rooms, AdminRoom)
	}
	h.hub.Register(client, rooms...)

	logger.Info(c.Request.Context(), "Websocket client connected",
		zap.String("user_id", claims.UserID.String()),
		zap.String("role", claims.Role),
	)

	if err := client.Send(mustEncode(Event{Name: "connected", Data: gin.H{"userId": claims.UserID}})); err != nil {
		h.hub.Unregister(client)
		return
	}

	h.readLoop(client, conn)
	h.hub.Unregister(client)
}

// awaitSetup reads the identity frame within the handshake deadline
func (h *Handler) awaitSetup(conn *websocket.Conn) (*jwt.Claims, error) {
	_ = conn.SetReadDeadline(time.Now().Add(setupTimeout))
	defer conn.SetReadDeadline(time.Time{})

	_, raw, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	var frame SetupFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, err
	}
	if frame.Type != "setup" {
		return nil, jwt.ErrInvalidToken
	}

	return h.jwtService.ValidateToken(frame.Token)
}

// readLoop drains the connection until it closes. Inbound frames other than
// the handshake carry no meaning; the channel is server-push.
func (h *Handler) readLoop(client *Client, conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func mustEncode(e Event) []byte {
	payload, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	return payload
}
