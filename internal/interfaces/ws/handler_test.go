package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monkframe.backend/internal/domain/entities"
	"monkframe.backend/pkg/jwt"
)

func newSocketServer(t *testing.T) (*httptest.Server, *Hub, *jwt.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	t.Cleanup(hub.Close)
	jwtService := jwt.NewJWTService("socket-secret", time.Hour)

	r := gin.New()
	r.GET("/ws", NewHandler(hub, jwtService).Serve)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub, jwtService
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func TestSocket_HandshakeThenReceive(t *testing.T) {
	srv, hub, jwtService := newSocketServer(t)

	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, "a@b.com", string(entities.UserRoleCustomer))
	require.NoError(t, err)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(SetupFrame{Type: "setup", Token: token}))

	ev := readEvent(t, conn)
	assert.Equal(t, "connected", ev.Name)

	waitFor(t, func() bool { return hub.RoomSize(userID.String()) == 1 })
	hub.ToRoom(userID.String(), "new-notification", map[string]string{"message": "for you"})

	ev = readEvent(t, conn)
	assert.Equal(t, "new-notification", ev.Name)
}

func TestSocket_InvalidTokenRejected(t *testing.T) {
	srv, _, _ := newSocketServer(t)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(SetupFrame{Type: "setup", Token: "garbage"}))

	ev := readEvent(t, conn)
	assert.Equal(t, "error", ev.Name)

	// Server closes after rejecting setup
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestSocket_WrongFirstFrameRejected(t *testing.T) {
	srv, _, _ := newSocketServer(t)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "subscribe"}))

	ev := readEvent(t, conn)
	assert.Equal(t, "error", ev.Name)
}

func TestSocket_AdminJoinsAdminRoom(t *testing.T) {
	srv, hub, jwtService := newSocketServer(t)

	adminID := uuid.New()
	token, err := jwtService.GenerateToken(adminID, "admin@b.com", string(entities.UserRoleAdmin))
	require.NoError(t, err)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(SetupFrame{Type: "setup", Token: token}))
	readEvent(t, conn) // connected

	waitFor(t, func() bool { return hub.RoomSize(AdminRoom) == 1 })
	hub.ToRoom(AdminRoom, "new-notification", nil)

	ev := readEvent(t, conn)
	assert.Equal(t, "new-notification", ev.Name)
}

func TestSocket_CustomerDoesNotSeeOtherRooms(t *testing.T) {
	srv, hub, jwtService := newSocketServer(t)

	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, "c@b.com", string(entities.UserRoleCustomer))
	require.NoError(t, err)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(SetupFrame{Type: "setup", Token: token}))
	readEvent(t, conn) // connected

	waitFor(t, func() bool { return hub.RoomSize(userID.String()) == 1 })
	hub.ToRoom(AdminRoom, "new-notification", nil)
	hub.ToRoom(uuid.NewString(), "new-notification", nil)
	hub.ToAll("ui:new", map[string]string{"id": "x"})

	// Only the broadcast arrives
	ev := readEvent(t, conn)
	assert.Equal(t, "ui:new", ev.Name)
}

func TestSocket_DisconnectLeavesRooms(t *testing.T) {
	srv, hub, jwtService := newSocketServer(t)

	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID, "d@b.com", string(entities.UserRoleCustomer))
	require.NoError(t, err)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(SetupFrame{Type: "setup", Token: token}))
	readEvent(t, conn) // connected
	waitFor(t, func() bool { return hub.RoomSize(userID.String()) == 1 })

	require.NoError(t, conn.Close())
	waitFor(t, func() bool { return hub.RoomSize(userID.String()) == 0 })
}
