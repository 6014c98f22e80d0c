package notificationinfra

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talentgate/portal/notification"
	"github.com/talentgate/portal/pkg/iam/auth"
	"github.com/talentgate/portal/pkg/logx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// client is one staff portal session.
type client struct {
	hub    *WebSocketHub
	conn   *websocket.Conn
	send   chan []byte
	groups map[notification.Group]bool
}

// WebSocketHub implements notification.Broadcaster over live staff sessions.
// The hub runs on its own HTTP listener; tokens are verified on upgrade and
// the session joins the groups its roles grant.
type WebSocketHub struct {
	tokens *auth.TokenService

	mu      sync.RWMutex
	clients map[*client]bool

	register   chan *client
	unregister chan *client
}

// NewWebSocketHub creates a hub and starts its registration loop.
func NewWebSocketHub(tokens *auth.TokenService) *WebSocketHub {
	h := &WebSocketHub{
		tokens:     tokens,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
	go h.run()
	return h
}

func (h *WebSocketHub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes a payload to every session of a group. A session whose
// buffer is full is skipped.
func (h *WebSocketHub) Broadcast(group notification.Group, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		if !c.groups[group] {
			continue
		}
		select {
		case c.send <- payload:
		default:
			logx.Warnf("websocket session buffer full, skipping %s broadcast", group)
		}
	}
}

// ServeHTTP upgrades a staff session. The access token travels in the
// "token" query parameter since browsers cannot set headers on websocket
// dials.
func (h *WebSocketHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, err := h.tokens.Verify(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	groups := groupsForRoles(claims.Roles)
	if len(groups) == 0 {
		http.Error(w, "no staff role", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logx.Warnf("websocket upgrade failed: %v", err)
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		groups: groups,
	}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// groupsForRoles maps held roles to broadcast groups. Superusers join every
// group; any staff role joins the shared staff group.
func groupsForRoles(roles []auth.Role) map[notification.Group]bool {
	groups := make(map[notification.Group]bool)
	for _, r := range roles {
		switch r {
		case auth.RoleSuperuser:
			groups[notification.GroupStaff] = true
			groups[notification.GroupAdmin] = true
			groups[notification.GroupRecruiter] = true
			groups[notification.GroupFinaid] = true
		case auth.RoleAdmin:
			groups[notification.GroupStaff] = true
			groups[notification.GroupAdmin] = true
		case auth.RoleRecruiter:
			groups[notification.GroupStaff] = true
			groups[notification.GroupRecruiter] = true
		case auth.RoleFinaid:
			groups[notification.GroupStaff] = true
			groups[notification.GroupFinaid] = true
		case auth.RoleStaff:
			groups[notification.GroupStaff] = true
		}
	}
	return groups
}

// readPump drains inbound frames to keep pong handling alive. Clients never
// send application data.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logx.Warnf("websocket read: %v", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
