package realtimeapi

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/tobyt50/PPALink-sub000/pkg/iam/auth"
	"github.com/tobyt50/PPALink-sub000/pkg/logx"
	"github.com/tobyt50/PPALink-sub000/realtime"
	"github.com/tobyt50/PPALink-sub000/realtime/presence"
)

// Gateway upgrades clients to websocket and tracks them in the presence
// registry for the lifetime of the socket. It pushes nothing itself; the
// event publisher writes to the registered connections.
type Gateway struct {
	registry *presence.Registry
	tokens   auth.TokenService
}

func NewGateway(registry *presence.Registry, tokens auth.TokenService) *Gateway {
	return &Gateway{
		registry: registry,
		tokens:   tokens,
	}
}

// RegisterRoutes mounts the websocket endpoint.
// GET /ws?token=<access token>
func RegisterRoutes(app *fiber.App, g *Gateway) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", websocket.New(g.handle))
}

// syncConn serializes writers on one websocket connection. The underlying
// library allows at most one concurrent writer, but pushes arrive from
// arbitrary request goroutines.
type syncConn struct {
	mu   sync.Mutex
	conn realtime.Connection
}

func (c *syncConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *syncConn) Close() error {
	return c.conn.Close()
}

func (g *Gateway) handle(conn *websocket.Conn) {
	defer conn.Close()

	authCtx, err := g.tokens.Validate(conn.Query("token"))
	if err != nil {
		logx.Warnf("websocket auth rejected: %v", err)
		return
	}

	handle := &syncConn{conn: conn}
	g.registry.Register(authCtx.UserID, handle)
	defer g.registry.Unregister(authCtx.UserID, handle)

	logx.Debugf("user %s connected", authCtx.UserID)

	// Block until the client goes away; inbound frames are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	logx.Debugf("user %s disconnected", authCtx.UserID)
}
