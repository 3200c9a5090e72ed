package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	jwtsvc "communew/internal/pkg/jwt"
	"communew/internal/pkg/response"
)

// Handler upgrades the realtime endpoint. Authentication rides on a query
// token because browsers cannot set headers on WebSocket requests.
//
// Endpoint: GET /ws?token=JWT
type Handler struct {
	hub    *Hub
	bridge *Bridge
	jwt    *jwtsvc.Service
}

func NewHandler(hub *Hub, bridge *Bridge, jwt *jwtsvc.Service) *Handler {
	return &Handler{hub: hub, bridge: bridge, jwt: jwt}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", h.HandleWebSocket)
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "token query parameter is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime: websocket upgrade failed: %v", err)
		return
	}

	// One feed subscription per mounted listener, released on disconnect.
	sub := h.bridge.Attach(userID)
	defer sub.Stop()

	h.hub.ServeWS(conn, userID) // blocks until disconnect
}
