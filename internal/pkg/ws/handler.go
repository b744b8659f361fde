package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rct/connect/internal/app/models/dto"
	"github.com/rct/connect/internal/pkg/auth"
)

// Handler upgrades HTTP requests to websocket connections.
type Handler struct {
	hub        *Hub
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewHandler creates a new websocket Handler
func NewHandler(hub *Hub, jwtService *auth.JWTService, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
		logger:     logger.With().Str("component", "ws").Logger(),
	}
}

// HandleConnection authenticates the caller and upgrades the connection.
// Browsers cannot set an Authorization header on a websocket handshake, so
// the token travels in the query string instead.
func (h *Handler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Non autorisé"))
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Non autorisé"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Str("userID", claims.UserID).Msg("Failed to upgrade connection")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 64),
		userID: claims.UserID,
		logger: h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("userID", claims.UserID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
