package ws_party

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/movieparty/internal/delivery/http/common"
	http_identity_middleware "github.com/humanbelnik/movieparty/internal/delivery/http/middleware/identity"
	http_session "github.com/humanbelnik/movieparty/internal/delivery/http/session"
	usecase_party "github.com/humanbelnik/movieparty/internal/usecase/party"
	usecase_session "github.com/humanbelnik/movieparty/internal/usecase/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Controller upgrades party pages to a websocket that streams the caller's
// session view and the party's participant count.
type Controller struct {
	registry *usecase_session.Registry
	hub      *Hub
	identity *http_identity_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	registry *usecase_session.Registry,
	hub *Hub,
	identity *http_identity_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		registry: registry,
		hub:      hub,
		identity: identity,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/parties/:party_id/ws", c.identity.Identify(), c.partyWS)
}

func (c *Controller) partyWS(ctx *gin.Context) {
	partyID, err := usecase_party.ParseID(ctx.Param("party_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
		return
	}
	participantID := http_identity_middleware.ParticipantID(ctx)

	s, release, err := c.registry.Hold(ctx.Request.Context(), partyID, participantID)
	if err != nil {
		status, message := http_session.StatusFor(err)
		c.logger.Error("failed to open session", slog.String("error", err.Error()))
		ctx.JSON(status, http_common.ErrorResponse{Message: message})
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		release()
		c.logger.Error("failed to upgrade to websocket",
			slog.String("error", err.Error()),
		)
		return
	}

	client := NewClient(conn, partyID, participantID, release)
	c.hub.RegisterClient(client)

	c.hub.SendView(s.View())
	c.hub.BroadcastParticipants(partyID)

	go c.hub.StartClientReading(client)
	go c.hub.StartClientWriting(client)
}
