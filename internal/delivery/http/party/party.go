package http_party

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/movieparty/internal/delivery/http/common"
	http_identity_middleware "github.com/humanbelnik/movieparty/internal/delivery/http/middleware/identity"
	usecase_party "github.com/humanbelnik/movieparty/internal/usecase/party"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

type Controller struct {
	usecase  *usecase_party.Usecase
	identity *http_identity_middleware.Middleware
	origin   string
	logger   *slog.Logger
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithPublicOrigin fixes the scheme and host used in share links. Without it
// the request's own origin is used.
func WithPublicOrigin(origin string) Option {
	return func(c *Controller) {
		c.origin = origin
	}
}

func New(
	usecase *usecase_party.Usecase,
	identity *http_identity_middleware.Middleware,
	opts ...Option,
) *Controller {
	c := &Controller{
		usecase:  usecase,
		identity: identity,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	parties := router.Group("/parties", c.identity.Identify())
	{
		parties.POST("", c.create)
		parties.GET("/new", c.createAndRedirect)
		parties.GET("/:party_id/link", c.link)
		parties.GET("/:party_id/qr", c.qr)
	}
}

type CreateResponseDTO struct {
	PartyID string `json:"party_id"`
	Link    string `json:"link"`
}

type LinkResponseDTO struct {
	Link string `json:"link"`
}

func (c *Controller) create(ctx *gin.Context) {
	id, err := c.usecase.Create(ctx, http_identity_middleware.ParticipantID(ctx))
	if err != nil {
		c.logger.Error("failed to create party", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusCreated, CreateResponseDTO{
		PartyID: string(id),
		Link:    usecase_party.ShareLink(http_common.Origin(ctx, c.origin), id),
	})
}

// createAndRedirect is the "start a party" entry point: the caller becomes the
// creator and lands on the new party's page.
func (c *Controller) createAndRedirect(ctx *gin.Context) {
	id, err := c.usecase.Create(ctx, http_identity_middleware.ParticipantID(ctx))
	if err != nil {
		c.logger.Error("failed to create party", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.Redirect(http.StatusSeeOther, "/party/"+string(id))
}

func (c *Controller) shareLink(ctx *gin.Context) (string, bool) {
	id, err := usecase_party.ParseID(ctx.Param("party_id"))
	if err != nil {
		if errors.Is(err, usecase_party.ErrInvalidPartyID) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: err.Error(),
			})
			return "", false
		}
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return "", false
	}
	return usecase_party.ShareLink(http_common.Origin(ctx, c.origin), id), true
}

func (c *Controller) link(ctx *gin.Context) {
	link, ok := c.shareLink(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, LinkResponseDTO{Link: link})
}

// qr renders the share link as a PNG QR code.
func (c *Controller) qr(ctx *gin.Context) {
	link, ok := c.shareLink(ctx)
	if !ok {
		return
	}

	png, err := qrcode.Encode(link, qrcode.Medium, qrSize)
	if err != nil {
		c.logger.Error("failed to encode qr", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}
