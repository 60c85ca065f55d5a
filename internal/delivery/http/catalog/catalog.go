package http_catalog

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/movieparty/internal/delivery/http/common"
	"github.com/humanbelnik/movieparty/internal/model"
	usecase_session "github.com/humanbelnik/movieparty/internal/usecase/session"
)

//go:generate mockery --name=GenreLister --output=./mocks/catalog/genres --filename=genres.go
type GenreLister interface {
	ListGenres(ctx context.Context) (model.Genres, error)
}

type Controller struct {
	catalog GenreLister
	logger  *slog.Logger
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(catalog GenreLister, opts ...Option) *Controller {
	c := &Controller{
		catalog: catalog,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/genres", c.genres)
}

// genres lists catalog genres sorted by name.
func (c *Controller) genres(ctx *gin.Context) {
	genres, err := c.catalog.ListGenres(ctx)
	if err != nil {
		c.logger.Warn("failed to list genres", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: usecase_session.FetchFailedMessage,
		})
		return
	}
	ctx.JSON(http.StatusOK, genres.Sorted())
}
