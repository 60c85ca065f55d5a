package http_session

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/movieparty/internal/delivery/http/common"
	http_identity_middleware "github.com/humanbelnik/movieparty/internal/delivery/http/middleware/identity"
	"github.com/humanbelnik/movieparty/internal/model"
	usecase_party "github.com/humanbelnik/movieparty/internal/usecase/party"
	usecase_session "github.com/humanbelnik/movieparty/internal/usecase/session"
)

type Controller struct {
	registry *usecase_session.Registry
	identity *http_identity_middleware.Middleware
	logger   *slog.Logger
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	registry *usecase_session.Registry,
	identity *http_identity_middleware.Middleware,
	opts ...Option,
) *Controller {
	c := &Controller{
		registry: registry,
		identity: identity,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	parties := router.Group("/parties/:party_id", c.identity.Identify())
	{
		parties.GET("", c.view)
		parties.POST("/search", c.search)
		parties.POST("/selection/back", c.backToFilters)
		parties.POST("/selection/:movie_id", c.toggle)
		parties.POST("/lock", c.lock)
		parties.POST("/unlock", c.unlock)
		parties.POST("/votes", c.vote)
		parties.GET("/results", c.results)
		parties.POST("/results/back", c.backToParty)
	}
}

// SearchRequestDTO carries catalog filters. Zero values are left out of the query.
type SearchRequestDTO struct {
	Genre    int    `json:"genre"`
	Year     int    `json:"year"`
	Language string `json:"language"`
}

type VoteRequestDTO struct {
	Choice model.Choice `json:"choice" binding:"required"`
}

// StatusFor maps session errors onto HTTP statuses and client-facing messages.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, usecase_session.ErrNotCreator),
		errors.Is(err, usecase_session.ErrCreatorCannotVote):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, usecase_session.ErrAlreadyVoted),
		errors.Is(err, usecase_session.ErrNotLocked),
		errors.Is(err, usecase_session.ErrVotingFinished),
		errors.Is(err, usecase_session.ErrPartyLocked):
		return http.StatusConflict, err.Error()
	case errors.Is(err, usecase_session.ErrEmptySelection),
		errors.Is(err, usecase_session.ErrInvalidChoice),
		errors.Is(err, usecase_session.ErrInvalidFilter),
		errors.Is(err, usecase_party.ErrInvalidPartyID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase_session.ErrUnknownMovie):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, usecase_session.ErrCatalogUnavailable):
		return http.StatusBadGateway, usecase_session.FetchFailedMessage
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (c *Controller) fail(ctx *gin.Context, op string, err error) {
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		c.logger.Error("session operation failed", slog.String("op", op), slog.String("error", err.Error()))
	} else {
		c.logger.Debug("session operation rejected", slog.String("op", op), slog.String("error", err.Error()))
	}
	ctx.JSON(status, http_common.ErrorResponse{Message: message})
}

func (c *Controller) session(ctx *gin.Context) (*usecase_session.Session, bool) {
	partyID, err := usecase_party.ParseID(ctx.Param("party_id"))
	if err != nil {
		c.fail(ctx, "open", err)
		return nil, false
	}

	s, err := c.registry.Acquire(ctx, partyID, http_identity_middleware.ParticipantID(ctx))
	if err != nil {
		c.fail(ctx, "open", err)
		return nil, false
	}
	return s, true
}

// View opens or joins the party and returns the participant's session view.
func (c *Controller) view(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

func (c *Controller) search(ctx *gin.Context) {
	var req SearchRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	s, ok := c.session(ctx)
	if !ok {
		return
	}

	filters := model.Filters{GenreID: req.Genre, Year: req.Year, Language: req.Language}
	if err := s.Search(ctx, filters); err != nil {
		c.fail(ctx, "search", err)
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

func (c *Controller) toggle(ctx *gin.Context) {
	movieID, err := strconv.ParseInt(ctx.Param("movie_id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid movie id",
		})
		return
	}

	s, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := s.ToggleSelection(model.MovieID(movieID)); err != nil {
		c.fail(ctx, "toggle", err)
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

func (c *Controller) backToFilters(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := s.BackToFilters(); err != nil {
		c.fail(ctx, "back_to_filters", err)
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

func (c *Controller) lock(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := s.LockIn(ctx); err != nil {
		c.fail(ctx, "lock", err)
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

func (c *Controller) unlock(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := s.ReturnToSelection(ctx); err != nil {
		c.fail(ctx, "unlock", err)
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

func (c *Controller) vote(ctx *gin.Context) {
	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	s, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := s.Vote(ctx, req.Choice); err != nil {
		c.fail(ctx, "vote", err)
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

func (c *Controller) results(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	if err := s.ShowResults(ctx); err != nil {
		c.fail(ctx, "results", err)
		return
	}
	ctx.JSON(http.StatusOK, s.View())
}

func (c *Controller) backToParty(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	s.BackToParty()
	ctx.JSON(http.StatusOK, s.View())
}
