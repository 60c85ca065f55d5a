package http_identity_middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/movieparty/internal/delivery/http/common"
	"github.com/humanbelnik/movieparty/internal/model"
	"github.com/humanbelnik/movieparty/internal/service/identity"
)

const (
	CookieName = "movie_party_userid"
	HeaderName = "X-participant-id"

	contextKey   = "participant_id"
	cookieMaxAge = 365 * 24 * 60 * 60
)

type Middleware struct {
	provider *identity.Provider
	secure   bool
	logger   *slog.Logger
}

type Option func(*Middleware)

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

// WithSecureCookie marks the id cookie Secure, for deployments behind TLS.
func WithSecureCookie(secure bool) Option {
	return func(m *Middleware) {
		m.secure = secure
	}
}

func New(provider *identity.Provider, opts ...Option) *Middleware {
	m := &Middleware{
		provider: provider,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Identify resolves the participant id once per request and stores it in the gin context.
func (m *Middleware) Identify() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, err := m.provider.GetOrCreate(&requestStorage{ctx: ctx, secure: m.secure})
		if err != nil {
			m.logger.Error("failed to resolve participant", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			ctx.Abort()
			return
		}

		ctx.Set(contextKey, id)
		ctx.Header(HeaderName, string(id))
		ctx.Next()
	}
}

// ParticipantID is the id resolved by Identify, empty when the middleware did not run.
func ParticipantID(ctx *gin.Context) model.ParticipantID {
	if v, ok := ctx.Get(contextKey); ok {
		if id, ok := v.(model.ParticipantID); ok {
			return id
		}
	}
	return model.EmptyParticipantID
}

// requestStorage reads the id from the header or cookie and writes it back as a cookie.
type requestStorage struct {
	ctx    *gin.Context
	secure bool
}

func (s *requestStorage) Load() (string, bool) {
	if id := s.ctx.GetHeader(HeaderName); id != "" {
		return id, true
	}
	if id, err := s.ctx.Cookie(CookieName); err == nil && id != "" {
		return id, true
	}
	return "", false
}

func (s *requestStorage) Save(id string) error {
	s.ctx.SetSameSite(http.SameSiteLaxMode)
	s.ctx.SetCookie(CookieName, id, cookieMaxAge, "/", "", s.secure, true)
	return nil
}
