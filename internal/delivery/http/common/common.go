package http_common

import (
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// Origin returns configured when set, otherwise scheme://host of the request,
// honouring X-Forwarded-Proto.
func Origin(ctx *gin.Context, configured string) string {
	if configured != "" {
		return configured
	}

	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	if proto := ctx.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + ctx.Request.Host
}
