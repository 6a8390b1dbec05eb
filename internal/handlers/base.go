package handlers

import (
	"context"
	"errors"
	"net/http"

	"newsroom/internal/middleware"
	"newsroom/internal/pagination"
	"newsroom/internal/services"
	"newsroom/internal/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps a service failure to its HTTP status.
func statusFor(e *services.Error) int {
	switch e.Kind {
	case services.KindNotFound, services.KindEmptyCollection, services.KindBeyondRange:
		return http.StatusNotFound
	case services.KindInvalidInput, services.KindNoChanges:
		return http.StatusBadRequest
	case services.KindConflict:
		// 重复点赞属于请求错误，用户名冲突才是 409
		if e.Resource == services.ResourceUser {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusForbidden
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// messageFor builds the client-facing text. It never includes ids or
// storage error text.
func messageFor(e *services.Error) string {
	switch e.Kind {
	case services.KindNotFound:
		return e.Resource + " not found"
	case services.KindEmptyCollection:
		return "no " + e.Resource + "s found"
	case services.KindBeyondRange:
		return "page out of range"
	case services.KindInvalidInput:
		return "invalid " + e.Field
	case services.KindNoChanges:
		return "no changes"
	case services.KindConflict:
		if e.Resource == services.ResourceUser {
			return "username already taken"
		}
		return e.Resource + " already exists"
	case services.KindUnauthorized:
		return "not allowed to modify this " + e.Resource
	case services.KindUnauthenticated:
		return "invalid username or password"
	default:
		return "internal server error"
	}
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
		return
	}
	e, ok := services.AsError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if e.Kind == services.KindConflict && e.Resource == services.ResourceLike {
		c.JSON(statusFor(e), gin.H{"error": "post already liked"})
		return
	}
	c.JSON(statusFor(e), gin.H{"error": messageFor(e)})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// pathID parses a numeric path parameter. A malformed id cannot name an
// existing record, so it is reported as not found.
func pathID(c *gin.Context, name, resource string) (uint, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return 0, false
	}
	return id, true
}

// pager normalizes ?page and ?limit and applies the configured ceiling.
type pager struct {
	maxPageSize int
}

func (p pager) params(c *gin.Context) pagination.Params {
	return pagination.FromQuery(c.Query("page"), c.Query("limit")).Capped(p.maxPageSize)
}

func viewer(c *gin.Context) uint {
	return middleware.ViewerID(c)
}
