package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/hubinova/backend/internal/models"
	"github.com/hubinova/backend/pkg/logger"
)

const maxLoggedPath = 500

// AccessRecorder persists access log entries.
type AccessRecorder interface {
	Record(ctx context.Context, entry *models.AccessLog) error
}

// AccessLog records every request under /api. It expects OptionalAuth (or
// AuthRequired) earlier in the chain so the actor is known.
func AccessLog(recorder AccessRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodOptions || !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			return
		}

		entry := &models.AccessLog{
			Email:     GetEmail(c),
			Method:    c.Request.Method,
			Path:      truncate(c.Request.URL.Path, maxLoggedPath),
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: truncate(c.Request.UserAgent(), 500),
		}
		if id := GetUserID(c); id > 0 {
			entry.UserID = &id
		}
		if entry.Email == "" {
			entry.Email = models.AnonymousActor
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
		defer cancel()
		if err := recorder.Record(ctx, entry); err != nil {
			logger.Warn().Err(err).Str("path", entry.Path).Msg("failed to record access log")
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
