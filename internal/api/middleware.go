package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abdulachik/descricoes/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionKey      = "session"
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
)

var errUnauthenticated = errors.New("unauthenticated")

// requestLogger assigns a request id and logs each request through slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", id,
		}
		if sess, ok := c.Get(sessionKey); ok {
			attrs = append(attrs, "account_id", sess.(app.Session).AccountID)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "error", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			slog.Error("http request", attrs...)
		case status >= http.StatusBadRequest:
			slog.Warn("http request", attrs...)
		default:
			slog.Info("http request", attrs...)
		}
	}
}

// authenticate resolves the bearer token into an app.Session.
func authenticate(a *app.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			fail(c, http.StatusUnauthorized, errUnauthenticated, "Missing or malformed Authorization header", nil)
			return
		}

		sess, err := a.SessionFromToken(c.Request.Context(), token)
		if err != nil {
			fail(c, http.StatusUnauthorized, errUnauthenticated, "Invalid or expired token", nil)
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func sessionFrom(c *gin.Context) app.Session {
	return c.MustGet(sessionKey).(app.Session)
}
