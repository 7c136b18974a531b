package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/abdulachik/descricoes/internal/account"
	"github.com/abdulachik/descricoes/internal/app"
	"github.com/abdulachik/descricoes/internal/db"
	"github.com/abdulachik/descricoes/internal/generator"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		ve *app.ValidationError
		qe *app.QuotaExceededError
		ge *generator.Error
	)

	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, err, "Invalid request", gin.H{"field": ve.Field})
	case errors.As(err, &qe):
		fail(c, http.StatusPaymentRequired, err, "Generation limit reached for your plan", qe.Report)
	case errors.As(err, &ge):
		status := http.StatusBadGateway
		message := "The generation provider failed"
		switch ge.Code {
		case generator.CodeQuotaExceeded:
			status = http.StatusTooManyRequests
			message = "The generation provider quota was exceeded"
		case generator.CodeAuthentication:
			message = "The generation provider rejected the API key"
		}
		fail(c, status, err, message, gin.H{"code": ge.Code})
	case errors.Is(err, account.ErrEmailTaken):
		fail(c, http.StatusConflict, err, "Email already registered", nil)
	case errors.Is(err, account.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
	case errors.Is(err, account.ErrNotFound), errors.Is(err, db.ErrNotFound):
		fail(c, http.StatusNotFound, err, "Not found", nil)
	default:
		_ = c.Error(err)
		slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
		fail(c, http.StatusInternalServerError, errors.New("internal error"), "Something went wrong", nil)
	}
}
