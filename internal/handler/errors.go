package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wobot-todo/backend/internal/errs"
	"github.com/wobot-todo/backend/internal/model"
)

// writeError translates a classified error into a status code and body.
// Unclassified errors are logged and reported as a bare 500.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrConflict):
		c.JSON(http.StatusConflict, model.ErrorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: errs.ErrBadCredentials.Error()})
	case errors.Is(err, errs.ErrUnauthenticated):
		c.Header("WWW-Authenticate", "Bearer")
		msg := "could not validate credentials"
		if errors.Is(err, errs.ErrExpiredToken) {
			msg = "token expired"
		}
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Error: msg})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, model.ErrorResponse{Error: "forbidden"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: err.Error()})
	default:
		log.Error("request failed",
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
	}
}
