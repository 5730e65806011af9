package handler

import (
	"errors"
	"net/http"
	"time"

	"clinic-booking-backend/internal/apperrors"
	"clinic-booking-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps business errors onto HTTP statuses; anything unknown is
// logged and surfaced as a generic 500 without internal detail.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case apperrors.IsNotFound(err):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrSlotNotAvailable):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	default:
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// parseDate accepts a plain calendar date or a full timestamp
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(time.Local), nil
}
