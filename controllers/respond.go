package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Kenneth14031129/NutriTrack-sub000/services"
	"github.com/Kenneth14031129/NutriTrack-sub000/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an opaque server error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet("userID").(uint)
}

// parseDayOrToday parses a YYYY-MM-DD body field, defaulting to today.
func parseDayOrToday(raw string) (time.Time, error) {
	if raw == "" {
		return utils.StartOfDay(time.Now()), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

// queryDay reads a YYYY-MM-DD query param, defaulting to today.
func queryDay(c *gin.Context, param string) (time.Time, error) {
	raw := c.Query(param)
	if raw == "" {
		return utils.StartOfDay(time.Now()), nil
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return day, nil
}
