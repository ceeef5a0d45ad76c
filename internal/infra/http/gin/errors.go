package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"bnb/internal/app/policies"
	domainbooking "bnb/internal/domain/booking"
	domainlistings "bnb/internal/domain/listings"
	"bnb/internal/domain/shared/daterange"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, daterange.ErrInvalidDateFormat):
		return http.StatusBadRequest
	case errors.Is(err, domainlistings.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainbooking.ErrSelectionNotConfirmable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, policies.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// abortJSON answers with the mapped status. Server errors keep their
// details in the log only.
func abortJSON(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
