package api

import (
	"errors"
	"net/http"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError converts a service error into the HTTP response. Every
// failure leaves through here so the kind-to-status mapping lives in
// exactly one place. Unrecognised errors become a 500 with a generic
// message plus diagnostic detail.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
