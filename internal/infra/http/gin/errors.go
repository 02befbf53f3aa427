package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"hotelier/internal/domain/shared/fault"
)

// writeError translates the domain error kinds onto HTTP statuses. Anything
// outside the taxonomy is a 500 with the message withheld.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fault.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, fault.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, fault.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, fault.ErrState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
