package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validatable is implemented by every request DTO
type Validatable interface {
	Validate() error
}

// Bind decodes and validates a JSON request body. On failure it writes
// the error response and returns false; handlers just return.
func Bind[T Validatable](c *gin.Context) (T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return req, false
	}
	if err := req.Validate(); err != nil {
		ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", err)
		return req, false
	}
	return req, true
}
