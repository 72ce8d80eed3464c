package response

import (
	"studyseat/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a service error to its HTTP status via the apperrors taxonomy.
func RespondError(c *gin.Context, err error) {
	RespondJSON(c, "error", apperrors.HTTPStatus(err), apperrors.UserMessage(err), nil, nil)
}
