package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithDomainError maps the service-level error taxonomy onto HTTP
// statuses. Anything unrecognized is a 500.
func RespondWithDomainError(c *gin.Context, err error) {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		conflictErr   *ConflictError
		timeoutErr    *GatewayTimeoutError
		gatewayErr    *GatewayError
	)

	switch {
	case errors.As(err, &validationErr):
		RespondWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		RespondWithError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		RespondWithError(c, http.StatusConflict, conflictErr.Message)
	case errors.As(err, &timeoutErr):
		RespondWithError(c, http.StatusGatewayTimeout, timeoutErr.Error())
	case errors.As(err, &gatewayErr):
		RespondWithError(c, http.StatusBadGateway, gatewayErr.Error())
	default:
		RespondWithError(c, http.StatusInternalServerError, err.Error())
	}
}
