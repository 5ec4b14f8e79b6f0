package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadhilmh/fadhil-app-api/internal/common"
)

// response is the envelope every JSON endpoint returns:
// {status, message, data}.
type response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// statusForKind maps the error taxonomy to HTTP statuses. Client mistakes
// (bad input, unknown account, wrong password) are all 400 by contract;
// misconfiguration and anything unclassified are 500.
func statusForKind(kind common.Kind) int {
	switch kind {
	case common.KindValidation, common.KindNotFound, common.KindUnauthorized:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// renderError is the single boundary translating tagged errors into HTTP
// responses. Untagged errors become a generic 500; causes are logged,
// never returned.
func (s *HTTPServer) renderError(c *gin.Context, err error) {
	status := statusForKind(common.KindOf(err))
	message := "internal error"

	var appErr *common.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status == http.StatusInternalServerError {
		args := []any{"error", err.Error()}
		if cause := errors.Unwrap(err); cause != nil {
			args = append(args, "cause", cause.Error())
		}
		s.logger.Error(c.Request.Context(), "request failed", args...)
	}

	c.JSON(status, response{Status: status, Message: message})
}
