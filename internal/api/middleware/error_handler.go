package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"video2csv/internal/api/errors"
)

// ErrorHandler recovers panics into a generic JSON internal error
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		logger.Error("Unknown panic occurred",
			zap.Any("recovered", recovered),
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
		)

		apiErr := errors.NewInternalError("Internal server error")
		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes err as a JSON API error and aborts the request.
// Errors that are not API errors are mapped through the pipeline taxonomy.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	apiErr, ok := err.(*errors.APIError)
	if !ok {
		apiErr = errors.FromPipelineError(err)
	}
	apiErr.RequestID = c.GetString(RequestIDKey)
	c.Error(err)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
