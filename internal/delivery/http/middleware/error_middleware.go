package middleware

import (
	"errors"
	"net/http"

	"tescilofisi-backend/internal/delivery/http/response"
	"tescilofisi-backend/pkg/apperror"
	"tescilofisi-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			} else {
				// Never expose internal error details to clients. Log the
				// actual error server-side and send a generic message.
				logger.Log.Error("unhandled error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "Beklenmeyen bir hata oluştu. Lütfen tekrar deneyin.", nil)
			}
		}
	}
}
