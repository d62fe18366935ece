package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/alc-backend/internal/application"
)

// RequestMeta copies the client IP and user agent into the request context
// so services can stamp them on audit entries and emails. Run after RealIP.
func RequestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := application.RequestMeta{IP: ipFromCtx(c), UserAgent: c.Request.UserAgent()}
		c.Request = c.Request.WithContext(application.WithRequestMeta(c.Request.Context(), meta))
		c.Next()
	}
}
