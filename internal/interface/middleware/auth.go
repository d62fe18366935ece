package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	"github.com/oksasatya/alc-backend/pkg/helpers"
	"github.com/oksasatya/alc-backend/pkg/response"
)

// Auth validates the access token cookie and requires that its session is
// still the current one for the user. It sets userID, userName, and
// userEmail in the Gin context on success.
func Auth(sessions repo.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.AccessCookie)
		if err != nil || token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				response.Abort(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
			response.Abort(c, http.StatusServiceUnavailable, "session store unavailable", nil)
			return
		}
		if sess.ID != claims.SessionID {
			response.Abort(c, http.StatusUnauthorized, "session expired", nil)
			return
		}

		c.Set("userID", sess.UserID)
		c.Set("userName", sess.Name)
		c.Set("userEmail", sess.Email)
		c.Next()
	}
}
