package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz GET /healthz. Liveness only; dependencies are not checked.
func Healthz(c *gin.Context) {
	c.String(http.StatusOK, "UP")
}
