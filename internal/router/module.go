package router

import "github.com/gin-gonic/gin"

// Module is a feature slice that registers its routes under /api.
// Name is used in startup logs.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
