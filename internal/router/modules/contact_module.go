package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/alc-backend/internal/interface/http"
	"github.com/oksasatya/alc-backend/internal/interface/middleware"
)

type ContactModule struct {
	Handler *handlers.ContactHandler
	RDB     *redis.Client
}

func NewContactModule(h *handlers.ContactHandler, rdb *redis.Client) *ContactModule {
	return &ContactModule{Handler: h, RDB: rdb}
}

func (m *ContactModule) Name() string { return "contact" }

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/contact", rl, m.Handler.Submit)
}
