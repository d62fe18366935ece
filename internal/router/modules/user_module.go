package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
	handlers "github.com/oksasatya/alc-backend/internal/interface/http"
	"github.com/oksasatya/alc-backend/internal/interface/middleware"
	"github.com/oksasatya/alc-backend/pkg/helpers"
)

// UserModule wires the protected profile and member search routes:
// GET /api/profile, PUT /api/profile, GET /api/users/search
type UserModule struct {
	Handler  *handlers.UserHandler
	Sessions repo.SessionStore
	JWT      *helpers.JWTManager
	RDB      *redis.Client
}

func NewUserModule(h *handlers.UserHandler, sessions repo.SessionStore, jwt *helpers.JWTManager, rdb *redis.Client) *UserModule {
	return &UserModule{Handler: h, Sessions: sessions, JWT: jwt, RDB: rdb}
}

func (m *UserModule) Name() string { return "user" }

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions, m.JWT))
	auth.Use(
		middleware.RateLimit(m.RDB, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(m.RDB, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.GET("/users/search", m.Handler.Search)
	}
}
