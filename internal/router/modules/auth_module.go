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

// AuthModule wires registration, OTP, login and password reset routes.
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Sessions repo.SessionStore
	JWT      *helpers.JWTManager
	RDB      *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, sessions repo.SessionStore, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Sessions: sessions, JWT: jwt, RDB: rdb}
}

func (m *AuthModule) Name() string { return "auth" }

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	otpLimiter := middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.RDB, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(m.RDB, 60, time.Minute, middleware.KeyByIP(), nil)
	resetInitLimiter := middleware.RateLimit(m.RDB, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(m.RDB, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	a := rg.Group("/auth")
	a.POST("/register", registerLimiter, m.Handler.Register)
	a.POST("/resend-otp", otpLimiter, m.Handler.ResendOTP)
	a.POST("/verify-otp", verifyLimiter, m.Handler.VerifyOTP)
	a.POST("/login", loginLimiter, m.Handler.Login)
	a.POST("/login/membership", loginLimiter, m.Handler.LoginMembership)
	a.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	a.POST("/reset/init", resetInitLimiter, m.Handler.ResetInit)
	a.POST("/reset/confirm", resetConfirmLimiter, m.Handler.ResetConfirm)

	a.POST("/logout", middleware.Auth(m.Sessions, m.JWT), m.Handler.Logout)
}
