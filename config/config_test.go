package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OTP_TTL", "")
	t.Setenv("DB_DRIVER", "")
	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, "ALCWB", cfg.MembershipPrefix)
	assert.Equal(t, "user_sequence", cfg.MembershipSequence)
	assert.Equal(t, 10*time.Second, cfg.CollaboratorTimeout)
	assert.True(t, cfg.MailSendEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "Mongo")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("AVATAR_WIDTH", "256")
	t.Setenv("MAIL_SEND_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	cfg := Load()

	assert.Equal(t, "mongo", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 256, cfg.AvatarWidth)
	assert.False(t, cfg.MailSendEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("OTP_TTL", "ten minutes")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("COOKIE_SECURE", "maybe")
	cfg := Load()

	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.CookieSecure)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "alcdb", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/alcdb?sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_NonPositiveTTLsFallBack(t *testing.T) {
	t.Setenv("OTP_TTL", "0s")
	t.Setenv("RESET_TOKEN_TTL", "-5m")
	t.Setenv("COLLABORATOR_TIMEOUT", "0")
	cfg := Load()

	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, 10*time.Second, cfg.CollaboratorTimeout)
}
