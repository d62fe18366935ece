package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenOTPCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenOTPCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "non-digit in %q", code)
		}
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: 4}
	hash, err := h.Hash("Abcdef1!")
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdef1!", hash)
	assert.True(t, h.Matches("Abcdef1!", hash))
	assert.False(t, h.Matches("abcdef1!", hash))
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("a", "r", time.Minute, time.Hour)

	access, aexp, err := m.GenerateAccessToken("u1", "s1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), aexp, 5*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "s1", claims.SessionID)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err, "access token must not verify with the refresh secret")
}

func TestRedisJSON(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := NewRedisClient(mr.Addr(), "", 0)
	defer func() { _ = rdb.Close() }()
	ctx := context.Background()

	type doc struct {
		A string `json:"a"`
	}
	var out doc
	found, err := RedisGetJSON(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, RedisSetJSON(ctx, rdb, "k", doc{A: "x"}, time.Minute))
	found, err = RedisGetJSON(ctx, rdb, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x", out.A)

	require.NoError(t, RedisDel(ctx, rdb, "k"))
	assert.False(t, mr.Exists("k"))
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := OpenRedis(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = rdb.Close()

	mr.Close()
	_, err = OpenRedis(context.Background(), mr.Addr(), "", 0)
	assert.ErrorContains(t, err, "redis ping")
}

func TestNewLogger_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("alc", "development", "").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("alc", "production", "").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("alc", "production", "warn").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("alc", "production", "loud").GetLevel())
}
