package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/alc-backend/internal/application"
	"github.com/oksasatya/alc-backend/internal/domain/entity"
	repo "github.com/oksasatya/alc-backend/internal/domain/repository"
)

type memUsers struct {
	repo.UserRepository
	byEmail map[string]*entity.User
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byEmail[u.Email] = u
	return nil
}

type memSeq struct{ n int64 }

func (s *memSeq) Next(context.Context, string) (int64, error) { s.n++; return s.n, nil }

func (s *memSeq) Peek(context.Context, string) (int64, error) { return s.n, nil }

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "h:" + p, nil }

func (plainHasher) Matches(p, h string) bool { return h == "h:"+p }

func TestSeedMember(t *testing.T) {
	users := &memUsers{byEmail: map[string]*entity.User{}}
	seq := &memSeq{}
	in := seedInput{Email: " Demo@X.com", Password: "Demo123!", Name: "Demo", Occupation: "artist", Prefix: "ALCWB", Sequence: "user_sequence"}

	u, created, err := seedMember(context.Background(), users, seq, plainHasher{}, in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ALCWB0001", u.MembershipID)
	assert.Equal(t, "demo@x.com", u.Email)
	assert.True(t, u.IsVerified)
	assert.Equal(t, entity.OccupationArtist, u.Occupation)

	again, created, err := seedMember(context.Background(), users, seq, plainHasher{}, in)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, int64(1), seq.n)
}

func TestSeedMember_RejectsWeakPassword(t *testing.T) {
	users := &memUsers{byEmail: map[string]*entity.User{}}
	_, _, err := seedMember(context.Background(), users, &memSeq{}, plainHasher{}, seedInput{Email: "a@x.com", Password: "abcdefgh", Occupation: "OTHER"})
	assert.ErrorIs(t, err, application.ErrWeakPassword)
}
