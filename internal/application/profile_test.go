package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

type shrinker struct{ called bool }

func (s *shrinker) Resize(data []byte, _ string) ([]byte, error) {
	s.called = true
	return data[:1], nil
}

func TestUpdateProfilePartial(t *testing.T) {
	f := newFixture()
	r := &shrinker{}
	f.svc.Resizer = r
	member := seedMember(t, f, "a@x.com")
	_, _, err := f.svc.Login(ctx, "a@x.com", "Abcdef1!")
	require.NoError(t, err)

	u, err := f.svc.UpdateProfile(ctx, member.ID, UpdateProfileInput{
		Occupation: "academic",
		Image:      &FileUpload{Filename: "me.PNG", ContentType: "image/png", Data: []byte("png-bytes")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, entity.OccupationAcademic, u.Occupation)
	assert.Equal(t, member.Password, u.Password)
	assert.True(t, r.called)
	require.Len(t, f.files.keys, 1)
	assert.Regexp(t, `^avatars/`+member.ID+`/.+\.png$`, f.files.keys[0])
	assert.Equal(t, "https://files.example.com/"+f.files.keys[0], u.ProfileImageURL)

	sess, err := f.sessions.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ProfileImageURL, sess.ProfileImageURL)

	u, err = f.svc.UpdateProfile(ctx, member.ID, UpdateProfileInput{Name: "  Ana B ", Password: "Newpass1#"})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", u.Name)
	assert.Equal(t, "hashed:Newpass1#", u.Password)
}

func TestUpdateProfileRejectsWithoutSaving(t *testing.T) {
	f := newFixture()
	member := seedMember(t, f, "a@x.com")
	saves := f.users.saves

	_, err := f.svc.UpdateProfile(ctx, member.ID, UpdateProfileInput{Name: "X", Password: "weak"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = f.svc.UpdateProfile(ctx, member.ID, UpdateProfileInput{Occupation: "pirate"})
	assert.ErrorIs(t, err, ErrInvalidOccupation)

	f.files.err = statusErr{status: 503, body: "unavailable"}
	_, err = f.svc.UpdateProfile(ctx, member.ID, UpdateProfileInput{
		Name:  "X",
		Image: &FileUpload{Filename: "a.jpg", Data: []byte{1}},
	})
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 503, pe.StatusCode)

	assert.Equal(t, saves, f.users.saves)
	got, err := f.svc.GetProfile(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = f.svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSearchMembers(t *testing.T) {
	f := newFixture()
	hits, err := f.svc.SearchMembers(ctx, "ana", 0)
	require.NoError(t, err)
	assert.Equal(t, "ANA", hits[0]["name"])

	f.svc.Index = nil
	hits, err = f.svc.SearchMembers(ctx, "ana", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
