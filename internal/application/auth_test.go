package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
)

func seedMember(t *testing.T, f *fixture, email string) *entity.User {
	t.Helper()
	f.codes = []string{"123456"}
	_, err := f.svc.Register(ctx, validInput(email))
	require.NoError(t, err)
	u, err := f.svc.VerifyOTP(ctx, email, "123456")
	require.NoError(t, err)
	return u
}

func TestLoginByEmailAndMembershipID(t *testing.T) {
	f := newFixture()
	member := seedMember(t, f, "a@x.com")

	u, pair, err := f.svc.Login(ctx, " A@x.com", "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, member.ID, u.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	sess, err := f.sessions.Get(ctx, u.ID)
	require.NoError(t, err)
	claims, err := f.svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, claims.SessionID)

	u, _, err = f.svc.LoginWithMembershipID(ctx, member.MembershipID, "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, member.ID, u.ID)
	assert.Contains(t, f.audit.actions, "login")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newFixture()
	seedMember(t, f, "a@x.com")

	_, _, errUnknown := f.svc.Login(ctx, "ghost@x.com", "Abcdef1!")
	_, _, errWrong := f.svc.Login(ctx, "a@x.com", "Wrong123!")
	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrong, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())

	_, _, errID := f.svc.LoginWithMembershipID(ctx, "ALCWB9999", "Abcdef1!")
	assert.ErrorIs(t, errID, ErrInvalidCredentials)

	// the unknown-user path still runs a hash comparison
	assert.GreaterOrEqual(t, f.hasher.matches, 3)
}

func TestLoginRequiresVerifiedAccount(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.users.Create(ctx, &entity.User{
		ID: "u1", MembershipID: "ALCWB0007", Email: "late@x.com", Password: "hashed:Abcdef1!",
	}))

	_, _, err := f.svc.Login(ctx, "late@x.com", "Abcdef1!")
	assert.ErrorIs(t, err, ErrNotVerified)

	// password is checked first so wrong passwords never reveal the flag
	_, _, err = f.svc.Login(ctx, "late@x.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesSessionAndRejectsOldToken(t *testing.T) {
	f := newFixture()
	seedMember(t, f, "a@x.com")
	_, pair, err := f.svc.Login(ctx, "a@x.com", "Abcdef1!")
	require.NoError(t, err)

	next, uid, err := f.svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, uid)
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, _, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, f.svc.Logout(ctx, uid))
	_, _, err = f.svc.Refresh(ctx, next.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
