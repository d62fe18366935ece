package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/alc-backend/internal/domain/entity"
	"github.com/oksasatya/alc-backend/pkg/mailer/templates"
)

var ctx = context.Background()

func validInput(email string) RegisterInput {
	return RegisterInput{Name: "Ana", Email: email, Password: "Abcdef1!", Occupation: "artist"}
}

func TestRegisterVerifyEndToEnd(t *testing.T) {
	f := newFixture()
	f.codes = []string{"123456"}

	msg, err := f.svc.Register(ctx, validInput("A@X.com "))
	require.NoError(t, err)
	assert.Equal(t, MsgOTPSent, msg)
	assert.NotContains(t, msg, "123456")
	assert.Equal(t, "123456", f.pending.code("a@x.com"))
	assert.Equal(t, []string{templates.OTPVerification}, f.mail.templates())

	u, err := f.svc.VerifyOTP(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.True(t, u.IsVerified)
	assert.Equal(t, "ALCWB0001", u.MembershipID)
	assert.Regexp(t, regexp.MustCompile(`^ALCWB\d{4}$`), u.MembershipID)
	assert.Equal(t, "hashed:Abcdef1!", u.Password)
	assert.Equal(t, entity.OccupationArtist, u.Occupation)
	assert.Equal(t, 1, f.users.count())
	assert.Contains(t, f.mail.templates(), templates.Welcome)
	assert.Equal(t, []string{u.ID}, f.index.indexed)

	_, err = f.svc.VerifyOTP(ctx, "a@x.com", "123456")
	assert.ErrorIs(t, err, ErrNoPendingRegistration)
}

func TestRegisterRejectsDuplicateAndWeakPassword(t *testing.T) {
	f := newFixture()
	f.codes = []string{"111111"}
	_, err := f.svc.Register(ctx, validInput("a@x.com"))
	require.NoError(t, err)
	_, err = f.svc.VerifyOTP(ctx, "a@x.com", "111111")
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, validInput("a@x.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, 1, f.users.count())

	in := validInput("b@x.com")
	in.Password = "abcdefgh"
	_, err = f.svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrWeakPassword)

	in.Occupation = "astronaut"
	in.Password = "Abcdef1!"
	_, err = f.svc.Register(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidOccupation)
}

func TestRegisterTwiceBeforeVerifyReplacesCode(t *testing.T) {
	f := newFixture()
	f.codes = []string{"111111", "222222"}
	_, err := f.svc.Register(ctx, validInput("a@x.com"))
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, validInput("a@x.com"))
	require.NoError(t, err)

	_, err = f.svc.VerifyOTP(ctx, "a@x.com", "111111")
	assert.ErrorIs(t, err, ErrCodeMismatch)
	_, err = f.svc.VerifyOTP(ctx, "a@x.com", "222222")
	require.NoError(t, err)
	assert.Equal(t, 1, f.users.count())
}

func TestResendInvalidatesOldCode(t *testing.T) {
	f := newFixture()
	f.codes = []string{"111111", "222222"}
	_, err := f.svc.Register(ctx, validInput("a@x.com"))
	require.NoError(t, err)

	msg, err := f.svc.ResendOTP(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, MsgOTPResent, msg)

	_, err = f.svc.VerifyOTP(ctx, "a@x.com", "111111")
	assert.ErrorIs(t, err, ErrCodeMismatch)

	// a mismatch leaves the entry in place
	u, err := f.svc.VerifyOTP(ctx, "a@x.com", "222222")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
}

func TestResendWithoutPendingOrAfterVerify(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ResendOTP(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNoPendingRegistration)

	f.codes = []string{"111111"}
	_, err = f.svc.Register(ctx, validInput("a@x.com"))
	require.NoError(t, err)
	_, err = f.svc.VerifyOTP(ctx, "a@x.com", "111111")
	require.NoError(t, err)

	_, err = f.svc.ResendOTP(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestVerifyExpiredEntryIsNotAMismatch(t *testing.T) {
	f := newFixture()
	f.codes = []string{"111111"}
	_, err := f.svc.Register(ctx, validInput("a@x.com"))
	require.NoError(t, err)
	f.pending.expired["a@x.com"] = true

	_, err = f.svc.VerifyOTP(ctx, "a@x.com", "999999")
	assert.ErrorIs(t, err, ErrNoPendingRegistration)
}

func TestVerifyStaleStateIsSurfaced(t *testing.T) {
	f := newFixture()
	f.codes = []string{"111111"}
	_, err := f.svc.Register(ctx, validInput("a@x.com"))
	require.NoError(t, err)
	f.pending.dropGet = true

	_, err = f.svc.VerifyOTP(ctx, "a@x.com", "111111")
	assert.ErrorIs(t, err, ErrStaleState)
	assert.Equal(t, 0, f.users.count())
	require.NotNil(t, f.logs.LastEntry())
	assert.Equal(t, "error", f.logs.LastEntry().Level.String())
}

func TestRegisterEmailFailureKeepsPending(t *testing.T) {
	f := newFixture()
	f.codes = []string{"111111"}
	f.mail.failFor[templates.OTPVerification] = statusErr{status: 401, body: "Forbidden"}

	_, err := f.svc.Register(ctx, validInput("a@x.com"))
	var pe *ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "email", pe.Provider)
	assert.Equal(t, 401, pe.StatusCode)
	assert.Equal(t, "Forbidden", pe.Body)
	assert.Equal(t, "111111", f.pending.code("a@x.com"))

	delete(f.mail.failFor, templates.OTPVerification)
	f.codes = []string{"222222"}
	_, err = f.svc.ResendOTP(ctx, "a@x.com")
	require.NoError(t, err)
}

func TestWelcomeEmailFailureDoesNotUndoVerify(t *testing.T) {
	f := newFixture()
	f.codes = []string{"111111"}
	f.mail.failFor[templates.Welcome] = errors.New("smtp down")
	_, err := f.svc.Register(ctx, validInput("a@x.com"))
	require.NoError(t, err)

	u, err := f.svc.VerifyOTP(ctx, "a@x.com", "111111")
	require.NoError(t, err)
	assert.Equal(t, "ALCWB0001", u.MembershipID)
	assert.Equal(t, 1, f.users.count())
}

func TestConcurrentVerifiesGetDistinctMembershipIDs(t *testing.T) {
	f := newFixture()
	const n = 40
	for i := 0; i < n; i++ {
		f.codes = []string{"123456"}
		_, err := f.svc.Register(ctx, validInput(fmt.Sprintf("m%d@x.com", i)))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	ids := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := f.svc.VerifyOTP(ctx, fmt.Sprintf("m%d@x.com", i), "123456")
			if err == nil {
				ids <- u.MembershipID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		assert.True(t, seen[FormatMembershipID("ALCWB", int64(i))])
	}
}

func TestFormatMembershipID(t *testing.T) {
	assert.Equal(t, "ALCWB0001", FormatMembershipID("ALCWB", 1))
	assert.Equal(t, "ALCWB0420", FormatMembershipID("ALCWB", 420))
	assert.Equal(t, "ALCWB12345", FormatMembershipID("ALCWB", 12345))
}

func TestPasswordPolicy(t *testing.T) {
	assert.False(t, IsPasswordValid("abcdefgh"))
	assert.True(t, IsPasswordValid("Abcdef1!"))
	assert.False(t, IsPasswordValid("Abcde1!"))
	assert.False(t, IsPasswordValid("ABCDEFGH"))
	assert.False(t, IsPasswordValid("Abcdefg?"))
	assert.False(t, IsPasswordValid("Abc\ndef1!"))
	assert.True(t, IsPasswordValid("ÄbcdefgH#"))
}
