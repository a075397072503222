package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fardannozami/ecoplay/internal/app/usecase"
	"github.com/fardannozami/ecoplay/internal/domain"
)

func validSignUp() usecase.SignUpInput {
	return usecase.SignUpInput{
		FullName:        "Budi Santoso",
		Username:        "budi",
		Email:           "budi@example.com",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
		School:          "SMA 1",
		Grade:           "11",
	}
}

func TestSignUp_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		edit  func(in *usecase.SignUpInput)
		field string
	}{
		{name: "no full name", edit: func(in *usecase.SignUpInput) { in.FullName = " " }, field: "full_name"},
		{name: "no username", edit: func(in *usecase.SignUpInput) { in.Username = "" }, field: "username"},
		{name: "username with space", edit: func(in *usecase.SignUpInput) { in.Username = "bu di" }, field: "username"},
		{name: "no email", edit: func(in *usecase.SignUpInput) { in.Email = "" }, field: "email"},
		{name: "bad email", edit: func(in *usecase.SignUpInput) { in.Email = "budi-at-example" }, field: "email"},
		{name: "short password", edit: func(in *usecase.SignUpInput) { in.Password, in.ConfirmPassword = "abc", "abc" }, field: "password"},
		{name: "mismatch", edit: func(in *usecase.SignUpInput) { in.ConfirmPassword = "hunter23" }, field: "confirm_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSignUp()
			tt.edit(&in)
			_, err := f.auth.SignUp(f.ctx, in)
			require.ErrorIs(t, err, domain.ErrValidation)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSignUp_UniqueUsernameAndEmail(t *testing.T) {
	f := newFixture(t)

	u, err := f.auth.SignUp(f.ctx, validSignUp())
	require.NoError(t, err)
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "hunter22", u.PasswordHash)

	in := validSignUp()
	in.Username = "BUDI"
	in.Email = "other@example.com"
	_, err = f.auth.SignUp(f.ctx, in)
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	in = validSignUp()
	in.Username = "budi2"
	in.Email = "Budi@Example.com"
	_, err = f.auth.SignUp(f.ctx, in)
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignIn_UsernameOrEmail(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.SignUp(f.ctx, validSignUp())
	require.NoError(t, err)

	for _, login := range []string{"budi", "BUDI", "budi@example.com", " Budi@Example.com "} {
		sess, got, err := f.auth.SignIn(f.ctx, login, "hunter22")
		require.NoError(t, err, login)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, u.ID, sess.UserID)
		require.False(t, sess.Admin)

		resolved, ok := f.auth.Authenticate(sess.Token)
		require.True(t, ok)
		require.Equal(t, sess, resolved)
	}

	_, _, err = f.auth.SignIn(f.ctx, "budi", "wrong-pass")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = f.auth.SignIn(f.ctx, "nobody", "hunter22")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSignOut_RevokesSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.SignUp(f.ctx, validSignUp())
	require.NoError(t, err)

	sess, _, err := f.auth.SignIn(f.ctx, "budi", "hunter22")
	require.NoError(t, err)

	f.auth.SignOut(sess.Token)
	_, ok := f.auth.Authenticate(sess.Token)
	require.False(t, ok)
}

func TestSignInAdmin(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.SignInAdmin("guess")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	sess, err := f.auth.SignInAdmin("s3cret")
	require.NoError(t, err)
	require.True(t, sess.Admin)
	require.Empty(t, sess.UserID)
}

func TestEnsureChatUser_RegistersOnceAndTracksName(t *testing.T) {
	f := newFixture(t)

	first := f.chatUser(t, "6281100", "Alice")
	second := f.chatUser(t, "6281100", "Alice W")
	require.Equal(t, first.UserID, second.UserID)

	u := f.user(t, first.UserID)
	require.Equal(t, "Alice W", u.FullName)
	require.Equal(t, "6281100", u.Phone)
	require.Empty(t, u.PasswordHash)

	// Chat users cannot sign in with a password
	_, _, err := f.auth.SignIn(f.ctx, "6281100", "")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
