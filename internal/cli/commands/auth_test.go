package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk-dev/hrdesk/internal/cli/auth"
	"github.com/hrdesk-dev/hrdesk/internal/cli/pages"
	"github.com/hrdesk-dev/hrdesk/internal/cli/photo"
	"github.com/hrdesk-dev/hrdesk/internal/cli/userconfig"
)

var dewi = fakeUser{ID: "u1", Name: "Dewi", Email: "dewi@example.com", Role: "hrd", Position: "HR Lead"}

func TestLogin_Success(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")

	err := runLogin(context.Background(), env.opts, "dewi@example.com", "rahasia")
	require.NoError(t, err)

	token, err := env.tokens.LoadToken(env.api.URL())
	require.NoError(t, err)
	assert.Equal(t, "token-hrd", token)

	assert.Equal(t, []string{"/hrd/dashboard"}, env.navigator.Routes())
	assert.Contains(t, env.out.String(), "Login successful!")
	assert.Contains(t, env.out.String(), "[D] Dewi <dewi@example.com>")
	assert.Contains(t, env.out.String(), "Position: HR Lead")

	email, err := userconfig.GetLastEmail()
	require.NoError(t, err)
	assert.Equal(t, "dewi@example.com", email)
}

func TestLogin_PaddedEmail(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")

	require.NoError(t, runLogin(context.Background(), env.opts, "  dewi@example.com ", "rahasia"))

	email, err := userconfig.GetLastEmail()
	require.NoError(t, err)
	assert.Equal(t, "dewi@example.com", email)
}

func TestLogin_DashboardFailureIsOnlyAWarning(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")
	env.navigator.err = errors.New("no browser available")

	err := runLogin(context.Background(), env.opts, "dewi@example.com", "rahasia")
	require.NoError(t, err)

	token, err := env.tokens.LoadToken(env.api.URL())
	require.NoError(t, err)
	assert.Equal(t, "token-hrd", token)
	assert.Contains(t, env.out.String(), "Warning: signed in, but failed to open the dashboard: no browser available")
	assert.Contains(t, env.out.String(), "Login successful!")
}

func TestLogin_WrongPassword(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")

	err := runLogin(context.Background(), env.opts, "dewi@example.com", "salah")

	var formErr *pages.FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, pages.MsgWrongCredentials, formErr.Message)
	assert.Contains(t, env.out.String(), pages.MsgWrongCredentials)

	_, err = env.tokens.LoadToken(env.api.URL())
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.Empty(t, env.navigator.Routes())
}

func TestLogin_InvalidEmailSendsNothing(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")

	err := runLogin(context.Background(), env.opts, "dewi@", "rahasia")

	assert.ErrorIs(t, err, pages.ErrValidation)
	assert.Empty(t, env.api.Requests())
}

func TestLogin_ServerUnreachable(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")
	env.api.server.Close()

	err := runLogin(context.Background(), env.opts, "dewi@example.com", "rahasia")

	var formErr *pages.FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, pages.MsgNoConnection, formErr.Message)
}

func TestSignup_WithPhotoAndInviteToken(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")
	photoPath := writeFile(t, env.dir, "budi.png", append(pngHeader, 1, 2, 3))

	err := runSignup(context.Background(), env.opts, signupFlags{
		form: pages.SignupForm{
			Name:             "Budi",
			Email:            "budi@example.com",
			Password:         "rahasia",
			Position:         "Manager",
			AdminInviteToken: "123456",
		},
		photoPath: photoPath,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"POST /api/auth/upload-image",
		"POST /api/auth/register",
	}, env.api.Requests())
	assert.Equal(t, []string{"/admin/dashboard"}, env.navigator.Routes())
	assert.Equal(t, env.api.URL()+"/uploads/budi.png", env.api.user.ProfileImageURL)

	token, err := env.tokens.LoadToken(env.api.URL())
	require.NoError(t, err)
	assert.Equal(t, "token-admin", token)
}

func TestSignup_RegularUser(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")

	err := runSignup(context.Background(), env.opts, signupFlags{
		form: pages.SignupForm{Name: "Sari", Email: "sari@example.com", Password: "pw", Position: "Staff"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"POST /api/auth/register"}, env.api.Requests())
	assert.Equal(t, []string{"/user/dashboard"}, env.navigator.Routes())
	assert.Contains(t, env.out.String(), "[S] Sari")
}

func TestSignup_DuplicateEmailShowsServerMessage(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")

	err := runSignup(context.Background(), env.opts, signupFlags{
		form: pages.SignupForm{Name: "Dewi", Email: "dewi@example.com", Password: "pw", Position: "HR"},
	})

	var formErr *pages.FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, "User already exists", formErr.Message)
	assert.Empty(t, env.navigator.Routes())
}

func TestSignup_OversizedPhotoSendsNothing(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")
	photoPath := writeFile(t, env.dir, "huge.png", make([]byte, photo.MaxFileSize+1))

	err := runSignup(context.Background(), env.opts, signupFlags{
		form:      pages.SignupForm{Name: "Budi", Email: "budi@example.com", Password: "pw", Position: "Staff"},
		photoPath: photoPath,
	})

	assert.ErrorIs(t, err, photo.ErrFileTooLarge)
	assert.Contains(t, env.out.String(), photo.TooLargeMessage)
	assert.Empty(t, env.api.Requests())
}

func TestSignup_MissingPositionSendsNothing(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")

	err := runSignup(context.Background(), env.opts, signupFlags{
		form: pages.SignupForm{Name: "Budi", Email: "budi@example.com", Password: "pw"},
	})

	var formErr *pages.FormError
	require.True(t, errors.As(err, &formErr))
	assert.Equal(t, pages.MsgEmptyPosition, formErr.Message)
	assert.Empty(t, env.api.Requests())
}

func TestLogout_ClearsEveryToken(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")
	env.signedIn(t)
	require.NoError(t, env.tokens.SaveToken("https://other.example.com", "other"))

	require.NoError(t, runLogout(env.opts))

	assert.Empty(t, env.tokens.tokens)
	assert.Equal(t, []string{"/login"}, env.navigator.Routes())
	assert.Contains(t, env.out.String(), "Logged out")
}

func TestWhoami_FetchesProfile(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")
	env.signedIn(t)

	require.NoError(t, runWhoami(context.Background(), env.opts))

	assert.Equal(t, []string{"GET /api/auth/profile"}, env.api.Requests())
	assert.Contains(t, env.out.String(), "Signed in to test")
	assert.Contains(t, env.out.String(), "Role: hrd")
}

func TestWhoami_NotSignedIn(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")

	err := runWhoami(context.Background(), env.opts)

	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.Empty(t, env.api.Requests())
}

func TestWhoami_RejectedTokenEndsSession(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")
	require.NoError(t, env.tokens.SaveToken(env.api.URL(), "expired"))

	err := runWhoami(context.Background(), env.opts)

	require.Error(t, err)
	_, err = env.tokens.LoadToken(env.api.URL())
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
	assert.Equal(t, []string{"/login"}, env.navigator.Routes())
}

func TestLoginCmd_ReadsEnvironment(t *testing.T) {
	env := setupTestEnvironment(t, dewi, "rahasia")
	t.Setenv("HRDESK_EMAIL", "dewi@example.com")
	t.Setenv("HRDESK_PASSWORD", "rahasia")

	cmd := NewLoginCmd(env.opts)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"/hrd/dashboard"}, env.navigator.Routes())
}
