package pages

import (
	"errors"
	"net/http"

	"github.com/hrdesk-dev/hrdesk/internal/cli/client"
)

// User-facing messages
const (
	MsgInvalidEmail     = "Email tidak valid"
	MsgEmptyPassword    = "Password tidak boleh kosong"
	MsgEmptyName        = "Masukkan Nama Lengkap"
	MsgEmptyPosition    = "Jabatan tidak boleh kosong"
	MsgWrongCredentials = "Email atau password salah"
	MsgServerError      = "Terjadi kesalahan server, silakan coba lagi"
	MsgTimeout          = "Koneksi timeout, silakan coba lagi"
	MsgNoConnection     = "Tidak dapat terhubung ke server"
	MsgGeneric          = "Terjadi kesalahan, silakan coba lagi"
)

var (
	// ErrValidation marks errors detected before any request was sent
	ErrValidation = errors.New("validation failed")
	// ErrNoToken is returned when the API answered without a token
	ErrNoToken = errors.New("response did not contain a token")
	// ErrNavigation is returned when the session was started but the redirect
	// to the dashboard failed. The user is signed in.
	ErrNavigation = errors.New("signed in, but failed to open the dashboard")
)

// FormError is what a page shows under its form
type FormError struct {
	Message string
	Err     error
}

func (e *FormError) Error() string {
	return e.Message
}

func (e *FormError) Unwrap() error {
	return e.Err
}

func validationError(message string) *FormError {
	return &FormError{Message: message, Err: ErrValidation}
}

// loginErrorMessage maps a failed login to what the user sees
func loginErrorMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized:
			return MsgWrongCredentials
		case apiErr.StatusCode == http.StatusInternalServerError:
			return MsgServerError
		case apiErr.Message != "":
			return apiErr.Message
		default:
			return MsgGeneric
		}
	case errors.Is(err, client.ErrTimeout):
		return MsgTimeout
	case errors.Is(err, client.ErrNoResponse):
		return MsgNoConnection
	default:
		return MsgGeneric
	}
}

// signupErrorMessage surfaces the server message when there is one
func signupErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgGeneric
}
