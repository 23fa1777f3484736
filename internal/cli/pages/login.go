// Package pages implements the login and signup flows: form validation,
// submission and the post-authentication redirect.
package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrdesk-dev/hrdesk/internal/cli/client"
	"github.com/hrdesk-dev/hrdesk/internal/cli/menu"
	"github.com/hrdesk-dev/hrdesk/internal/cli/nav"
	"github.com/hrdesk-dev/hrdesk/internal/cli/session"
)

// LoginAPI is the API call behind the login page
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (*client.AuthResponse, error)
}

// LoginForm is what the user typed
type LoginForm struct {
	Email    string
	Password string
}

// Validate checks the form, stopping at the first problem
func (f LoginForm) Validate() error {
	if !ValidEmail(f.Email) {
		return validationError(MsgInvalidEmail)
	}
	if f.Password == "" {
		return validationError(MsgEmptyPassword)
	}
	return nil
}

// Login is the login page
type Login struct {
	api       LoginAPI
	session   *session.Store
	navigator nav.Navigator
}

// NewLogin creates the login page
func NewLogin(api LoginAPI, s *session.Store, navigator nav.Navigator) *Login {
	return &Login{api: api, session: s, navigator: navigator}
}

// Submit validates the form, logs in and navigates to the dashboard of the
// returned role. Every failure before the session starts is a *FormError; a
// failed redirect afterwards is reported as ErrNavigation along with the route.
func (p *Login) Submit(ctx context.Context, form LoginForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	resp, err := p.api.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		return "", &FormError{Message: loginErrorMessage(err), Err: err}
	}

	if resp.Token == "" {
		return "", &FormError{Message: MsgGeneric, Err: ErrNoToken}
	}

	user := resp.User
	if err := p.session.Login(resp.Token, &user); err != nil {
		return "", &FormError{Message: MsgGeneric, Err: err}
	}

	route := menu.DashboardRoute(user.MenuRole())
	if err := p.navigator.Navigate(route); err != nil {
		return route, fmt.Errorf("%w: %w", ErrNavigation, err)
	}
	return route, nil
}
