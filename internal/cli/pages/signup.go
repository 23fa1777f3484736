package pages

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hrdesk-dev/hrdesk/internal/cli/client"
	"github.com/hrdesk-dev/hrdesk/internal/cli/menu"
	"github.com/hrdesk-dev/hrdesk/internal/cli/nav"
	"github.com/hrdesk-dev/hrdesk/internal/cli/notify"
	"github.com/hrdesk-dev/hrdesk/internal/cli/photo"
	"github.com/hrdesk-dev/hrdesk/internal/cli/session"
)

// SignupAPI is the API calls behind the signup page
type SignupAPI interface {
	UploadImage(ctx context.Context, filename string, image io.Reader) (*client.UploadResult, error)
	Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error)
}

// SignupForm is what the user typed
type SignupForm struct {
	Name             string
	Email            string
	Password         string
	Position         string
	AdminInviteToken string
}

// Validate checks the required fields in order, stopping at the first problem
func (f SignupForm) Validate() error {
	if !present(f.Name) {
		return validationError(MsgEmptyName)
	}
	if !ValidEmail(f.Email) {
		return validationError(MsgInvalidEmail)
	}
	if f.Password == "" {
		return validationError(MsgEmptyPassword)
	}
	if !present(f.Position) {
		return validationError(MsgEmptyPosition)
	}
	return nil
}

// Signup is the registration page
type Signup struct {
	api       SignupAPI
	session   *session.Store
	navigator nav.Navigator
	selector  *photo.Selector

	mu    sync.Mutex
	photo *photo.File
}

// NewSignup creates the signup page
func NewSignup(api SignupAPI, s *session.Store, navigator nav.Navigator, notifier notify.Notifier) *Signup {
	p := &Signup{api: api, session: s, navigator: navigator}
	p.selector = &photo.Selector{
		SetImage: p.setPhoto,
		Notifier: notifier,
	}
	return p
}

// Selector returns the profile photo selector of the form
func (p *Signup) Selector() *photo.Selector {
	return p.selector
}

// Photo returns the selected profile photo, or nil
func (p *Signup) Photo() *photo.File {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.photo
}

func (p *Signup) setPhoto(f *photo.File) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.photo = f
}

// Submit validates the form, uploads the selected photo (if any), registers
// and navigates to the dashboard for the new account. Every failure is a
// *FormError until the session starts; a failed redirect afterwards is
// ErrNavigation. A photo uploaded before a failed registration is not removed.
func (p *Signup) Submit(ctx context.Context, form SignupForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}

	var profileImageURL string
	if f := p.Photo(); f != nil {
		result, err := p.api.UploadImage(ctx, f.Name, f.Reader())
		if err != nil {
			return "", &FormError{Message: signupErrorMessage(err), Err: err}
		}
		profileImageURL = result.ImageURL
	}

	resp, err := p.api.Register(ctx, client.RegisterRequest{
		Name:             strings.TrimSpace(form.Name),
		Email:            strings.TrimSpace(form.Email),
		Password:         form.Password,
		ProfileImageURL:  profileImageURL,
		Position:         strings.TrimSpace(form.Position),
		AdminInviteToken: strings.TrimSpace(form.AdminInviteToken),
	})
	if err != nil {
		return "", &FormError{Message: signupErrorMessage(err), Err: err}
	}

	if resp.Token == "" {
		return "", &FormError{Message: MsgGeneric, Err: ErrNoToken}
	}

	user := resp.User
	if err := p.session.Login(resp.Token, &user); err != nil {
		return "", &FormError{Message: MsgGeneric, Err: fmt.Errorf("failed to start session: %w", err)}
	}

	route := menu.SignupDashboardRoute(user.MenuRole())
	if err := p.navigator.Navigate(route); err != nil {
		return route, fmt.Errorf("%w: %w", ErrNavigation, err)
	}
	return route, nil
}
