// Package sidemenu implements the authenticated navigation menu: the role
// based entry list, logout, the avatar and the inline profile photo editor.
package sidemenu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hrdesk-dev/hrdesk/internal/cli/client"
	"github.com/hrdesk-dev/hrdesk/internal/cli/menu"
	"github.com/hrdesk-dev/hrdesk/internal/cli/nav"
	"github.com/hrdesk-dev/hrdesk/internal/cli/notify"
	"github.com/hrdesk-dev/hrdesk/internal/cli/photo"
	"github.com/hrdesk-dev/hrdesk/internal/cli/session"
)

const (
	PhotoUpdatedMessage = "Profile picture updated successfully"
	PhotoFailedMessage  = "Failed to update profile picture"
)

// PhotoUpdater is the API call behind the photo editor
type PhotoUpdater interface {
	UpdateProfilePhoto(ctx context.Context, filename string, image io.Reader) (*session.User, error)
}

// Logout clears locally persisted credentials
type Logout func() error

// SideMenu is the navigation menu of an authenticated user
type SideMenu struct {
	session   *session.Store
	api       PhotoUpdater
	navigator nav.Navigator
	notifier  notify.Notifier
	logger    zerolog.Logger
	// clearCredentials runs on logout in addition to clearing the session
	clearCredentials Logout

	mu         sync.Mutex
	role       menu.Role
	entries    []menu.Entry
	editorOpen bool
	pending    *photo.File
	selector   *photo.Selector
}

// Option configures a SideMenu
type Option func(*SideMenu)

// WithCredentialCleaner sets an extra step run on logout, such as wiping
// every token in the keyring.
func WithCredentialCleaner(fn Logout) Option {
	return func(m *SideMenu) {
		m.clearCredentials = fn
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(m *SideMenu) {
		m.logger = l
	}
}

// New creates a side menu bound to a session. A nil notifier discards
// notifications.
func New(s *session.Store, api PhotoUpdater, navigator nav.Navigator, notifier notify.Notifier, opts ...Option) *SideMenu {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	m := &SideMenu{
		session:   s,
		api:       api,
		navigator: navigator,
		notifier:  notifier,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.selector = &photo.Selector{
		SetImage:   m.setPending,
		OnSelected: m.uploadPhoto,
		Notifier:   notifier,
	}
	return m
}

// Entries returns the menu for the current user's role. The list is
// re-selected whenever the role changed since the last call.
func (m *SideMenu) Entries() []menu.Entry {
	role := m.session.Role()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil || role != m.role {
		m.role = role
		m.entries = menu.ForRole(role)
	}
	return append([]menu.Entry(nil), m.entries...)
}

// Click handles a menu entry. The logout sentinel logs out instead of navigating.
func (m *SideMenu) Click(path string) error {
	if path == menu.LogoutPath {
		return m.Logout()
	}
	return m.navigator.Navigate(path)
}

// Logout clears every persisted credential and the session, then sends the
// user to the login screen.
func (m *SideMenu) Logout() error {
	var errs []error
	if m.clearCredentials != nil {
		if err := m.clearCredentials(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.session.Logout(); err != nil {
		errs = append(errs, err)
	}
	if err := m.navigator.Navigate(menu.LoginRoute); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Avatar returns the profile image URL, or a one-letter placeholder when
// there is none.
func (m *SideMenu) Avatar() (imageURL, initial string) {
	user := m.session.User()
	if user != nil && user.ProfileImageURL != "" {
		return user.ProfileImageURL, ""
	}
	return "", user.Initial()
}

// OpenEditor shows the photo editor (clicking the avatar)
func (m *SideMenu) OpenEditor() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editorOpen = true
}

// CloseEditor hides the photo editor and drops any pending selection (cancel)
func (m *SideMenu) CloseEditor() {
	m.mu.Lock()
	m.editorOpen = false
	m.mu.Unlock()
	m.selector.Remove()
}

// EditorOpen reports whether the photo editor is shown
func (m *SideMenu) EditorOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editorOpen
}

// Pending returns the photo selected in the editor but not yet saved
func (m *SideMenu) Pending() *photo.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending
}

// Selector returns the photo selector hosted by the editor, or nil when the
// editor is closed.
func (m *SideMenu) Selector() *photo.Selector {
	if !m.EditorOpen() {
		return nil
	}
	return m.selector
}

// ChangePhoto opens the editor and selects f, which uploads it right away
func (m *SideMenu) ChangePhoto(ctx context.Context, f *photo.File) error {
	m.OpenEditor()
	return m.selector.Select(ctx, f)
}

func (m *SideMenu) setPending(f *photo.File) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = f
}

// uploadPhoto is the selector callback: save the photo, then refresh the
// session user. The editor stays open on failure.
func (m *SideMenu) uploadPhoto(ctx context.Context, f *photo.File) error {
	gen := m.session.Generation()

	user, err := m.api.UpdateProfilePhoto(ctx, f.Name, f.Reader())
	if err != nil {
		m.logger.Error().Err(err).Msg("Profile photo update error")
		m.notifier.Error(photoErrorMessage(err))
		return err
	}

	// Do not resurrect a session that ended while the upload was running
	if err := m.session.UpdateIf(gen, user); err != nil {
		m.logger.Warn().Err(err).Msg("Discarding profile photo update")
		return fmt.Errorf("profile photo saved but not applied: %w", err)
	}

	m.notifier.Success(PhotoUpdatedMessage)
	m.mu.Lock()
	m.editorOpen = false
	m.mu.Unlock()
	m.selector.Remove()
	return nil
}

func photoErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return PhotoFailedMessage
}
