package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hrdesk-dev/hrdesk/internal/cli/auth"
	"github.com/hrdesk-dev/hrdesk/internal/cli/client"
	"github.com/hrdesk-dev/hrdesk/internal/cli/config"
	"github.com/hrdesk-dev/hrdesk/internal/cli/nav"
	"github.com/hrdesk-dev/hrdesk/internal/cli/notify"
	"github.com/hrdesk-dev/hrdesk/internal/cli/pages"
	"github.com/hrdesk-dev/hrdesk/internal/cli/serverselect"
	"github.com/hrdesk-dev/hrdesk/internal/cli/session"
	"github.com/hrdesk-dev/hrdesk/internal/cli/sidemenu"
)

// Options is shared by every command. The root command binds the global
// flags to it; tests replace the pieces that touch the outside world.
type Options struct {
	// ServerAlias selects a server from hrdesk.json, bypassing the saved selection
	ServerAlias string
	// Browser opens routes in the web app instead of printing them
	Browser bool
	// Timeout overrides the API client timeout when non-zero
	Timeout time.Duration

	Out    io.Writer
	Tokens auth.TokenStore
	// ClearTokens wipes every persisted credential on logout
	ClearTokens func() error
	// Navigator overrides the navigator chosen from Browser
	Navigator nav.Navigator
	Logger    zerolog.Logger
}

// DefaultOptions returns options backed by the terminal and the OS keyring
func DefaultOptions(logger zerolog.Logger) *Options {
	return &Options{
		Out:         os.Stdout,
		Tokens:      auth.Default,
		ClearTokens: auth.ClearAllTokens,
		Logger:      logger,
	}
}

func (o *Options) out() io.Writer {
	if o.Out == nil {
		return os.Stdout
	}
	return o.Out
}

// syncWriter serializes writes from the spinner goroutine and the command
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// runtime is everything a command needs to talk to the selected server
type runtime struct {
	server    *config.Server
	session   *session.Store
	api       *client.Client
	navigator nav.Navigator
	notifier  *notify.Console
	out       io.Writer
	logger    zerolog.Logger
}

// getSelectedServer loads the config and returns the selected server.
func (o *Options) getSelectedServer() (*config.Server, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w\nRun 'hrdesk init' to create a configuration file", err)
	}

	server, err := serverselect.ResolveServer(cfg, o.ServerAlias)
	if err != nil {
		return nil, err
	}

	if server.URL == "" {
		return nil, fmt.Errorf("server URL is empty. Please edit %s and add a valid URL", config.ConfigFileName)
	}

	return server, nil
}

// connect resolves the server and restores its persisted session
func (o *Options) connect() (*runtime, error) {
	server, err := o.getSelectedServer()
	if err != nil {
		return nil, err
	}

	out := &syncWriter{w: o.out()}
	store := session.New(server.URL, o.Tokens)
	if err := store.Restore(); err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	navigator := o.Navigator
	if navigator == nil {
		if o.Browser {
			navigator = nav.NewBrowser(server.AppURL(), out)
		} else {
			navigator = &nav.Printer{Out: out}
		}
	}

	clientOpts := []client.Option{
		client.WithSession(store),
		client.WithNavigator(navigator),
		client.WithLogger(o.Logger),
	}
	if o.Timeout > 0 {
		clientOpts = append(clientOpts, client.WithTimeout(o.Timeout))
	}

	return &runtime{
		server:    server,
		session:   store,
		api:       client.New(server.URL, clientOpts...),
		navigator: navigator,
		notifier:  notify.NewConsole(out),
		out:       out,
		logger:    o.Logger,
	}, nil
}

// requireUser makes sure a token is held and the user record is loaded.
// Only the token survives between runs, so the profile is fetched on demand.
func (rt *runtime) requireUser(ctx context.Context) (*session.User, error) {
	if !rt.session.Authenticated() {
		return nil, auth.ErrNotAuthenticated
	}
	if user := rt.session.User(); user != nil {
		return user, nil
	}

	gen := rt.session.Generation()
	user, err := rt.api.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if err := rt.session.UpdateIf(gen, user); err != nil {
		return nil, err
	}
	return rt.session.User(), nil
}

// sideMenu builds the signed-in user's side menu
func (o *Options) sideMenu(rt *runtime) *sidemenu.SideMenu {
	opts := []sidemenu.Option{sidemenu.WithLogger(rt.logger)}
	if o.ClearTokens != nil {
		opts = append(opts, sidemenu.WithCredentialCleaner(o.ClearTokens))
	}
	return sidemenu.New(rt.session, rt.api, rt.navigator, rt.notifier, opts...)
}

// printUser writes the avatar, name, role and position of the user
func printUser(out io.Writer, user *session.User, avatarURL, initial string) {
	avatar := avatarURL
	if avatar == "" {
		avatar = fmt.Sprintf("[%s]", initial)
	}

	fmt.Fprintf(out, "  %s %s <%s>\n", avatar, user.Name, user.Email)
	fmt.Fprintf(out, "  Role: %s\n", user.MenuRole())
	if user.Position != "" {
		fmt.Fprintf(out, "  Position: %s\n", user.Position)
	}
}

// finishSubmit stops the spinner for a login or signup submission. A failed
// dashboard redirect is only a warning because the session has started.
func finishSubmit(rt *runtime, err error) error {
	switch {
	case err == nil:
		rt.notifier.FinishSpinner()
		return nil
	case errors.Is(err, pages.ErrNavigation):
		rt.notifier.FinishSpinner()
		rt.logger.Warn().Err(err).Msg("Failed to open dashboard")
		fmt.Fprintf(rt.out, "Warning: %v\n", err)
		return nil
	default:
		rt.notifier.FinishSpinnerWithError()
		rt.notifier.Error(err.Error())
		return err
	}
}
