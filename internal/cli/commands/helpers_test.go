package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrdesk-dev/hrdesk/internal/cli/auth"
	"github.com/hrdesk-dev/hrdesk/internal/cli/config"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// mockTokenStore is a simple in-memory token store for testing
type mockTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{tokens: make(map[string]string)}
}

func (m *mockTokenStore) SaveToken(server, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[server] = token
	return nil
}

func (m *mockTokenStore) LoadToken(server string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[server]
	if !ok {
		return "", auth.ErrNotAuthenticated
	}
	return token, nil
}

func (m *mockTokenStore) DeleteToken(server string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, server)
	return nil
}

func (m *mockTokenStore) clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = make(map[string]string)
	return nil
}

type recordingNavigator struct {
	mu     sync.Mutex
	routes []string
	err    error
}

func (r *recordingNavigator) Navigate(route string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
	return r.err
}

func (r *recordingNavigator) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

// fakeUser is what the fake API knows about the account
type fakeUser struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Position        string `json:"position,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// fakeAPI emulates the HR API endpoints the CLI talks to
type fakeAPI struct {
	t        *testing.T
	server   *httptest.Server
	password string
	token    string

	mu       sync.Mutex
	user     fakeUser
	requests []string
}

func newFakeAPI(t *testing.T, user fakeUser, password string) *fakeAPI {
	t.Helper()
	api := &fakeAPI{t: t, user: user, password: password, token: "token-" + user.Role}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", api.login)
	mux.HandleFunc("POST /api/auth/register", api.register)
	mux.HandleFunc("GET /api/auth/profile", api.authorized(api.profile))
	mux.HandleFunc("PUT /api/auth/update-profile-photo", api.authorized(api.updatePhoto))
	mux.HandleFunc("POST /api/auth/upload-image", api.uploadImage)

	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.mu.Lock()
		api.requests = append(api.requests, r.Method+" "+r.URL.Path)
		api.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeAPI) URL() string {
	return a.server.URL
}

func (a *fakeAPI) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (a *fakeAPI) authResponse() map[string]any {
	return map[string]any{
		"token":           a.token,
		"id":              a.user.ID,
		"name":            a.user.Name,
		"email":           a.user.Email,
		"role":            a.user.Role,
		"position":        a.user.Position,
		"profileImageUrl": a.user.ProfileImageURL,
	}
}

func (a *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	assert.NoError(a.t, json.NewDecoder(r.Body).Decode(&body))

	a.mu.Lock()
	defer a.mu.Unlock()
	if body.Email != a.user.Email || body.Password != a.password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
		return
	}
	writeJSON(w, http.StatusOK, a.authResponse())
}

func (a *fakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	assert.NoError(a.t, json.NewDecoder(r.Body).Decode(&body))

	a.mu.Lock()
	defer a.mu.Unlock()
	if body["email"] == a.user.Email {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "User already exists"})
		return
	}

	role := "user"
	if body["inviteToken"] == "123456" {
		role = "admin"
	}
	a.user = fakeUser{
		ID:              "new",
		Name:            body["name"],
		Email:           body["email"],
		Role:            role,
		Position:        body["position"],
		ProfileImageURL: body["profileImageUrl"],
	}
	a.password = body["password"]
	a.token = "token-" + role
	writeJSON(w, http.StatusCreated, a.authResponse())
}

func (a *fakeAPI) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		ok := r.Header.Get("Authorization") == "Bearer "+a.token
		a.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Not authorized, token failed"})
			return
		}
		next(w, r)
	}
}

func (a *fakeAPI) profile(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	writeJSON(w, http.StatusOK, a.user)
}

func (a *fakeAPI) readImage(r *http.Request) (string, bool) {
	file, header, err := r.FormFile("image")
	if err != nil {
		return "", false
	}
	defer file.Close()
	io.Copy(io.Discard, file)
	return header.Filename, true
}

func (a *fakeAPI) updatePhoto(w http.ResponseWriter, r *http.Request) {
	name, ok := a.readImage(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No file uploaded"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.user.ProfileImageURL = fmt.Sprintf("%s/uploads/%s", a.server.URL, name)
	writeJSON(w, http.StatusOK, a.user)
}

func (a *fakeAPI) uploadImage(w http.ResponseWriter, r *http.Request) {
	name, ok := a.readImage(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "No file uploaded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": a.server.URL + "/uploads/" + name})
}

// testEnv is a project directory pointing at a fake API
type testEnv struct {
	dir       string
	api       *fakeAPI
	tokens    *mockTokenStore
	navigator *recordingNavigator
	out       *bytes.Buffer
	opts      *Options
}

func setupTestEnvironment(t *testing.T, user fakeUser, password string) *testEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)

	dir := t.TempDir()
	t.Chdir(dir)

	api := newFakeAPI(t, user, password)
	cfg := &config.Config{Servers: []config.Server{{URL: api.URL(), Alias: "test"}}}
	require.NoError(t, config.Save(filepath.Join(dir, config.ConfigFileName), cfg))

	env := &testEnv{
		dir:       dir,
		api:       api,
		tokens:    newMockTokenStore(),
		navigator: &recordingNavigator{},
		out:       &bytes.Buffer{},
	}
	env.opts = &Options{
		Out:         env.out,
		Tokens:      env.tokens,
		ClearTokens: env.tokens.clear,
		Navigator:   env.navigator,
		Logger:      zerolog.Nop(),
	}
	return env
}

// signedIn stores the fake API's token as if an earlier run had logged in
func (e *testEnv) signedIn(t *testing.T) {
	t.Helper()
	require.NoError(t, e.tokens.SaveToken(e.api.URL(), e.api.token))
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}
