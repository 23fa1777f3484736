package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hrdesk-dev/hrdesk/internal/cli/menu"
	"github.com/hrdesk-dev/hrdesk/internal/cli/nav"
)

// DefaultTimeout bounds every request made through the client
const DefaultTimeout = 10 * time.Second

// API paths
const (
	LoginPath              = "/api/auth/login"
	RegisterPath           = "/api/auth/register"
	ProfilePath            = "/api/auth/profile"
	UpdateProfilePhotoPath = "/api/auth/update-profile-photo"
	UploadImagePath        = "/api/auth/upload-image"
)

// ImageField is the multipart field carrying uploaded images
const ImageField = "image"

var (
	// ErrTimeout is returned when no response arrived within the client timeout
	ErrTimeout = errors.New("request timeout")
	// ErrNoResponse is returned when the request was sent but nothing came back
	ErrNoResponse = errors.New("no response from server")
	// ErrUnauthorized matches any APIError with status 401
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the API
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the server supplied message, if the body carried one
	Message string
	Body    string
	// SessionCleared is set when the response ended the local session
	SessionCleared bool
}

func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	return fmt.Sprintf("%s %s failed (status %d): %s", e.Method, e.Path, e.StatusCode, detail)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Session is the part of the session store the client needs
type Session interface {
	Token() string
	Logout() error
}

// Client represents an HTTP client for the HR API
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    Session
	navigator  nav.Navigator
	logger     zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithSession attaches the session whose token is sent with every request
// and which is cleared when the API rejects it.
func WithSession(s Session) Option {
	return func(c *Client) {
		c.session = s
	}
}

// WithNavigator sets where the user is sent when the session is rejected
func WithNavigator(n nav.Navigator) Option {
	return func(c *Client) {
		c.navigator = n
	}
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a new API client
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: cleanhttp.DefaultPooledTransport(),
		},
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// newRequest builds a request with the default headers and, when a token is
// held, the bearer credential. The token is read at send time.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType == "" {
		contentType = "application/json"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", ulid.Make().String())

	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	return req, nil
}

// do sends the request and turns transport failures and non-2xx responses
// into errors. The caller owns the returned response body.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(req, err)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("HTTP request")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	apiErr := &APIError{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: resp.StatusCode,
		Message:    serverMessage(body),
		Body:       strings.TrimSpace(string(body)),
	}
	c.handleErrorResponse(apiErr)
	return nil, apiErr
}

func (c *Client) handleErrorResponse(apiErr *APIError) {
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized:
		// A rejected login attempt must not end an unrelated session
		if isLoginRequest(apiErr.Path) || c.session == nil || c.session.Token() == "" {
			return
		}

		c.logger.Warn().Str("path", apiErr.Path).Msg("Session rejected by server, logging out")
		if err := c.session.Logout(); err != nil {
			c.logger.Error().Err(err).Msg("Failed to clear session")
		}
		apiErr.SessionCleared = true

		if c.navigator != nil {
			if err := c.navigator.Navigate(menu.LoginRoute); err != nil {
				c.logger.Error().Err(err).Msg("Failed to navigate to login")
			}
		}
	case apiErr.StatusCode == http.StatusInternalServerError:
		c.logger.Error().Str("path", apiErr.Path).Msg("Server error. Please try again.")
	}
}

func (c *Client) transportError(req *http.Request, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.logger.Error().Str("path", req.URL.Path).Msg("Request timeout. Please try again.")
		return fmt.Errorf("%w: %s %s: %w", ErrTimeout, req.Method, req.URL.Path, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request canceled: %w", err)
	}
	return fmt.Errorf("%w: %s %s: %w", ErrNoResponse, req.Method, req.URL.Path, err)
}

// isLoginRequest matches "/login" as well as "/api/auth/login"
func isLoginRequest(path string) bool {
	return strings.Contains(path, "/login")
}

// serverMessage extracts {"message": ...} or {"error": ...} from an error body
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// doJSON sends in as a JSON body (if non-nil) and decodes the response into out (if non-nil)
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := c.newRequest(ctx, method, path, body, "")
	if err != nil {
		return err
	}

	return c.send(req, out)
}

// doMultipart sends a single file under ImageField
func (c *Client) doMultipart(ctx context.Context, method, path, filename string, file io.Reader, out any) error {
	buffer := bytes.NewBuffer(nil)
	writer := multipart.NewWriter(buffer)

	part, err := writer.CreateFormFile(ImageField, filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy image to form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, buffer, writer.FormDataContentType())
	if err != nil {
		return err
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
