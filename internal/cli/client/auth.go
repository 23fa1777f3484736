package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hrdesk-dev/hrdesk/internal/cli/session"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ProfileImageURL  string `json:"profileImageUrl"`
	Position         string `json:"position"`
	AdminInviteToken string `json:"inviteToken"`
}

// AuthResponse is returned by login and registration: the token next to the
// user's fields.
type AuthResponse struct {
	session.User
	Token string `json:"token"`
}

// UploadResult is returned by the image upload endpoint
type UploadResult struct {
	ImageURL string `json:"imageUrl"`
}

// Login authenticates the user and returns a bearer token
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	reqBody := LoginRequest{
		Email:    email,
		Password: password,
	}

	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, LoginPath, reqBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account and returns a bearer token for it
func (c *Client) Register(ctx context.Context, reqBody RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, RegisterPath, reqBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile returns the user the current token belongs to
func (c *Client) Profile(ctx context.Context) (*session.User, error) {
	var user session.User
	if err := c.doJSON(ctx, http.MethodGet, ProfilePath, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfilePhoto uploads a new profile photo for the current user and
// returns the updated user.
func (c *Client) UpdateProfilePhoto(ctx context.Context, filename string, image io.Reader) (*session.User, error) {
	var user session.User
	if err := c.doMultipart(ctx, http.MethodPut, UpdateProfilePhotoPath, filename, image, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UploadImage uploads an image once and returns where it is hosted.
// Failures are logged and returned; there is no retry.
func (c *Client) UploadImage(ctx context.Context, filename string, image io.Reader) (*UploadResult, error) {
	var result UploadResult
	if err := c.doMultipart(ctx, http.MethodPost, UploadImagePath, filename, image, &result); err != nil {
		c.logger.Error().Err(err).Str("file", filename).Msg("Error uploading image")
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return &result, nil
}
