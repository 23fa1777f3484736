package server

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hrdesk-dev/hrdesk/internal/auth"
	"github.com/hrdesk-dev/hrdesk/internal/models"
)

// SetupRequest represents the first-run setup request
type SetupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

// RegisterRequest represents a signup request
type RegisterRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required"`
	ProfileImageURL  string `json:"profileImageUrl" binding:"omitempty,url"`
	Position         string `json:"position" binding:"required"`
	AdminInviteToken string `json:"inviteToken"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDetail represents user information returned in responses
type UserDetail struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Position        string    `json:"position"`
	ProfileImageURL string    `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AuthResponse is the user record with a token, flattened into one object
type AuthResponse struct {
	UserDetail
	Token string `json:"token"`
}

func newUserDetail(user *models.User) UserDetail {
	return UserDetail{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Role:            user.Role,
		Position:        user.Position,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
	}
}

func (s *Server) authResponse(c *gin.Context, status int, user *models.User) {
	token, err := s.tokens.Issue(auth.SessionData{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(status, AuthResponse{UserDetail: newUserDetail(user), Token: token})
}

// roleForInvite grants admin only for the configured invite token
func (s *Server) roleForInvite(token string) string {
	expected := s.config.Auth.AdminInviteToken
	if expected != "" && subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1 {
		return models.RoleAdmin
	}
	return models.RoleUser
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// @Summary First-run setup
// @Description Creates the first superadmin (only works if no users exist)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SetupRequest true "Setup request"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/setup [post]
func (s *Server) setupFirstSuperAdmin(c *gin.Context) {
	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count users")
		respondWithMessage(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if count > 0 {
		respondWithMessage(c, http.StatusConflict, "Setup already completed")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        normalizeEmail(req.Email),
		PasswordHash: passwordHash,
		Role:         models.RoleSuperAdmin,
	}

	if err := s.db.Create(user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create superadmin")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("First superadmin created")

	s.authResponse(c, http.StatusOK, user)
}

// @Summary Register
// @Description Create an account. A matching admin invite token grants the admin role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Register request"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/auth/register [post]
func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	email := normalizeEmail(req.Email)

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		respondWithMessage(c, http.StatusConflict, "User already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error().Err(err).Msg("Failed to find user")
		respondWithMessage(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := &models.User{
		Name:            strings.TrimSpace(req.Name),
		Email:           email,
		PasswordHash:    passwordHash,
		Role:            s.roleForInvite(req.AdminInviteToken),
		Position:        strings.TrimSpace(req.Position),
		ProfileImageURL: req.ProfileImageURL,
	}

	if err := s.db.Create(user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create user")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Str("role", user.Role).Msg("User registered")

	s.authResponse(c, http.StatusCreated, user)
}

// @Summary Login
// @Description Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login request"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := s.db.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithMessage(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		respondWithMessage(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := auth.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		respondWithMessage(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User logged in")

	s.authResponse(c, http.StatusOK, &user)
}

// @Summary Get profile
// @Description Get the currently authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserDetail
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/profile [get]
func (s *Server) getProfile(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, newUserDetail(user))
}

// @Summary Update profile photo
// @Description Replace the profile photo with the uploaded image
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image (max 5MB)"
// @Success 200 {object} UserDetail
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/update-profile-photo [put]
func (s *Server) updateProfilePhoto(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		return
	}

	upload, ok := s.storeImage(c, &user.ID)
	if !ok {
		return
	}

	user.ProfileImageURL = s.publicURL(upload.FileName)
	if err := s.db.Model(user).Update("profile_image_url", user.ProfileImageURL).Error; err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Failed to update profile photo")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to update profile photo")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("file", upload.FileName).Msg("Profile photo updated")

	c.JSON(http.StatusOK, newUserDetail(user))
}

// currentUser loads the session's user, writing an error response when it cannot
func (s *Server) currentUser(c *gin.Context) (*models.User, bool) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		respondWithMessage(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	var user models.User
	if err := models.FindByID(s.db, sessionData.UserID, &user); err != nil {
		s.logger.Error().Err(err).Str("user_id", sessionData.UserID).Msg("Failed to find user")
		respondWithMessage(c, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return &user, true
}
