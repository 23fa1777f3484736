package server

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/hrdesk-dev/hrdesk/internal/auth"
	"github.com/hrdesk-dev/hrdesk/internal/models"
)

const sessionKey = "session"

var (
	errNoBearer    = errors.New("authorization header is not a bearer token")
	errRoleDenied  = errors.New("role not allowed")
	errNoSession   = errors.New("no session on request")
	errUnknownUser = errors.New("token user no longer exists")
)

// GetSessionData returns the session JWTAuthMiddleware stored on the request
func GetSessionData(c *gin.Context) (*auth.SessionData, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sessionData, ok := value.(*auth.SessionData)
	return sessionData, ok
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header
func bearerToken(header string) (string, error) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errNoBearer
	}
	return strings.TrimSpace(token), nil
}

// respondWithMessage writes the {"message": ...} body clients display
func respondWithMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"message": message})
}

func abortWithMessage(c *gin.Context, log zerolog.Logger, statusCode int, err error, message string) {
	log.Warn().Err(err).Str("path", c.Request.URL.Path).Int("status", statusCode).Msg(message)
	respondWithMessage(c, statusCode, message)
	c.Abort()
}

// JWTAuthMiddleware verifies the bearer token and stores the session.
// The role comes from the user row, so role changes apply to tokens
// issued before them.
func JWTAuthMiddleware(tokens *auth.Issuer, db *gorm.DB, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortWithMessage(c, log, http.StatusUnauthorized, err, "Not authorized, no token")
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			abortWithMessage(c, log, http.StatusUnauthorized, err, "Not authorized, token failed")
			return
		}

		var user models.User
		if err := models.FindByID(db, claims.UserID, &user); err != nil {
			abortWithMessage(c, log, http.StatusUnauthorized, errUnknownUser, "User not found")
			return
		}

		c.Set(sessionKey, &auth.SessionData{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		})
		c.Next()
	}
}

// RoleMiddleware lets through sessions holding one of roles
func RoleMiddleware(log zerolog.Logger, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionData, ok := GetSessionData(c)
		if !ok {
			abortWithMessage(c, log, http.StatusUnauthorized, errNoSession, "Unauthorized")
			return
		}
		if !slices.Contains(roles, sessionData.Role) {
			abortWithMessage(c, log, http.StatusForbidden, errRoleDenied, "Access denied")
			return
		}
		c.Next()
	}
}
