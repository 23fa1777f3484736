package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hrdesk-dev/hrdesk/internal/models"
)

// UpdateRoleRequest represents a role change
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// @Summary List users
// @Description List all users (superadmin, admin and hrd)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserDetail
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/users [get]
func (s *Server) listUsers(c *gin.Context) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		respondWithMessage(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	userDetails := make([]UserDetail, len(users))
	for i := range users {
		userDetails[i] = newUserDetail(&users[i])
	}

	c.JSON(http.StatusOK, userDetails)
}

// @Summary Change role
// @Description Change the role of a user (superadmin only, cannot change self)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} UserDetail
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/{id}/role [patch]
func (s *Server) updateUserRole(c *gin.Context) {
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	if !models.ValidRole(req.Role) {
		respondWithMessage(c, http.StatusBadRequest, "Unknown role")
		return
	}

	userID := c.Param("id")
	sessionData, _ := GetSessionData(c)
	if userID == sessionData.UserID {
		respondWithMessage(c, http.StatusBadRequest, "Cannot change your own role")
		return
	}

	user, ok := s.findUser(c, userID)
	if !ok {
		return
	}

	user.Role = req.Role
	if err := s.db.Model(user).Update("role", req.Role).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update role")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to update role")
		return
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("role", req.Role).
		Str("changed_by", sessionData.UserID).
		Msg("User role changed")

	c.JSON(http.StatusOK, newUserDetail(user))
}

// @Summary Delete user
// @Description Delete a user (superadmin only, cannot delete self)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/users/{id} [delete]
func (s *Server) deleteUser(c *gin.Context) {
	userID := c.Param("id")

	sessionData, _ := GetSessionData(c)
	if userID == sessionData.UserID {
		respondWithMessage(c, http.StatusBadRequest, "Cannot delete yourself")
		return
	}

	user, ok := s.findUser(c, userID)
	if !ok {
		return
	}

	if err := s.db.Delete(user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete user")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("deleted_by", sessionData.UserID).
		Msg("User deleted")

	c.Status(http.StatusNoContent)
}

func (s *Server) findUser(c *gin.Context, userID string) (*models.User, bool) {
	var user models.User
	if err := models.FindByID(s.db, userID, &user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondWithMessage(c, http.StatusNotFound, "User not found")
			return nil, false
		}
		s.logger.Error().Err(err).Msg("Failed to find user")
		respondWithMessage(c, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return &user, true
}
