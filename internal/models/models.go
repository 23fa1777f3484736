package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Roles a user can hold. Anything else is treated as RoleUser by clients.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleHRD        = "hrd"
	RoleUser       = "user"
)

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleHRD, RoleUser:
		return true
	}
	return false
}

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// Config represents the global configuration for the single-tenant deployment
// This is a singleton model (only one row should exist)
type Config struct {
	BaseModel
	// Used when no secret is configured through the environment
	JWTSecret string `json:"-" gorm:"type:varchar(64);not null"`
}

// User is an employee account
type User struct {
	BaseModel
	Name            string    `json:"name" gorm:"not null"`
	Email           string    `json:"email" gorm:"unique;not null"`
	PasswordHash    string    `json:"-" gorm:"not null"`
	Role            string    `json:"role" gorm:"not null;default:user"`
	Position        string    `json:"position"`
	ProfileImageURL string    `json:"profileImageUrl"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Upload records an image stored under the uploads directory
type Upload struct {
	BaseModel
	FileName     string  `json:"file_name" gorm:"unique;not null"`
	OriginalName string  `json:"original_name"`
	ContentType  string  `json:"content_type" gorm:"not null"`
	Size         int64   `json:"size" gorm:"not null"`
	UserID       *string `json:"user_id" gorm:"type:varchar(26);index"` // nil for uploads made before signup
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&User{}, &Config{}, &Upload{},
	}

	return db.AutoMigrate(models...)
}

// FindByID safely finds a record by string ID
func FindByID[T any](db *gorm.DB, id string, model *T) error {
	return db.Where("id = ?", id).First(model).Error
}
