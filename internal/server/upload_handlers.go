package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"

	"github.com/hrdesk-dev/hrdesk/internal/models"
)

// MaxImageSize is the largest image accepted
const MaxImageSize = 5 * 1024 * 1024

// imageField is the multipart field carrying the image
const imageField = "image"

// UploadResponse is returned by the upload endpoint
type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// @Summary Upload image
// @Description Store an image and return its public URL. Used before signup.
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image (max 5MB)"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/auth/upload-image [post]
func (s *Server) uploadImage(c *gin.Context) {
	upload, ok := s.storeImage(c, nil)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, UploadResponse{ImageURL: s.publicURL(upload.FileName)})
}

// storeImage validates the uploaded image, writes it under the uploads
// directory and records it. On failure the response is already written.
func (s *Server) storeImage(c *gin.Context, userID *string) (*models.Upload, bool) {
	header, err := c.FormFile(imageField)
	if err != nil {
		respondWithMessage(c, http.StatusBadRequest, "No file uploaded")
		return nil, false
	}

	if header.Size > MaxImageSize {
		respondWithMessage(c, http.StatusBadRequest, "File size must be less than 5MB")
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to open uploaded file")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to read file")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read uploaded file")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to read file")
		return nil, false
	}
	if len(data) > MaxImageSize {
		respondWithMessage(c, http.StatusBadRequest, "File size must be less than 5MB")
		return nil, false
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		respondWithMessage(c, http.StatusBadRequest, "Only image files are allowed")
		return nil, false
	}

	fileName := strings.ToLower(ulid.Make().String()) + mime.Extension()
	if err := os.WriteFile(filepath.Join(s.config.Uploads.Dir, fileName), data, 0644); err != nil {
		s.logger.Error().Err(err).Msg("Failed to store uploaded file")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to store file")
		return nil, false
	}

	upload := &models.Upload{
		FileName:     fileName,
		OriginalName: filepath.Base(header.Filename),
		ContentType:  mime.String(),
		Size:         int64(len(data)),
		UserID:       userID,
	}
	if err := s.db.Create(upload).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to record upload")
		respondWithMessage(c, http.StatusInternalServerError, "Failed to store file")
		return nil, false
	}

	s.logger.Info().
		Str("file", fileName).
		Str("content_type", upload.ContentType).
		Int64("size", upload.Size).
		Msg("Image uploaded")

	return upload, true
}

func (s *Server) publicURL(fileName string) string {
	return fmt.Sprintf("%s/uploads/%s", strings.TrimRight(s.config.Uploads.PublicURL, "/"), fileName)
}
