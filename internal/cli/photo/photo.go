// Package photo implements the profile photo selector shared by signup and
// the side menu photo editor.
package photo

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/hrdesk-dev/hrdesk/internal/cli/notify"
)

// MaxFileSize is the largest photo accepted (5 MiB)
const MaxFileSize = 5 * 1024 * 1024

// ErrFileTooLarge is returned when a file exceeds MaxFileSize
var ErrFileTooLarge = errors.New("file size must be less than 5MB")

// TooLargeMessage is shown to the user when a file is rejected for size
const TooLargeMessage = "File size must be less than 5MB"

// File is an image held in memory
type File struct {
	Name string
	Size int64
	Data []byte
}

// Reader returns a fresh reader over the file contents
func (f *File) Reader() io.Reader {
	return bytes.NewReader(f.Data)
}

// Open reads a file from disk
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return &File{
		Name: filepath.Base(path),
		Size: int64(len(data)),
		Data: data,
	}, nil
}

// Selector holds the preview of the chosen photo. The chosen file itself is
// owned by the caller and handed over through SetImage.
type Selector struct {
	// SetImage receives the selected file, or nil when the selection is removed
	SetImage func(*File)
	// OnSelected, when set, runs right after a file is accepted. Its error is
	// returned from Select.
	OnSelected func(ctx context.Context, f *File) error
	Notifier   notify.Notifier

	mu      sync.Mutex
	preview string
	input   string
}

// Select validates and previews a file, hands it to SetImage and awaits OnSelected.
// Files over MaxFileSize are rejected without changing any state.
func (s *Selector) Select(ctx context.Context, f *File) error {
	if f == nil {
		return nil
	}

	if f.Size > MaxFileSize {
		s.notifier().Error(TooLargeMessage)
		return ErrFileTooLarge
	}

	preview := DataURL(f.Data)

	s.mu.Lock()
	s.preview = preview
	s.input = f.Name
	s.mu.Unlock()

	if s.SetImage != nil {
		s.SetImage(f)
	}

	if s.OnSelected != nil {
		return s.OnSelected(ctx, f)
	}
	return nil
}

// SelectPath opens the file at path and selects it
func (s *Selector) SelectPath(ctx context.Context, path string) error {
	f, err := Open(path)
	if err != nil {
		return err
	}
	return s.Select(ctx, f)
}

// Remove clears the selection and the preview and resets the picker so the
// same file can be picked again.
func (s *Selector) Remove() {
	if s.SetImage != nil {
		s.SetImage(nil)
	}

	s.mu.Lock()
	s.preview = ""
	s.input = ""
	s.mu.Unlock()
}

// Preview returns the data URL of the selected file, or ""
func (s *Selector) Preview() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Input returns the name currently held by the picker, or ""
func (s *Selector) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

func (s *Selector) notifier() notify.Notifier {
	if s.Notifier == nil {
		return notify.Discard{}
	}
	return s.Notifier
}

// DataURL encodes data as a data URL with its sniffed MIME type
func DataURL(data []byte) string {
	mime := mimetype.Detect(data)
	return fmt.Sprintf("data:%s;base64,%s", mime.String(), base64.StdEncoding.EncodeToString(data))
}

// IsImage reports whether data sniffs as an image
func IsImage(data []byte) bool {
	return strings.HasPrefix(mimetype.Detect(data).String(), "image/")
}
