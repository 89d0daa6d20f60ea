package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"drishti/internal/utils"
	"drishti/pkg/types"
)

// Storage persists uploaded files under a key and serves them back by URL.
type Storage interface {
	Save(ctx context.Context, key string, contents io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Extension allow-lists, lowercased. Registration proof additionally
// accepts PDF; profile and report photos are images only.
var (
	imageContentTypes = map[string]string{
		".jpeg": "image/jpeg",
		".jpg":  "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
	}
	documentContentTypes = map[string]string{
		".jpeg": "image/jpeg",
		".jpg":  "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".pdf":  "application/pdf",
	}
)

// ValidateImageUpload checks a file's declared size and extension against
// the image allow-list before anything touches storage. It returns the
// normalized extension and content type.
func ValidateImageUpload(filename string, size, maxBytes int64) (string, string, error) {
	return validateUpload(filename, size, maxBytes, imageContentTypes)
}

// ValidateDocumentUpload is ValidateImageUpload with PDF also permitted,
// for registration proof documents.
func ValidateDocumentUpload(filename string, size, maxBytes int64) (string, string, error) {
	return validateUpload(filename, size, maxBytes, documentContentTypes)
}

func validateUpload(filename string, size, maxBytes int64, allowed map[string]string) (string, string, error) {
	if size > maxBytes {
		return "", "", fmt.Errorf("%w: %d bytes exceeds limit of %d", types.ErrFileTooLarge, size, maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowed[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", types.ErrUnsupportedFileType, ext)
	}

	return ext, contentType, nil
}

// ProfilePhotoKey builds the deterministic storage key for a user's profile
// photo. The timestamp keeps successive uploads from colliding and makes
// the previous photo identifiable for cleanup.
func ProfilePhotoKey(userID, ext string) string {
	return fmt.Sprintf("profile/%s-%d%s", userID, time.Now().Unix(), ext)
}

// DocumentKey builds the storage key for a registration proof document.
func DocumentKey(ext string) string {
	return fmt.Sprintf("documents/%s%s", utils.NanoID(), ext)
}

// ReportPhotoKey builds the storage key for a missing report photo. Report
// photos live under reports/ so the face recognition service can index them.
func ReportPhotoKey(reportID, ext string) string {
	return fmt.Sprintf("reports/%s%s", reportID, ext)
}
