package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/neomorfeo/offerforge/internal/domain"
)

// MaxFileSize caps uploads at 5 MiB.
const MaxFileSize = 5 * 1024 * 1024

// allowedTypes is the image MIME allow-list. GIF is accepted for
// animated previews.
var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

// Compile-time check: Ingestor implements domain.ImageIngestor.
var _ domain.ImageIngestor = (*Ingestor)(nil)

// Ingestor validates uploaded images and encodes them as data URIs.
// The MIME type is sniffed from the content, not trusted from the
// filename or headers.
type Ingestor struct{}

// New creates an image ingestor.
func New() *Ingestor {
	return &Ingestor{}
}

// Ingest validates the upload and returns its data URI. All failures
// are *domain.MediaError values with user-facing messages.
func (i *Ingestor) Ingest(_ context.Context, upload domain.ImageUpload) (string, error) {
	if len(upload.Data) == 0 {
		return "", &domain.MediaError{Message: "Failed to read file. Please try again."}
	}

	contentType := http.DetectContentType(upload.Data)
	if !allowedTypes[contentType] {
		return "", &domain.MediaError{
			Message: "Invalid file type. Please upload PNG, JPG, WEBP, or GIF images.",
		}
	}

	if len(upload.Data) > MaxFileSize {
		return "", &domain.MediaError{Message: "File size exceeds 5MB. Please upload a smaller image."}
	}

	encoded := base64.StdEncoding.EncodeToString(upload.Data)
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
}
