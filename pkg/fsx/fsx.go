// Package fsx abstracts blob storage for uploaded documents (CVs, bursary
// paperwork, advert PDFs).
package fsx

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/talentgate/portal/pkg/errx"
)

// FileSystem is the storage port used by the services.
type FileSystem interface {
	WriteFile(ctx context.Context, filePath string, data []byte) error
	ReadFileStream(ctx context.Context, filePath string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, filePath string) error
	Exists(ctx context.Context, filePath string) (bool, error)
	Join(elem ...string) string
}

// MaxUploadSize is the cap for any single uploaded document.
const MaxUploadSize = 10 * 1024 * 1024

// Allowed extension sets per document kind.
var (
	CVExtensions     = []string{".pdf", ".docx"}
	AdvertExtensions = []string{".pdf"}
)

var errRegistry = errx.NewRegistry("UPLOAD")

var (
	codeFileTooLarge    = errRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size exceeds maximum allowed")
	codeInvalidFileType = errRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid file type")
	codeEmptyFile       = errRegistry.Register("EMPTY_FILE", errx.TypeValidation, http.StatusBadRequest, "File is empty")
)

// ValidateUpload checks a candidate upload against an extension whitelist and
// the size cap. Errors are field-scoped validation errors.
func ValidateUpload(field, fileName string, size int64, allowedExts []string, maxSize int64) error {
	if size <= 0 {
		return errRegistry.New(codeEmptyFile).WithDetail("field", field)
	}
	if size > maxSize {
		return errRegistry.New(codeFileTooLarge).
			WithDetail("field", field).
			WithDetail("file_size", size).
			WithDetail("max_size", maxSize)
	}

	ext := strings.ToLower(path.Ext(fileName))
	for _, allowed := range allowedExts {
		if ext == allowed {
			return nil
		}
	}
	return errRegistry.New(codeInvalidFileType).
		WithDetail("field", field).
		WithDetail("extension", ext).
		WithDetail("allowed", strings.Join(allowedExts, ", "))
}
