package utils

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"urbanreport/pkg/constants"
	apperrors "urbanreport/pkg/errors"
)

// ValidateUploadFiles enforces the per-action upload limits. Limits are
// checked server-side regardless of what the client already validated.
func ValidateUploadFiles(files []*multipart.FileHeader, maxFiles int, maxFileSize int64) error {
	if len(files) > maxFiles {
		return apperrors.NewBadRequestError(
			fmt.Sprintf("Máximo %d archivos permitidos.", maxFiles), apperrors.ErrBadRequest)
	}
	for _, f := range files {
		if f.Size > maxFileSize {
			return apperrors.NewBadRequestError(
				fmt.Sprintf("Cada archivo debe pesar menos de %dMB.", maxFileSize>>20), apperrors.ErrBadRequest)
		}
	}
	return nil
}

// ClassifyFileType maps a MIME type to the stored file_type. Anything that is
// not an image or a video counts as a document.
func ClassifyFileType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return constants.FileTypeImage
	case strings.HasPrefix(contentType, "video/"):
		return constants.FileTypeVideo
	default:
		return constants.FileTypeDocument
	}
}

// FileContentType returns the Content-Type declared for the part, sniffing
// the filename extension when the header is missing.
func FileContentType(f *multipart.FileHeader) string {
	if ct := f.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	file, err := f.Open()
	if err != nil {
		return "application/octet-stream"
	}
	defer file.Close()

	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	return http.DetectContentType(buf[:n])
}
