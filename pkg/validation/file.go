package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"github.com/MakMD/floor-boss-work-sub000/pkg/config"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

// ValidateFile checks an uploaded file against the configured size limit and
// allowed MIME types. The type is sniffed from the first 512 bytes instead of
// trusting the client-supplied Content-Type header; the reader is rewound so
// the caller can still stream the full file afterwards.
func ValidateFile(fileHeader *multipart.FileHeader, file io.ReadSeeker, rules config.UploadConfig) error {
	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return apperrors.NewInvalidInputError(
				"file size (%d KB) exceeds the %d MB limit", fileHeader.Size/1024, rules.MaxSizeMB)
		}
	}

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file for type detection: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind file after type detection: %w", err)
	}

	mimeType := http.DetectContentType(buffer[:n])
	if !slices.Contains(rules.AllowedMimeTypes, mimeType) {
		return apperrors.NewInvalidInputError("file type %s is not allowed", mimeType)
	}
	return nil
}
