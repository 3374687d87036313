package validation

import (
	"bytes"
	"io"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MakMD/floor-boss-work-sub000/pkg/config"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func testRules() config.UploadConfig {
	return config.UploadConfig{
		AllowedMimeTypes: []string{"image/jpeg", "image/png"},
		MaxSizeMB:        1,
	}
}

func TestValidateFile_AcceptsAllowedType(t *testing.T) {
	content := append(append([]byte{}, pngHeader...), make([]byte, 64)...)
	header := &multipart.FileHeader{Filename: "photo.png", Size: int64(len(content))}
	reader := bytes.NewReader(content)

	require.NoError(t, ValidateFile(header, reader, testRules()))

	// The reader must be rewound so the caller can still save the file.
	pos, err := reader.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Zero(t, pos)
}

func TestValidateFile_RejectsDisallowedType(t *testing.T) {
	content := []byte("plain text masquerading as an image")
	header := &multipart.FileHeader{Filename: "photo.png", Size: int64(len(content))}

	err := ValidateFile(header, bytes.NewReader(content), testRules())

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestValidateFile_RejectsOversizedFile(t *testing.T) {
	header := &multipart.FileHeader{Filename: "big.png", Size: 2 * 1024 * 1024}

	err := ValidateFile(header, bytes.NewReader(pngHeader), testRules())

	var invalid *apperrors.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestValidateFile_NoSizeLimitWhenUnset(t *testing.T) {
	rules := testRules()
	rules.MaxSizeMB = 0
	header := &multipart.FileHeader{Filename: "big.png", Size: 100 * 1024 * 1024}

	content := append(append([]byte{}, pngHeader...), make([]byte, 64)...)
	require.NoError(t, ValidateFile(header, bytes.NewReader(content), rules))
}
