package helpers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
}

var (
	DefaultImageUploadConfig = UploadConfig{
		MaxSizeBytes: 5 * 1024 * 1024, // 5MB
		AllowedMimeTypes: []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"image/webp",
		},
	}

	DefaultDocumentUploadConfig = UploadConfig{
		MaxSizeBytes: 10 * 1024 * 1024, // 10MB
		AllowedMimeTypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"text/plain",
		},
	}
)

// ReadUploadedFile validates size and sniffed MIME type, then returns the
// file contents and its extension. The bytes go to object storage, not to
// the local filesystem.
func ReadUploadedFile(fileHeader *multipart.FileHeader, configs ...UploadConfig) ([]byte, string, error) {
	config := DefaultImageUploadConfig
	if len(configs) > 0 {
		config = configs[0]
	}

	if fileHeader.Size > config.MaxSizeBytes {
		return nil, "", fmt.Errorf("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	mimeType := http.DetectContentType(head)

	mimeTypeAllowed := false
	for _, allowedType := range config.AllowedMimeTypes {
		if mimeType == allowedType {
			mimeTypeAllowed = true
			break
		}
	}
	if !mimeTypeAllowed {
		return nil, "", fmt.Errorf("invalid file type. Allowed types: %v", config.AllowedMimeTypes)
	}

	return data, filepath.Ext(fileHeader.Filename), nil
}
