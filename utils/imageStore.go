package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"spotsure/config"

	"github.com/google/uuid"
)

// SaveUploadedImage stores an uploaded blob under the upload directory and
// returns its opaque id. Callers treat the id as provider-specific; it never
// leaks the on-disk layout.
func SaveUploadedImage(file *multipart.FileHeader) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := config.AppConfig.UploadDir
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	imageID := uuid.New().String() + filepath.Ext(file.Filename)
	filePath := filepath.Join(destDir, imageID)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return imageID, nil
}

// ImagePath resolves an opaque image id to its stored location.
// filepath.Base strips any traversal components from a caller-supplied id.
func ImagePath(imageID string) string {
	return filepath.Join(config.AppConfig.UploadDir, filepath.Base(imageID))
}
