package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Allowed upload extensions per kind of file.
var (
	DocumentExtensions = map[string]bool{".pdf": true, ".docx": true, ".doc": true}
	ImageExtensions    = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}
)

// UploadPath returns the configured upload directory.
func UploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

// SaveUploadedFile validates the extension against allowed and writes the
// file under the upload directory renamed to a random token, so original
// names can never collide or traverse paths. Returns the stored filename.
// Validation failures surface before any database row references the name.
func SaveUploadedFile(c *gin.Context, file *multipart.FileHeader, allowed map[string]bool) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		return "", fmt.Errorf("file type %s is not allowed", ext)
	}

	token := uuid.New().String() + ext
	dst := filepath.Join(UploadPath(), token)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	return token, nil
}
