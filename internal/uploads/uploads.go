// Package uploads stores asset photos on local disk. Files are named by
// their upload timestamp in milliseconds plus the original extension, the
// same scheme the stored photoFilename values follow.
package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

type Storage struct {
	dir string
	now func() time.Time
}

func New(dir string) *Storage {
	return &Storage{dir: dir, now: time.Now}
}

// SavePhoto writes the uploaded file under the storage directory and returns
// the stored filename to keep on the asset record.
func (s *Storage) SavePhoto(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	name := fmt.Sprintf("%d%s", s.now().UnixMilli(), filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("save uploaded file: %w", err)
	}
	return name, nil
}
