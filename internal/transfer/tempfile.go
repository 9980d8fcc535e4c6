package transfer

import (
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
)

// ServeTempFile fills a temporary file in dir through write, sends it as an
// attachment called downloadName and removes it on every path.
func ServeTempFile(c *gin.Context, dir, pattern, downloadName string, write func(io.Writer) error) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	c.FileAttachment(path, downloadName)
	return nil
}
