package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotPDF is returned when the uploaded bytes do not sniff as a PDF.
var ErrNotPDF = errors.New("file is not a PDF")

// StoreDocument checks that the upload is a PDF by content and saves it in dir
// as <uuid>-<basename>. It returns the stored name and its full path.
func StoreDocument(dir string, fh *multipart.FileHeader) (string, string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", "", fmt.Errorf("read upload: %w", err)
	}
	if http.DetectContentType(head[:n]) != "application/pdf" {
		return "", "", ErrNotPDF
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + "-" + safeBase(fh.Filename)
	path := filepath.Join(dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", "", fmt.Errorf("create document: %w", err)
	}
	if _, err := io.Copy(dst, io.MultiReader(bytes.NewReader(head[:n]), src)); err != nil {
		dst.Close()
		os.Remove(path)
		return "", "", fmt.Errorf("save document: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("save document: %w", err)
	}
	return name, path, nil
}

func safeBase(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		if r == '/' || r < 0x20 {
			return -1
		}
		return r
	}, base)
	if base == "" || base == "." || base == ".." {
		return "documento.pdf"
	}
	return base
}
