package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"sazon/internal/service"
)

// Upload limits for menu and hero images.
const maxUploadBytes = 8 << 20 // 8 MiB

var allowedImageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

func allowedFile(name string) bool {
	return allowedImageExt[strings.ToLower(filepath.Ext(name))]
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
}

// saveUpload writes the uploaded image into dir and returns the public path
// to store on the owning record.
func saveUpload(dir string, file multipart.File, hdr *multipart.FileHeader) (string, error) {
	if !allowedFile(hdr.Filename) {
		return "", &service.ValidationError{Msg: "unsupported image type"}
	}

	name := sanitizeFilename(hdr.Filename)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/static/uploads/" + name, nil
}
