package utils

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// MaxDocumentSize bounds uploaded identity documents to 5MB.
const MaxDocumentSize = 5 << 20

// Magic numbers for the accepted document formats.
var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	pdfSignature  = []byte("%PDF-")
)

// ValidateDocument checks an uploaded identity document: size bound,
// accepted extension (png/jpg/jpeg/pdf) and matching file signature.
func ValidateDocument(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size == 0 {
		return fmt.Errorf("file is empty")
	}
	if fileHeader.Size > MaxDocumentSize {
		return fmt.Errorf("file exceeds the %dMB size limit", MaxDocumentSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".pdf":
	default:
		return fmt.Errorf("unsupported file type %q: only PNG, JPG and PDF are accepted", ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	header := make([]byte, 8)
	n, err := file.Read(header)
	if err != nil {
		return fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	switch ext {
	case ".png":
		if !bytes.HasPrefix(header, pngSignature) {
			return fmt.Errorf("file content is not a valid PNG")
		}
	case ".jpg", ".jpeg":
		if !bytes.HasPrefix(header, jpegSignature) {
			return fmt.Errorf("file content is not a valid JPG")
		}
	case ".pdf":
		if !bytes.HasPrefix(header, pdfSignature) {
			return fmt.Errorf("file content is not a valid PDF")
		}
	}

	return nil
}
