package httputil

import (
	"fmt"
	"io"
	"mime/multipart"
)

// FileUpload is a file received from, or forwarded to, a multipart form.
type FileUpload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ReadFileUpload loads a multipart file header into memory.
func ReadFileUpload(header *multipart.FileHeader) (FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return FileUpload{}, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return FileUpload{}, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	return FileUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
