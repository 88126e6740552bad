package domain

import (
	"context"
	"io"
)

// FileUpload is one incoming file of a multipart request.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// FileStorage stores uploaded training files under generated names.
type FileStorage interface {
	// Save writes the content and returns the stored file name.
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	// Resolve maps a stored file name to a readable path; it rejects names
	// that escape the storage root.
	Resolve(name string) (string, error)
	Delete(name string) error
}
