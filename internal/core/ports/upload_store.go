package ports

import (
	"context"
	"io"
)

// UploadStore persists user-submitted files and returns the public path they
// are served from. Implementations must sanitize the client-supplied filename
// and enforce content-type and size limits, failing with errors that unwrap
// to domain.ErrInvalidInput for rejected files.
type UploadStore interface {
	Save(ctx context.Context, kind, filename string, r io.Reader) (string, error)
}
