// Package storage persists uploaded files on local disk, under one directory
// per upload kind, and hands back the public path they are served from.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

const defaultMaxBytes = 5 << 20

// allowedTypes is the MIME allow-list, checked against sniffed content, never
// the client-supplied extension alone.
var allowedTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"application/pdf": {},
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// DiskStore writes uploads below a root directory.
type DiskStore struct {
	root     string
	maxBytes int64
}

func NewDiskStore(root string, maxBytes int64) (*DiskStore, error) {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("upload root: %w", err)
	}
	return &DiskStore{root: root, maxBytes: maxBytes}, nil
}

// Save stores the file under root/kind and returns its public path. The
// stored name is a random prefix plus the sanitized client filename, so two
// uploads never collide and traversal sequences never reach the filesystem.
func (s *DiskStore) Save(ctx context.Context, kind, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, s.maxBytes)
	}

	contentType := http.DetectContentType(data)
	if _, ok := allowedTypes[contentType]; !ok {
		return "", fmt.Errorf("%w: unsupported file type %s", domain.ErrInvalidInput, contentType)
	}

	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("upload dir: %w", err)
	}

	stored := randomPrefix() + "_" + name
	if err := os.WriteFile(filepath.Join(dir, stored), data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return path.Join("/uploads", kind, stored), nil
}

// sanitizeFilename strips any directory components and replaces characters
// outside a conservative allow-list.
func sanitizeFilename(filename string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "" || base == "." || base == ".." {
		return "", fmt.Errorf("%w: invalid filename", domain.ErrInvalidInput)
	}
	safe := unsafeChars.ReplaceAllString(base, "_")
	if strings.Trim(safe, "._") == "" {
		return "", fmt.Errorf("%w: invalid filename", domain.ErrInvalidInput)
	}
	return safe, nil
}

func randomPrefix() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
