// Package storage persists uploaded product images.
package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/yourorg/catalogadmin/internal/id"
)

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

func newKey(filename string) string {
	return id.GenerateIDWithPrefix(id.ImagePrefix) + safeExt(filename)
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return ext
	default:
		return ""
	}
}
