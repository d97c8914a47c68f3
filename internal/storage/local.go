package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: urlPrefix}
}

func (l *Local) Put(_ context.Context, r io.Reader, in PutInput) (PutResult, error) {
	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return PutResult{}, fmt.Errorf("create upload dir: %w", err)
	}

	key := newKey(in.Filename)
	path := filepath.Join(l.BaseDir, key)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return PutResult{}, fmt.Errorf("create %s: %w", key, err)
	}

	// Callers only roll back keys they were given; partial files go here.
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return PutResult{}, fmt.Errorf("write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return PutResult{}, fmt.Errorf("close %s: %w", key, err)
	}

	return PutResult{Key: key, URL: l.URL(key)}, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	key = filepath.Base(key)
	if err := os.Remove(filepath.Join(l.BaseDir, key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *Local) URL(key string) string {
	return strings.TrimRight(l.URLPrefix, "/") + "/" + key
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
