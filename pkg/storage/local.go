package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local keeps uploads on disk under root and references them by the public
// prefix the HTTP server mounts root on.
type Local struct {
	root   string
	prefix string
}

// NewLocal creates root if needed. prefix is the URL path uploads are
// served from, e.g. "/uploads".
func NewLocal(root, prefix string) (*Local, error) {
	if root == "" {
		root = "./uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Local{root: root, prefix: "/" + strings.Trim(prefix, "/")}, nil
}

func (l *Local) Root() string { return l.root }

func (l *Local) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}
	return l.prefix + "/" + key, nil
}

func (l *Local) Delete(ctx context.Context, key string) (bool, error) {
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Local) KeyFromReference(ref string) (string, bool) {
	if !strings.HasPrefix(ref, l.prefix+"/") {
		return "", false
	}
	key := strings.TrimPrefix(ref, l.prefix+"/")
	return key, key != ""
}

// Reset removes everything under root and recreates the given folders.
func (l *Local) Reset(folders ...string) error {
	entries, err := os.ReadDir(l.root)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(l.root, e.Name())); err != nil {
			return err
		}
	}
	return l.ensureFolders(folders...)
}

func (l *Local) ensureFolders(folders ...string) error {
	for _, f := range folders {
		if err := os.MkdirAll(filepath.Join(l.root, f), 0o755); err != nil {
			return err
		}
	}
	return nil
}
