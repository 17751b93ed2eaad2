package filestore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

var ErrContentNotFound = errors.New("post content not found")

// Content stores rendered post bodies as <dir>/<id>.html.
type Content interface {
	Write(ctx context.Context, id int64, html string) error
	Read(ctx context.Context, id int64) (string, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type contentStore struct {
	dir string
}

func New(dir string) Content {
	return &contentStore{
		dir: dir,
	}
}

func (s *contentStore) path(id int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(id, 10)+".html")
}

// Write replaces the file through a rename so readers never see a torn body.
func (s *contentStore) Write(ctx context.Context, id int64, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".post-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path(id))
}

func (s *contentStore) Read(ctx context.Context, id int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrContentNotFound
		}
		return "", err
	}

	return string(data), nil
}

func (s *contentStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrContentNotFound
		}
		return err
	}
	return nil
}

func (s *contentStore) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(s.path(id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
