package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const tempPrefix = ".upload-"

// FilesystemStore writes blobs below a root directory. Writes go to a temp
// file in the target directory and are renamed into place once complete.
type FilesystemStore struct {
	fs        afero.Fs
	root      string
	publicURL string
}

// NewFilesystemStore creates the root directory if needed. If publicURL is
// empty, URL returns host-relative paths served from the root.
func NewFilesystemStore(fsys afero.Fs, root, publicURL string) (*FilesystemStore, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := fsys.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &FilesystemStore{
		fs:        fsys,
		root:      root,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *FilesystemStore) path(key string) (string, string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", "", err
	}
	return cleaned, filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

func (s *FilesystemStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (int64, error) {
	_, target, err := s.path(key)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dir := filepath.Dir(target)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("ensure blob dir: %w", err)
	}
	if exists, err := afero.Exists(s.fs, target); err != nil {
		return 0, fmt.Errorf("check blob: %w", err)
	} else if exists {
		return 0, ErrExists
	}

	tmp, err := afero.TempFile(s.fs, dir, tempPrefix+"*")
	if err != nil {
		return 0, fmt.Errorf("create temp blob: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = s.fs.Remove(tmpName) }

	written, err := io.Copy(tmp, contextReader{ctx: ctx, r: r})
	if err != nil {
		_ = tmp.Close()
		cleanup()
		return 0, fmt.Errorf("write blob: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return 0, fmt.Errorf("sync blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return 0, fmt.Errorf("close blob: %w", err)
	}
	if size >= 0 && written != size {
		cleanup()
		return 0, fmt.Errorf("%w: declared %d, wrote %d", ErrShortWrite, size, written)
	}

	// the existence check above is not atomic with the rename; keys carry a
	// random token so a second writer for the same key is not expected
	if exists, _ := afero.Exists(s.fs, target); exists {
		cleanup()
		return 0, ErrExists
	}
	if err := s.fs.Rename(tmpName, target); err != nil {
		cleanup()
		return 0, fmt.Errorf("rename blob: %w", err)
	}
	return written, nil
}

func (s *FilesystemStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	_, target, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

func (s *FilesystemStore) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	cleaned, target, err := s.path(key)
	if err != nil {
		return ObjectInfo{}, err
	}
	info, err := s.fs.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ObjectInfo{}, ErrNotFound
		}
		return ObjectInfo{}, fmt.Errorf("stat blob: %w", err)
	}
	if info.IsDir() {
		return ObjectInfo{}, ErrNotFound
	}
	return ObjectInfo{Key: cleaned, Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	_, target, err := s.path(key)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (s *FilesystemStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	start := s.root
	if prefix != "" {
		cleaned, err := cleanKey(prefix)
		if err != nil {
			return nil, err
		}
		start = filepath.Join(s.root, filepath.FromSlash(cleaned))
	}
	if exists, err := afero.DirExists(s.fs, start); err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	} else if !exists {
		return nil, nil
	}

	var objects []ObjectInfo
	err := afero.Walk(s.fs, start, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() || strings.HasPrefix(info.Name(), tempPrefix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		objects = append(objects, ObjectInfo{
			Key:     filepath.ToSlash(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	return objects, nil
}

func (s *FilesystemStore) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return s.publicURL + "/" + cleaned, nil
}

func (s *FilesystemStore) Ping(ctx context.Context) error {
	if _, err := s.fs.Stat(s.root); err != nil {
		return fmt.Errorf("storage root unavailable: %w", err)
	}
	return nil
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
