// Package storage holds the content store backends that image blobs are written to.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a key has no blob.
	ErrNotFound = errors.New("blob not found")
	// ErrExists is returned by Put when the key is already taken. Stores never overwrite.
	ErrExists = errors.New("blob already exists")
	// ErrInvalidKey is returned for empty keys or keys escaping the store root.
	ErrInvalidKey = errors.New("invalid blob key")
	// ErrShortWrite is returned when fewer bytes than announced were stored.
	ErrShortWrite = errors.New("blob size does not match declared size")
)

// ObjectInfo describes a stored blob.
type ObjectInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// BlobStore is a path-addressable content store.
type BlobStore interface {
	// Put stores r under key and returns the number of bytes written.
	// size is the declared length, or -1 if unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// List returns every blob whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// URL returns a consumer-accessible reference for key.
	URL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Ping(ctx context.Context) error
}

// ImagesPrefix is the folder image blobs live under.
const ImagesPrefix = "images"

// ImageKey returns the store key for an image file name.
func ImageKey(fileName string) string {
	return path.Join(ImagesPrefix, fileName)
}

// cleanKey normalizes a slash separated key and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + key)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
