package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ishop/internal/common"

	"github.com/google/uuid"
)

// ImagePolicy bounds what the image pipeline accepts.
type ImagePolicy struct {
	MaxBytes          int64
	AllowedExtensions []string
}

// NewImagePolicy normalizes extensions to lower case with a leading dot.
func NewImagePolicy(maxBytes int64, allowed []string) ImagePolicy {
	exts := make([]string, 0, len(allowed))
	for _, ext := range allowed {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return ImagePolicy{MaxBytes: maxBytes, AllowedExtensions: exts}
}

// Validate checks size then extension. The checks are ordered so an empty
// file is reported as empty even when its name is also unacceptable.
func (p ImagePolicy) Validate(size int64, name string) error {
	const op = "imagePolicy.Validate"
	if size <= 0 {
		return common.E(common.KindEmptyInput, op, "file is empty", nil)
	}
	if size > p.MaxBytes {
		return common.E(common.KindOversize, op, fmt.Sprintf("file exceeds the maximum size of %d bytes", p.MaxBytes), nil)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !p.allows(ext) {
		return common.E(common.KindUnsupportedType, op, fmt.Sprintf("file type %q is not allowed", ext), nil)
	}
	return nil
}

func (p ImagePolicy) allows(ext string) bool {
	if ext == "" {
		return false
	}
	for _, allowed := range p.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// GenerateFileName returns <32 hex chars of a v4 uuid><ddMMyyyy><ext>, the
// extension lower-cased. With 122 random bits per name a collision is not a
// practical concern; the blob stores still refuse to overwrite a key.
func GenerateFileName(original string, now time.Time) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	return token + now.Format("02012006") + strings.ToLower(filepath.Ext(original))
}
