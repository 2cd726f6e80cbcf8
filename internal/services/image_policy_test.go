package services

import (
	"regexp"
	"testing"
	"time"

	"ishop/internal/common"

	"github.com/stretchr/testify/assert"
)

func TestImagePolicy_Validate(t *testing.T) {
	policy := NewImagePolicy(2*1024*1024, []string{".png", "JPG"})

	cases := []struct {
		name string
		size int64
		file string
		kind common.Kind
	}{
		{"empty", 0, "photo.png", common.KindEmptyInput},
		{"empty beats bad type", 0, "doc.pdf", common.KindEmptyInput},
		{"oversize", 2*1024*1024 + 1, "photo.png", common.KindOversize},
		{"unsupported", 10 * 1024, "doc.pdf", common.KindUnsupportedType},
		{"no extension", 10, "README", common.KindUnsupportedType},
		{"upper case extension", 10, "PHOTO.PNG", ""},
		{"normalized jpg", 10, "shot.jpg", ""},
		{"exact limit", 2 * 1024 * 1024, "photo.png", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Validate(tc.size, tc.file)
			assert.Equal(t, tc.kind, common.KindOf(err))
		})
	}
}

func TestGenerateFileName(t *testing.T) {
	now := time.Date(2026, 10, 17, 13, 4, 5, 0, time.UTC)

	name := GenerateFileName("Holiday.PNG", now)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}17102026\.png$`), name)

	assert.NotEqual(t, name, GenerateFileName("Holiday.PNG", now))
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}17102026$`), GenerateFileName("noext", now))
}
