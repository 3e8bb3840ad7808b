package media

import (
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Upload is a validated image held in memory until a backend stores it.
type Upload struct {
	Filename    string
	Ext         string // lower-case, with the leading dot
	ContentType string // sniffed from the bytes, never trusted from the client
	Data        []byte
}

// Limits bounds what ReadUpload accepts.
type Limits struct {
	MaxBytes   int64
	Extensions []string
}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

var (
	ContentLimits = Limits{MaxBytes: 10 << 20, Extensions: imageExtensions}
	ProfileLimits = Limits{MaxBytes: 5 << 20, Extensions: imageExtensions}
)

// ReadUpload reads r fully and checks the result against lim. The extension
// must be allowed and the sniffed type must be an image.
func ReadUpload(r io.Reader, filename string, lim Limits) (Upload, error) {
	ext := strings.ToLower(path.Ext(filename))
	if !slices.Contains(lim.Extensions, ext) {
		return Upload{}, fmt.Errorf("%w: extension %q is not allowed", ErrInvalidUpload, ext)
	}

	data, err := io.ReadAll(io.LimitReader(r, lim.MaxBytes+1))
	if err != nil {
		return Upload{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return Upload{}, fmt.Errorf("%w: file is empty", ErrInvalidUpload)
	}
	if int64(len(data)) > lim.MaxBytes {
		return Upload{}, fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidUpload, lim.MaxBytes)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Upload{}, fmt.Errorf("%w: content is %s, not an image", ErrInvalidUpload, mt.String())
	}

	return Upload{
		Filename:    path.Base(filename),
		Ext:         ext,
		ContentType: mt.String(),
		Data:        data,
	}, nil
}

// ObjectKey names a stored object: <folder>/<uuid><ext>. Client file names
// never reach the storage layer.
func ObjectKey(folder string, up Upload) string {
	return path.Join(folder, uuid.NewString()+up.Ext)
}
