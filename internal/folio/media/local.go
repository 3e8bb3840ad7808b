package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

// LocalBackend keeps images under Dir and serves them from URLPrefix.
type LocalBackend struct {
	Dir       string
	URLPrefix string
}

var _ Backend = (*LocalBackend)(nil)

func NewLocalBackend(dir, urlPrefix string) (*LocalBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalBackend{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// resolve maps a stored relative path onto the disk, refusing anything that
// would escape Dir.
func (b *LocalBackend) resolve(rel string) (string, error) {
	p := filepath.FromSlash(rel)
	if !filepath.IsLocal(p) {
		return "", fmt.Errorf("path %q escapes the media directory", rel)
	}
	return filepath.Join(b.Dir, p), nil
}

func (b *LocalBackend) Store(ctx context.Context, folder string, up Upload) (domain.ImageRef, error) {
	if err := ctx.Err(); err != nil {
		return domain.ImageRef{}, err
	}

	rel := ObjectKey(folder, up)
	full, err := b.resolve(rel)
	if err != nil {
		return domain.ImageRef{}, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return domain.ImageRef{}, err
	}
	if err := os.WriteFile(full, up.Data, 0o644); err != nil {
		return domain.ImageRef{}, err
	}
	return domain.LocalImage(rel), nil
}

func (b *LocalBackend) Delete(ctx context.Context, ref domain.ImageRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ref.Kind != domain.ImageLocal {
		return fmt.Errorf("local backend cannot delete %s image", ref.Kind)
	}

	full, err := b.resolve(ref.Path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotExist, ref.Path)
		}
		return err
	}
	return nil
}

func (b *LocalBackend) URL(ref domain.ImageRef) string {
	return b.URLPrefix + "/" + path.Clean(ref.Path)
}
