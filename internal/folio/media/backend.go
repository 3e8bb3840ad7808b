package media

import (
	"context"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

// Backend is the storage capability the Manager drives.
//
// Delete must return an error wrapping ErrNotExist when the object is already
// gone. Neither method is ever called with the default image.
type Backend interface {
	Store(ctx context.Context, folder string, up Upload) (domain.ImageRef, error)
	Delete(ctx context.Context, ref domain.ImageRef) error
	URL(ref domain.ImageRef) string
}
