package media

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

var (
	// ErrInvalidUpload is wrapped by every upload rejection (size, extension, content).
	ErrInvalidUpload = errors.New("media: invalid upload")

	// ErrNotExist is returned by backends when the object is already gone.
	ErrNotExist = errors.New("media: object does not exist")
)

// StorageError reports a backend failure. Callers map it to a gateway error.
type StorageError struct {
	Op  string // "store" or "delete"
	Ref domain.ImageRef
	Err error
}

func (e *StorageError) Error() string {
	if key := e.Ref.Key(); key != "" {
		return fmt.Sprintf("media: %s %s: %v", e.Op, key, e.Err)
	}
	return fmt.Sprintf("media: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
