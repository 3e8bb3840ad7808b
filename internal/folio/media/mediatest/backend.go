// Package mediatest provides an in-memory media.Backend for tests.
package mediatest

import (
	"context"
	"fmt"
	"sync"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/media"
)

// PNG is the smallest byte string the upload sniffer accepts as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// Backend records every stored and deleted object. Objects live in a map
// keyed by path so deleting an unknown key reports media.ErrNotExist.
type Backend struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []domain.ImageRef
	calls   int

	// StoreErr and DeleteErr, when set, are returned instead of doing the work.
	StoreErr  error
	DeleteErr error
}

var _ media.Backend = (*Backend)(nil)

func New() *Backend {
	return &Backend{objects: make(map[string][]byte)}
}

func (b *Backend) Store(ctx context.Context, folder string, up media.Upload) (domain.ImageRef, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.StoreErr != nil {
		return domain.ImageRef{}, b.StoreErr
	}
	key := media.ObjectKey(folder, up)
	b.objects[key] = up.Data
	return domain.LocalImage(key), nil
}

func (b *Backend) Delete(ctx context.Context, ref domain.ImageRef) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.calls++
	if b.DeleteErr != nil {
		return b.DeleteErr
	}
	if _, ok := b.objects[ref.Key()]; !ok {
		return fmt.Errorf("%w: %s", media.ErrNotExist, ref.Key())
	}
	delete(b.objects, ref.Key())
	b.deleted = append(b.deleted, ref)
	return nil
}

func (b *Backend) URL(ref domain.ImageRef) string {
	return "/media/" + ref.Key()
}

// Has reports whether the object behind ref is stored.
func (b *Backend) Has(ref domain.ImageRef) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[ref.Key()]
	return ok
}

// Len is the number of objects currently stored.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

// Deleted returns the references removed so far, in order.
func (b *Backend) Deleted() []domain.ImageRef {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.ImageRef(nil), b.deleted...)
}

// DeleteCalls counts every call to Delete, failed ones included.
func (b *Backend) DeleteCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// Seed stores ref as if it had been uploaded earlier.
func (b *Backend) Seed(ref domain.ImageRef) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[ref.Key()] = PNG
}

// Upload returns a valid png upload for tests.
func Upload() media.Upload {
	return media.Upload{Filename: "pic.png", Ext: ".png", ContentType: "image/png", Data: PNG}
}
