package media

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

const DefaultTimeout = 10 * time.Second

// Plan is the outcome of reconciling an entity's image with an optional new
// upload: the reference to persist and the objects to delete once it is.
type Plan struct {
	Next      domain.ImageRef
	Deletions []domain.ImageRef
}

// Reconcile decides what happens to current when uploaded replaces it. It is
// pure: nothing is stored or deleted. The default image is never scheduled.
func Reconcile(current domain.ImageRef, uploaded *domain.ImageRef) Plan {
	current = current.Normalize()
	if uploaded == nil {
		return Plan{Next: current}
	}

	next := uploaded.Normalize()
	plan := Plan{Next: next}
	if !current.IsDefault() && !current.SameObject(next) {
		plan.Deletions = []domain.ImageRef{current}
	}
	return plan
}

// Manager wraps a Backend with the lifecycle rules: bounded calls, the
// default image is untouchable and "already gone" counts as deleted.
type Manager struct {
	backend    Backend
	defaultURL string
	timeout    time.Duration
}

func NewManager(backend Backend, defaultURL string, timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{backend: backend, defaultURL: defaultURL, timeout: timeout}
}

// Store saves up under folder. Failures are *StorageError.
func (m *Manager) Store(ctx context.Context, folder string, up Upload) (domain.ImageRef, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	ref, err := m.backend.Store(ctx, folder, up)
	if err != nil {
		return domain.ImageRef{}, &StorageError{Op: "store", Err: err}
	}
	return ref, nil
}

// Delete removes the object behind ref. The default image is a no-op and an
// object that is already gone is success. The call survives cancellation of
// ctx (the record it belonged to is already gone) but not the timeout.
func (m *Manager) Delete(ctx context.Context, ref domain.ImageRef) error {
	if ref.IsDefault() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	err := m.backend.Delete(ctx, ref)
	if err == nil || errors.Is(err, ErrNotExist) {
		return nil
	}
	return &StorageError{Op: "delete", Ref: ref, Err: err}
}

// Apply runs every scheduled deletion, attempting all of them.
func (m *Manager) Apply(ctx context.Context, plan Plan) error {
	var errs []error
	for _, ref := range plan.Deletions {
		if err := m.Delete(ctx, ref); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Release deletes the image of an entity that is being deleted.
func (m *Manager) Release(ctx context.Context, ref domain.ImageRef) error {
	return m.Delete(ctx, ref)
}

// URL is the public address of ref. The default image resolves to the
// configured placeholder URL.
func (m *Manager) URL(ref domain.ImageRef) string {
	switch {
	case ref.IsDefault():
		return m.defaultURL
	case ref.Kind == domain.ImageRemote && ref.URL != "":
		return ref.URL
	default:
		return m.backend.URL(ref)
	}
}
