package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// replaceImage stores up (when given), persists the reconciled reference via
// persist and only then deletes what it replaced. If persist fails the fresh
// upload is removed again so nothing dangles. Cleanup failures after a
// successful persist are logged, never returned.
func replaceImage(
	ctx context.Context,
	m *media.Manager,
	folder string,
	current domain.ImageRef,
	up *media.Upload,
	persist func(next domain.ImageRef) error,
) error {
	l := slogx.FromContext(ctx)

	var uploaded *domain.ImageRef
	if up != nil {
		ref, err := m.Store(ctx, folder, *up)
		if err != nil {
			return err
		}
		uploaded = &ref
	}

	plan := media.Reconcile(current, uploaded)
	if err := persist(plan.Next); err != nil {
		if uploaded != nil {
			if derr := m.Delete(ctx, *uploaded); derr != nil {
				l.Error("failed to remove upload after persist failure",
					slog.String("image", uploaded.Key()), slog.Any("error", derr))
			}
		}
		return err
	}

	if err := m.Apply(ctx, plan); err != nil {
		l.Warn("stale image cleanup failed", slog.Any("error", err))
	}
	return nil
}

// deleteWithImage removes a record and its image. Both are attempted. A
// record failure is returned (joined with any storage failure); a storage
// failure alone is logged and the delete succeeds.
func deleteWithImage(
	ctx context.Context,
	m *media.Manager,
	ref domain.ImageRef,
	deleteRecord func() error,
) error {
	recErr := deleteRecord()
	imgErr := m.Release(ctx, ref)

	if recErr != nil {
		return errors.Join(recErr, imgErr)
	}
	if imgErr != nil {
		slogx.FromContext(ctx).Warn("image cleanup failed after delete",
			slog.String("image", ref.Key()), slog.Any("error", imgErr))
	}
	return nil
}

// mapStoreErr translates store sentinels into service errors.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrConflict
	default:
		return err
	}
}
