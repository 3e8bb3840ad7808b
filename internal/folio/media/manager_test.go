package media_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/media/mediatest"
	"github.com/stretchr/testify/require"
)

func ptr(r domain.ImageRef) *domain.ImageRef { return &r }

func TestReconcile(t *testing.T) {
	oldLocal := domain.LocalImage("blogs/old.png")
	newLocal := domain.LocalImage("blogs/new.png")

	tests := []struct {
		name      string
		current   domain.ImageRef
		uploaded  *domain.ImageRef
		next      domain.ImageRef
		deletions []domain.ImageRef
	}{
		{"no upload keeps current", oldLocal, nil, oldLocal, nil},
		{"no upload on default", domain.DefaultImage, nil, domain.DefaultImage, nil},
		{"zero value is default", domain.ImageRef{}, ptr(newLocal), newLocal, nil},
		{"replace default never deletes it", domain.DefaultImage, ptr(newLocal), newLocal, nil},
		{"replace local deletes old", oldLocal, ptr(newLocal), newLocal, []domain.ImageRef{oldLocal}},
		{"same object is not deleted", oldLocal, ptr(oldLocal), oldLocal, nil},
		{
			"remote replaced by remote",
			domain.RemoteImage("u1", "p1"), ptr(domain.RemoteImage("u2", "p2")),
			domain.RemoteImage("u2", "p2"), []domain.ImageRef{domain.RemoteImage("u1", "p1")},
		},
		{
			"default with a stale url is still default",
			domain.ImageRef{Kind: domain.ImageDefault, URL: "https://old-cdn/default.webp"}, ptr(newLocal),
			newLocal, nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := media.Reconcile(tt.current, tt.uploaded)
			require.Equal(t, tt.next, plan.Next)
			require.Equal(t, tt.deletions, plan.Deletions)
			for _, d := range plan.Deletions {
				require.False(t, d.IsDefault())
			}
		})
	}
}

func TestManagerDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("default is a no-op", func(t *testing.T) {
		b := mediatest.New()
		b.DeleteErr = errors.New("must not be called")
		m := media.NewManager(b, "/default.webp", time.Second)
		require.NoError(t, m.Delete(ctx, domain.DefaultImage))
		require.NoError(t, m.Release(ctx, domain.ImageRef{}))
	})

	t.Run("already gone is success", func(t *testing.T) {
		m := media.NewManager(mediatest.New(), "", time.Second)
		require.NoError(t, m.Delete(ctx, domain.LocalImage("blogs/missing.png")))
	})

	t.Run("failure is a storage error", func(t *testing.T) {
		b := mediatest.New()
		b.DeleteErr = errors.New("disk on fire")
		m := media.NewManager(b, "", time.Second)

		err := m.Delete(ctx, domain.LocalImage("blogs/a.png"))
		var serr *media.StorageError
		require.ErrorAs(t, err, &serr)
		require.Equal(t, "delete", serr.Op)
	})

	t.Run("cancelled request still deletes", func(t *testing.T) {
		b := mediatest.New()
		ref := domain.LocalImage("blogs/a.png")
		b.Seed(ref)
		m := media.NewManager(b, "", time.Second)

		cctx, cancel := context.WithCancel(ctx)
		cancel()
		require.NoError(t, m.Delete(cctx, ref))
		require.False(t, b.Has(ref))
	})
}

type slowBackend struct{ *mediatest.Backend }

func (slowBackend) Delete(ctx context.Context, _ domain.ImageRef) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestManagerDeleteIsBounded(t *testing.T) {
	m := media.NewManager(slowBackend{mediatest.New()}, "", 20*time.Millisecond)

	start := time.Now()
	err := m.Delete(context.Background(), domain.LocalImage("blogs/a.png"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)
}

func TestManagerApplyAttemptsAll(t *testing.T) {
	b := mediatest.New()
	kept := domain.LocalImage("blogs/kept.png")
	b.Seed(kept)
	m := media.NewManager(b, "", time.Second)

	plan := media.Plan{Deletions: []domain.ImageRef{domain.LocalImage("blogs/missing.png"), kept}}
	require.NoError(t, m.Apply(context.Background(), plan))
	require.False(t, b.Has(kept))
	require.Equal(t, []domain.ImageRef{kept}, b.Deleted())
}

func TestManagerStoreFailure(t *testing.T) {
	b := mediatest.New()
	b.StoreErr = errors.New("bucket missing")
	m := media.NewManager(b, "", time.Second)

	_, err := m.Store(context.Background(), "blogs", mediatest.Upload())
	var serr *media.StorageError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, "store", serr.Op)
}

func TestManagerURL(t *testing.T) {
	m := media.NewManager(mediatest.New(), "/api/Media/default.webp", time.Second)

	require.Equal(t, "/api/Media/default.webp", m.URL(domain.DefaultImage))
	require.Equal(t, "https://cdn/x.png", m.URL(domain.RemoteImage("https://cdn/x.png", "x.png")))
	require.Equal(t, "/media/blogs/a.png", m.URL(domain.LocalImage("blogs/a.png")))
}
