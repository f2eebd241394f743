package logo

import (
	"context"
	"errors"
	"testing"

	"github.com/brandfetch-labs/logodex/internal/domain"
	"github.com/brandfetch-labs/logodex/internal/repository/catalog"
)

type fakeCatalog struct {
	records []domain.Record
	err     error
}

func (f *fakeCatalog) Snapshot(_ context.Context) (*catalog.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return catalog.NewSnapshot(f.records), nil
}

func TestGet(t *testing.T) {
	svc := New(&fakeCatalog{records: []domain.Record{
		{ID: "acme", Category: "Finance", Asset: "acme.svg"},
	}})

	rec, err := svc.Get(context.Background(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Asset != "acme.svg" {
		t.Errorf("asset = %q", rec.Asset)
	}
}

func TestGet_TrimsID(t *testing.T) {
	svc := New(&fakeCatalog{records: []domain.Record{{ID: "acme"}}})

	if _, err := svc.Get(context.Background(), "  acme  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGet_EmptyID(t *testing.T) {
	svc := New(&fakeCatalog{})

	_, err := svc.Get(context.Background(), "   ")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGet_Miss(t *testing.T) {
	svc := New(&fakeCatalog{records: []domain.Record{{ID: "acme"}}})

	_, err := svc.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_SourceError(t *testing.T) {
	svc := New(&fakeCatalog{err: domain.ErrSourceUnavailable})

	_, err := svc.Get(context.Background(), "acme")
	if !errors.Is(err, domain.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
