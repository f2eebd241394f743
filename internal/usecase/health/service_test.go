package health

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct {
	pingErr error
	loaded  bool
}

func (f *fakePinger) Ping(_ context.Context) error { return f.pingErr }
func (f *fakePinger) Loaded() bool                 { return f.loaded }

func TestCheck_Healthy(t *testing.T) {
	svc := New(&fakePinger{loaded: true})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("expected healthy, got %s", report.Status)
	}
	if report.Checks["index_source"] != CheckOK {
		t.Errorf("expected index_source ok, got %s", report.Checks["index_source"])
	}
	if !report.IndexLoaded {
		t.Error("expected index loaded")
	}
}

func TestCheck_Degraded(t *testing.T) {
	svc := New(&fakePinger{pingErr: errors.New("down")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("expected degraded, got %s", report.Status)
	}
	if report.Checks["index_source"] != CheckError {
		t.Errorf("expected index_source error, got %s", report.Checks["index_source"])
	}
}

func TestCheck_UnloadedIndexIsNotFailure(t *testing.T) {
	svc := New(&fakePinger{loaded: false})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("lazy loading must not degrade health, got %s", report.Status)
	}
	if report.IndexLoaded {
		t.Error("expected index not loaded")
	}
}
