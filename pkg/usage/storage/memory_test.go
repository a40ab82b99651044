package storage

import (
	"context"
	"testing"

	"calpipe/refmatch/pkg/usage"
)

func sampleRecords() []*usage.Record {
	return []*usage.Record{
		usage.NewRecord("q9e1206kj_bia.fits", "hst_acs_biasfile.rmap", "reference", "acs", "biasfile"),
		usage.NewRecord("hst_acs_biasfile.rmap", "hst_acs.imap", "instrument", "acs", ""),
		usage.NewRecord("hst_acs.imap", "hst.pmap", "pipeline", "", ""),
	}
}

func TestMemoryStorage_StoreAndQuery(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	if err := s.Store(ctx, sampleRecords()); err != nil {
		t.Fatalf("Store() error = %v, want nil", err)
	}

	records, err := s.ByReference(ctx, "q9e1206kj_bia.fits")
	if err != nil {
		t.Fatalf("ByReference() error = %v, want nil", err)
	}
	if len(records) != 1 {
		t.Fatalf("ByReference() returned %d records, want 1", len(records))
	}
	if records[0].Mapping != "hst_acs_biasfile.rmap" {
		t.Errorf("record mapping = %q, want %q", records[0].Mapping, "hst_acs_biasfile.rmap")
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v, want nil", err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}
}

func TestMemoryStorage_Clear(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	if err := s.Store(ctx, sampleRecords()); err != nil {
		t.Fatalf("Store() error = %v, want nil", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v, want nil", err)
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v, want nil", err)
	}
	if count != 0 {
		t.Errorf("Count() after Clear() = %d, want 0", count)
	}
}

func TestMemoryStorage_ByReference_Empty(t *testing.T) {
	s := NewMemoryStorage()

	records, err := s.ByReference(context.Background(), "missing.fits")
	if err != nil {
		t.Fatalf("ByReference() error = %v, want nil", err)
	}
	if len(records) != 0 {
		t.Errorf("ByReference(missing) returned %d records, want 0", len(records))
	}
}
