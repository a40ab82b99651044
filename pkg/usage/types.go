package usage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one edge of the persisted usage index: a mapping that
// mentions a file, either a reference file or a child mapping.
type Record struct {
	// ID is a unique record identifier.
	ID string `json:"id"`

	// Reference is the mentioned file basename.
	Reference string `json:"reference"`

	// Mapping is the basename of the mapping that mentions it.
	Mapping string `json:"mapping"`

	// Kind is the hierarchy level of the mentioning mapping:
	// pipeline, instrument, or reference.
	Kind string `json:"kind"`

	// Instrument and Filekind describe the mentioning mapping when set.
	Instrument string `json:"instrument,omitempty"`
	Filekind   string `json:"filekind,omitempty"`

	// IndexedAt is when the record was produced by a scan.
	IndexedAt time.Time `json:"indexed_at"`
}

// NewRecord creates a usage record with a generated ID and the current
// time as IndexedAt.
func NewRecord(reference, mappingName, kind, instrument, filekind string) *Record {
	return &Record{
		ID:         uuid.New().String(),
		Reference:  reference,
		Mapping:    mappingName,
		Kind:       kind,
		Instrument: instrument,
		Filekind:   filekind,
		IndexedAt:  time.Now().UTC(),
	}
}

// Storage defines the interface for usage index backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a batch of usage records.
	Store(ctx context.Context, records []*Record) error

	// ByReference returns the records whose Reference equals the given
	// basename, ordered by mapping name. An empty slice means the file
	// is not mentioned by any scanned mapping.
	ByReference(ctx context.Context, reference string) ([]*Record, error)

	// Count returns the total number of records in the index.
	Count(ctx context.Context) (int64, error)

	// Clear removes all records, preparing the index for a rebuild.
	Clear(ctx context.Context) error

	// Close releases resources held by the backend.
	Close() error
}
