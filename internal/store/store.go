// Package store persists extraction records. Two backends implement the
// same interface: SQLite for single-binary use and Postgres for shared
// deployments. Records are stored as the full JSON payload plus a few
// indexed columns for listing.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"invoice-audit/internal/extract"
)

// Record is one stored extraction.
type Record struct {
	ID         uuid.UUID                  `json:"id"`
	CreatedAt  time.Time                  `json:"createdAt"`
	Extraction *extract.InvoiceExtraction `json:"extraction"`
}

// Store is the persistence contract shared by both backends.
type Store interface {
	// Save inserts a new record for ex and returns it with its id.
	Save(ctx context.Context, ex *extract.InvoiceExtraction) (*Record, error)
	// List returns all records, newest first.
	List(ctx context.Context) ([]*Record, error)
	// Get returns one record by id.
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	// Update overwrites the payload of an existing record. Used for
	// field corrections; the caller decides what changed.
	Update(ctx context.Context, id uuid.UUID, ex *extract.InvoiceExtraction) error
	// Clear deletes all records.
	Clear(ctx context.Context) error
	Close() error
}
