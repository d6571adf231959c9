// Package store defines persistence for harvested and generated codes.
package store

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Store persists harvest results and generated codes. Implementations
// live in the sqlite and memstore subpackages.
type Store interface {
	Close() error

	// Found codes, with provenance.
	InsertFound(ctx context.Context, recs []Found) error
	ListFound(ctx context.Context) ([]Found, error)

	// Generated codes, with the template and marker that produced them.
	InsertGenerated(ctx context.Context, recs []Generated) error
	ListGenerated(ctx context.Context) ([]Generated, error)
}

// Found is a harvested code with its source page.
type Found struct {
	ID           string
	Code         string
	SourceURL    string
	DiscoveredAt time.Time
}

// Generated is a synthesized code with its generation provenance. The
// marker is stored separately so exports can surface it as a column.
type Generated struct {
	ID          string
	Code        string
	Template    string
	Marker      string
	GeneratedAt time.Time
}

// NewID returns a fresh ULID for a record.
func NewID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
