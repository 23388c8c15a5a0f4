// Package source reads the legacy object database being migrated away from.
//
// The legacy graph is consumed as named collections of records, one per
// legacy class. Two backends exist: a served dump reachable over a
// mongodb:// URI and a directory of JSON-lines dumps reachable over
// file://. Records that cannot be decoded are surfaced through the cursor
// so callers can log and skip them instead of aborting the run.
package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrNotFound = errors.New("source: record not found")

// Collection names, one per legacy class.
const (
	CollAvatars      = "avatars"
	CollGroups       = "groups"
	CollCategories   = "categories"
	CollEvents       = "events"
	CollLocations    = "locations"
	CollRooms        = "rooms"
	CollReservations = "reservations"
	CollSettings     = "settings"
	CollDomains      = "domains"
	CollNews         = "news"
)

type Store interface {
	Collection(name string) Collection
	Close(ctx context.Context) error
}

type Collection interface {
	// Iter returns a cursor over all records, ordered by id.
	Iter(ctx context.Context) (Cursor, error)
	// FindID decodes the record with the given id into v.
	FindID(ctx context.Context, id string, v any) error
	Count(ctx context.Context) (int64, error)
}

// Cursor mirrors the driver cursor shape: Next advances, Decode unmarshals
// the current record. Decode errors are per-record and do not end iteration.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(v any) error
	Err() error
	Close(ctx context.Context) error
}

// Open connects to the legacy store identified by uri.
func Open(ctx context.Context, uri string) (Store, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid source URI %q: %w", uri, err)
	}
	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return openMongo(ctx, uri, strings.TrimPrefix(u.Path, "/"))
	case "file", "":
		return openDir(u.Path)
	default:
		return nil, fmt.Errorf("unknown source URI scheme %q", u.Scheme)
	}
}
