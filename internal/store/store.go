// Package store defines the document-store boundary the services are written
// against: per-document atomicity, equality filters, and bounded "value in
// set" filters. No multi-document transactions are exposed; multi-step
// operations are best-effort sequential by design.
package store

import (
	"context"
	"errors"
	"time"
)

// MaxInFilter is the store's ceiling on "value is one of N" filters.
// Callers with more ids must chunk with Chunk and merge results themselves.
const MaxInFilter = 30

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for blank required input before any store
	// round-trip happens.
	ErrValidation = errors.New("validation failed")

	// ErrFilterTooLarge is returned when a set filter exceeds MaxInFilter.
	ErrFilterTooLarge = errors.New("in-filter exceeds maximum size")
)

// Lists is the repository for QuoteList documents. Collaborator mutations
// are idempotent set algebra applied atomically per document, so concurrent
// unordered application from independent users is safe.
type Lists interface {
	Create(ctx context.Context, list *QuoteList) error
	Get(ctx context.Context, id string) (*QuoteList, error)
	Delete(ctx context.Context, id string) error
	ByCollaborator(ctx context.Context, userID string) ([]QuoteList, error)
	AddCollaborator(ctx context.Context, listID, userID string) error
	RemoveCollaborator(ctx context.Context, listID, userID string) error
}

// Aliases is the repository for per-(user, list) display-name overrides.
type Aliases interface {
	// Set creates or overwrites the alias for (userID, listID).
	Set(ctx context.Context, userID, listID, alias string) error
	Get(ctx context.Context, userID, listID string) (string, error)
	Delete(ctx context.Context, userID, listID string) error
	// ByUser returns every alias the user holds, keyed by list id.
	ByUser(ctx context.Context, userID string) (map[string]string, error)
}

// Quotes is the repository for Quote documents. Create preserves a non-zero
// CreatedAt (used when copying quotes across a fork); otherwise the store
// assigns the timestamp on write.
type Quotes interface {
	Create(ctx context.Context, quote *Quote) error
	ByList(ctx context.Context, listID string) ([]Quote, error)
	// ByLists accepts at most MaxInFilter ids and fails with
	// ErrFilterTooLarge beyond that.
	ByLists(ctx context.Context, listIDs []string) ([]Quote, error)
	// SetList reassigns a quote to another list. The only mutation quotes
	// support.
	SetList(ctx context.Context, quoteID, listID string) error
}

// Invites is the repository for invite tokens.
type Invites interface {
	Create(ctx context.Context, invite *Invite) error
	Get(ctx context.Context, id string) (*Invite, error)
	// DeleteOlderThan removes invites issued before cutoff and reports how
	// many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
