// Package gormstore implements the store repositories on PostgreSQL via GORM.
package gormstore

import (
	"errors"

	"github.com/mgalvez/quotelists-go/internal/store"
	"gorm.io/gorm"
)

// Stores bundles every repository backed by one database connection.
type Stores struct {
	Lists   *ListStore
	Aliases *AliasStore
	Quotes  *QuoteStore
	Invites *InviteStore
}

// New creates the full repository set on top of db.
func New(db *gorm.DB) *Stores {
	return &Stores{
		Lists:   NewListStore(db),
		Aliases: NewAliasStore(db),
		Quotes:  NewQuoteStore(db),
		Invites: NewInviteStore(db),
	}
}

// translate maps gorm's record-not-found onto the store sentinel so callers
// never depend on gorm types.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}
