package gormstore

import (
	"context"
	"fmt"
	"time"

	"github.com/mgalvez/quotelists-go/internal/store"
	"gorm.io/gorm"
)

// InviteStore handles persistence of invite tokens.
type InviteStore struct {
	db *gorm.DB
}

// NewInviteStore creates a new invite store
func NewInviteStore(db *gorm.DB) *InviteStore {
	return &InviteStore{db: db}
}

// Create writes a single invite document.
func (s *InviteStore) Create(ctx context.Context, invite *store.Invite) error {
	if err := s.db.WithContext(ctx).Create(invite).Error; err != nil {
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

// Get retrieves an invite by id, or ErrNotFound.
func (s *InviteStore) Get(ctx context.Context, id string) (*store.Invite, error) {
	var invite store.Invite
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&invite).Error
	if err != nil {
		return nil, translate(err)
	}
	return &invite, nil
}

// DeleteOlderThan removes invites issued before cutoff.
func (s *InviteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&store.Invite{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired invites: %w", result.Error)
	}
	return result.RowsAffected, nil
}

var _ store.Invites = (*InviteStore)(nil)
