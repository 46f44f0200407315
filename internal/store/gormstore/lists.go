package gormstore

import (
	"context"
	"fmt"

	"github.com/mgalvez/quotelists-go/internal/store"
	"gorm.io/gorm"
)

// ListStore handles persistence of quote lists.
type ListStore struct {
	db *gorm.DB
}

// NewListStore creates a new list store
func NewListStore(db *gorm.DB) *ListStore {
	return &ListStore{db: db}
}

// Create writes a single list document.
func (s *ListStore) Create(ctx context.Context, list *store.QuoteList) error {
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

// Get retrieves a list by id.
func (s *ListStore) Get(ctx context.Context, id string) (*store.QuoteList, error) {
	var list store.QuoteList
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&list).Error
	if err != nil {
		return nil, translate(err)
	}
	return &list, nil
}

// Delete removes the list document.
func (s *ListStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&store.QuoteList{}).Error; err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// ByCollaborator returns every list whose collaborator set contains userID,
// using jsonb containment as the store's array-membership filter.
func (s *ListStore) ByCollaborator(ctx context.Context, userID string) ([]store.QuoteList, error) {
	var lists []store.QuoteList
	err := s.db.WithContext(ctx).
		Where("collaborators @> to_jsonb(?::text)", userID).
		Order("created_at ASC").
		Find(&lists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query lists by collaborator: %w", err)
	}
	return lists, nil
}

// AddCollaborator appends userID to the list's collaborator set unless
// already present. A single atomic document update, so concurrent joins from
// independent users apply in any order with the same outcome.
func (s *ListStore) AddCollaborator(ctx context.Context, listID, userID string) error {
	err := s.db.WithContext(ctx).Exec(
		`UPDATE quote_lists
		 SET collaborators = collaborators || to_jsonb(?::text)
		 WHERE id = ? AND NOT collaborators @> to_jsonb(?::text)`,
		userID, listID, userID,
	).Error
	if err != nil {
		return fmt.Errorf("failed to add collaborator: %w", err)
	}
	return nil
}

// RemoveCollaborator removes userID from the list's collaborator set.
// Idempotent: removing an absent member is a no-op.
func (s *ListStore) RemoveCollaborator(ctx context.Context, listID, userID string) error {
	err := s.db.WithContext(ctx).Exec(
		`UPDATE quote_lists SET collaborators = collaborators - ? WHERE id = ?`,
		userID, listID,
	).Error
	if err != nil {
		return fmt.Errorf("failed to remove collaborator: %w", err)
	}
	return nil
}

var _ store.Lists = (*ListStore)(nil)
