package gormstore

import (
	"context"
	"fmt"

	"github.com/mgalvez/quotelists-go/internal/store"
	"gorm.io/gorm"
)

// QuoteStore handles persistence of quotes.
type QuoteStore struct {
	db *gorm.DB
}

// NewQuoteStore creates a new quote store
func NewQuoteStore(db *gorm.DB) *QuoteStore {
	return &QuoteStore{db: db}
}

// Create writes a single quote document. GORM leaves a non-zero CreatedAt
// untouched, which is what fork copies rely on to preserve original
// timestamps.
func (s *QuoteStore) Create(ctx context.Context, quote *store.Quote) error {
	if err := s.db.WithContext(ctx).Create(quote).Error; err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}
	return nil
}

// ByList returns all quotes attached to one list.
func (s *QuoteStore) ByList(ctx context.Context, listID string) ([]store.Quote, error) {
	var quotes []store.Quote
	err := s.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("created_at ASC").
		Find(&quotes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes by list: %w", err)
	}
	return quotes, nil
}

// ByLists returns quotes for a bounded set of list ids. The MaxInFilter
// ceiling is enforced here so every caller goes through the shared
// chunk-and-merge path instead of relying on backend-specific limits.
func (s *QuoteStore) ByLists(ctx context.Context, listIDs []string) ([]store.Quote, error) {
	if len(listIDs) > store.MaxInFilter {
		return nil, fmt.Errorf("%w: %d ids", store.ErrFilterTooLarge, len(listIDs))
	}
	if len(listIDs) == 0 {
		return nil, nil
	}
	var quotes []store.Quote
	err := s.db.WithContext(ctx).
		Where("list_id IN ?", listIDs).
		Find(&quotes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes by lists: %w", err)
	}
	return quotes, nil
}

// SetList reassigns a quote to another list.
func (s *QuoteStore) SetList(ctx context.Context, quoteID, listID string) error {
	err := s.db.WithContext(ctx).
		Model(&store.Quote{}).
		Where("id = ?", quoteID).
		Update("list_id", listID).Error
	if err != nil {
		return fmt.Errorf("failed to reassign quote: %w", err)
	}
	return nil
}

var _ store.Quotes = (*QuoteStore)(nil)
