package gormstore

import (
	"context"
	"fmt"

	"github.com/mgalvez/quotelists-go/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AliasStore handles persistence of per-(user, list) aliases.
type AliasStore struct {
	db *gorm.DB
}

// NewAliasStore creates a new alias store
func NewAliasStore(db *gorm.DB) *AliasStore {
	return &AliasStore{db: db}
}

// Set creates or overwrites the alias for (userID, listID). At most one
// alias exists per user per list, enforced by the composite key.
func (s *AliasStore) Set(ctx context.Context, userID, listID, alias string) error {
	record := store.ListAlias{UserID: userID, ListID: listID, Alias: alias}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "list_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"alias", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to set alias: %w", err)
	}
	return nil
}

// Get returns the alias for (userID, listID), or ErrNotFound.
func (s *AliasStore) Get(ctx context.Context, userID, listID string) (string, error) {
	var record store.ListAlias
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND list_id = ?", userID, listID).
		First(&record).Error
	if err != nil {
		return "", translate(err)
	}
	return record.Alias, nil
}

// Delete removes the alias record. Idempotent.
func (s *AliasStore) Delete(ctx context.Context, userID, listID string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND list_id = ?", userID, listID).
		Delete(&store.ListAlias{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete alias: %w", err)
	}
	return nil
}

// ByUser returns every alias the user holds, keyed by list id.
func (s *AliasStore) ByUser(ctx context.Context, userID string) (map[string]string, error) {
	var records []store.ListAlias
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query aliases: %w", err)
	}
	aliases := make(map[string]string, len(records))
	for _, r := range records {
		aliases[r.ListID] = r.Alias
	}
	return aliases, nil
}

var _ store.Aliases = (*AliasStore)(nil)
