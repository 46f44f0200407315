// Package lists implements list lifecycle: creation, alias resolution, and
// the structural fork and merge operations. The backing store offers
// per-document atomicity only, so every multi-step operation here is a
// best-effort ordered sequence, never a transaction; each step logs its
// effect so partial failures are inspectable.
package lists

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mgalvez/quotelists-go/internal/store"
	"golang.org/x/sync/errgroup"
)

// Service orchestrates list lifecycle operations.
type Service struct {
	lists   store.Lists
	aliases store.Aliases
	quotes  store.Quotes
}

// NewService creates a new list service
func NewService(lists store.Lists, aliases store.Aliases, quotes store.Quotes) *Service {
	return &Service{lists: lists, aliases: aliases, quotes: quotes}
}

// Create writes a new list with the creator as sole collaborator, then the
// creator's alias record. Two sequential writes: if the alias write fails
// the list still exists and the alias resolves to PersonName everywhere, so
// the gap is recoverable and not surfaced as an error.
func (s *Service) Create(ctx context.Context, personName, userID string) (*store.QuoteList, error) {
	personName = strings.TrimSpace(personName)
	if personName == "" {
		return nil, fmt.Errorf("%w: person name is required", store.ErrValidation)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", store.ErrValidation)
	}

	list := &store.QuoteList{
		ID:            uuid.NewString(),
		PersonName:    personName,
		Collaborators: []string{userID},
		CreatedBy:     userID,
	}
	if err := s.lists.Create(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	if err := s.aliases.Set(ctx, userID, list.ID, personName); err != nil {
		slog.Warn("list created without creator alias", "list_id", list.ID, "error", err)
	}

	return list, nil
}

// ForUser returns every list the user collaborates on.
func (s *Service) ForUser(ctx context.Context, userID string) ([]store.QuoteList, error) {
	return s.lists.ByCollaborator(ctx, userID)
}

// Get retrieves one list by id.
func (s *Service) Get(ctx context.Context, listID string) (*store.QuoteList, error) {
	return s.lists.Get(ctx, listID)
}

// SetAlias overwrites the user's display name for a list.
func (s *Service) SetAlias(ctx context.Context, userID, listID, alias string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return fmt.Errorf("%w: alias is required", store.ErrValidation)
	}
	return s.aliases.Set(ctx, userID, listID, alias)
}

// ResolvedAliases returns the user's display name for each of their lists:
// the alias record when present, the list's PersonName otherwise. This is
// the map quote routing and import match against.
func (s *Service) ResolvedAliases(ctx context.Context, userID string) (map[string]string, error) {
	var (
		userLists []store.QuoteList
		aliases   map[string]string
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userLists, err = s.lists.ByCollaborator(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		aliases, err = s.aliases.ByUser(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load alias map: %w", err)
	}

	resolved := make(map[string]string, len(userLists))
	for _, list := range userLists {
		if alias, ok := aliases[list.ID]; ok && alias != "" {
			resolved[list.ID] = alias
		} else {
			resolved[list.ID] = list.PersonName
		}
	}
	return resolved, nil
}

// Leave forks a personal copy of a shared list and removes the user from the
// original. The copy carries the user's alias and a snapshot of the quotes
// as read at entry; quotes added concurrently are not copied. Authorship of
// copied quotes is preserved, not reassigned. Fails with ErrNotFound before
// any write when the source list does not exist.
func (s *Service) Leave(ctx context.Context, listID, userID string) (string, error) {
	if listID == "" || userID == "" {
		return "", fmt.Errorf("%w: list id and user id are required", store.ErrValidation)
	}

	// Read phase: list, the user's alias, and the quote snapshot in parallel.
	var (
		source *store.QuoteList
		alias  string
		quotes []store.Quote
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		source, err = s.lists.Get(gctx, listID)
		return err
	})
	g.Go(func() error {
		var err error
		alias, err = s.aliases.Get(gctx, userID, listID)
		if errors.Is(err, store.ErrNotFound) {
			alias = ""
			return nil
		}
		return err
	})
	g.Go(func() error {
		var err error
		quotes, err = s.quotes.ByList(gctx, listID)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("failed to read list %s: %w", listID, err)
	}

	// Fork: new list plus default alias for the user.
	fork, err := s.Create(ctx, source.PersonName, userID)
	if err != nil {
		return "", fmt.Errorf("failed to fork list: %w", err)
	}
	slog.Debug("leave: fork created", "source_id", listID, "fork_id", fork.ID)

	if alias != "" && alias != source.PersonName {
		if err := s.aliases.Set(ctx, userID, fork.ID, alias); err != nil {
			return "", fmt.Errorf("failed to carry alias to fork: %w", err)
		}
	}

	// Copy the quote snapshot, preserving text, alias snapshot, timestamp
	// and authorship.
	for _, q := range quotes {
		cp := store.Quote{
			ID:          uuid.NewString(),
			Text:        q.Text,
			PersonAlias: q.PersonAlias,
			ListID:      fork.ID,
			CreatedBy:   q.CreatedBy,
			CreatedAt:   q.CreatedAt,
		}
		if err := s.quotes.Create(ctx, &cp); err != nil {
			return "", fmt.Errorf("failed to copy quote to fork: %w", err)
		}
	}
	slog.Debug("leave: quotes copied", "fork_id", fork.ID, "count", len(quotes))

	// Cleanup on the source: drop membership, then the alias record.
	if err := s.lists.RemoveCollaborator(ctx, listID, userID); err != nil {
		return "", fmt.Errorf("failed to leave source list: %w", err)
	}
	if err := s.aliases.Delete(ctx, userID, listID); err != nil {
		return "", fmt.Errorf("failed to delete source alias: %w", err)
	}

	slog.Info("left list", "source_id", listID, "fork_id", fork.ID, "user_id", userID, "quotes", len(quotes))
	return fork.ID, nil
}

// Merge absorbs mergeListID into keepListID: quotes are reassigned one by
// one, collaborators are unioned, the acting user's alias for the merged
// list is dropped, and the merged list document is deleted. Other
// collaborators' aliases for the merged list are left behind; they may
// dangle against the deleted list, a known consistency gap. A failure
// mid-reassignment leaves some quotes moved and others not; there is no
// compensating rollback.
func (s *Service) Merge(ctx context.Context, keepListID, mergeListID, userID string) error {
	if keepListID == "" || mergeListID == "" || userID == "" {
		return fmt.Errorf("%w: list ids and user id are required", store.ErrValidation)
	}
	if keepListID == mergeListID {
		return fmt.Errorf("%w: cannot merge a list into itself", store.ErrValidation)
	}

	// Read phase: merged list and its quotes in parallel.
	var (
		merged *store.QuoteList
		quotes []store.Quote
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		merged, err = s.lists.Get(gctx, mergeListID)
		return err
	})
	g.Go(func() error {
		var err error
		quotes, err = s.quotes.ByList(gctx, mergeListID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to read list %s: %w", mergeListID, err)
	}

	// Reassign quotes; each update stands alone.
	for _, q := range quotes {
		if err := s.quotes.SetList(ctx, q.ID, keepListID); err != nil {
			return fmt.Errorf("failed to reassign quote %s: %w", q.ID, err)
		}
	}
	slog.Debug("merge: quotes reassigned", "keep_id", keepListID, "count", len(quotes))

	// Union collaborators into the kept list; each add is idempotent.
	for _, collaborator := range merged.Collaborators {
		if err := s.lists.AddCollaborator(ctx, keepListID, collaborator); err != nil {
			return fmt.Errorf("failed to add collaborator %s: %w", collaborator, err)
		}
	}

	if err := s.aliases.Delete(ctx, userID, mergeListID); err != nil {
		return fmt.Errorf("failed to delete merged alias: %w", err)
	}
	if err := s.lists.Delete(ctx, mergeListID); err != nil {
		return fmt.Errorf("failed to delete merged list: %w", err)
	}

	slog.Info("merged lists", "keep_id", keepListID, "merged_id", mergeListID, "quotes", len(quotes))
	return nil
}
