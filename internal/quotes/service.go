// Package quotes implements quote entry: the routing decision that maps a
// typed person name onto zero, one or many lists, the direct write path, and
// the derived read-side views over stored quotes.
package quotes

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mgalvez/quotelists-go/internal/lists"
	"github.com/mgalvez/quotelists-go/internal/store"
)

// Service handles quote creation and routing.
type Service struct {
	lists  *lists.Service
	quotes store.Quotes
}

// NewService creates a new quote service
func NewService(listSvc *lists.Service, quotes store.Quotes) *Service {
	return &Service{lists: listSvc, quotes: quotes}
}

// Add writes one quote into a list. PersonAlias is stored as typed; it is a
// snapshot, not a live pointer, so later alias edits leave it untouched. The
// store assigns the timestamp.
func (s *Service) Add(ctx context.Context, text, personAlias, listID, userID string) (*store.Quote, error) {
	return s.AddAt(ctx, text, personAlias, listID, userID, time.Time{})
}

// AddAt behaves like Add but stamps the quote with a provided creation time
// when non-zero. Bulk import uses it for files that carry dates.
func (s *Service) AddAt(ctx context.Context, text, personAlias, listID, userID string, at time.Time) (*store.Quote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: quote text is required", store.ErrValidation)
	}
	if listID == "" || userID == "" {
		return nil, fmt.Errorf("%w: list id and user id are required", store.ErrValidation)
	}

	quote := &store.Quote{
		ID:          uuid.NewString(),
		Text:        text,
		PersonAlias: personAlias,
		ListID:      listID,
		CreatedBy:   userID,
		CreatedAt:   at,
	}
	if err := s.quotes.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to add quote: %w", err)
	}
	return quote, nil
}

// ForList returns a list's quotes, newest first.
func (s *Service) ForList(ctx context.Context, listID string) ([]store.Quote, error) {
	quotes, err := s.quotes.ByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	return SortByDate(quotes, OrderDesc), nil
}

// RouteStatus reports which branch quote routing took.
type RouteStatus int

const (
	// RoutedNewList means no alias matched; a list was created and the
	// quote written into it.
	RoutedNewList RouteStatus = iota
	// RoutedExisting means exactly one alias matched and the quote was
	// written directly.
	RoutedExisting
	// NeedsSelection means the name is ambiguous; nothing was written and
	// the caller must confirm a subset of the candidates.
	NeedsSelection
)

// RouteResult is the outcome of a quote-entry routing decision.
type RouteResult struct {
	Status       RouteStatus
	ListID       string
	Quote        *store.Quote
	CandidateIDs []string
}

// Route resolves a typed person name against the user's full alias map and
// acts on the three possible states: no match creates a list and writes the
// quote, a single match writes directly, and multiple matches return the
// candidates without writing anything.
func (s *Service) Route(ctx context.Context, userID, personName, text string) (*RouteResult, error) {
	personName = strings.TrimSpace(personName)
	if personName == "" {
		return nil, fmt.Errorf("%w: person name is required", store.ErrValidation)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: quote text is required", store.ErrValidation)
	}

	aliases, err := s.lists.ResolvedAliases(ctx, userID)
	if err != nil {
		return nil, err
	}

	match := lists.MatchListIDs(aliases, personName)
	switch match.Kind {
	case lists.MatchNone:
		list, err := s.lists.Create(ctx, personName, userID)
		if err != nil {
			return nil, err
		}
		quote, err := s.Add(ctx, text, personName, list.ID, userID)
		if err != nil {
			return nil, err
		}
		slog.Info("quote routed to new list", "list_id", list.ID, "user_id", userID)
		return &RouteResult{Status: RoutedNewList, ListID: list.ID, Quote: quote}, nil

	case lists.MatchSingle:
		listID := match.ListIDs[0]
		quote, err := s.Add(ctx, text, personName, listID, userID)
		if err != nil {
			return nil, err
		}
		return &RouteResult{Status: RoutedExisting, ListID: listID, Quote: quote}, nil

	default:
		return &RouteResult{Status: NeedsSelection, CandidateIDs: match.ListIDs}, nil
	}
}

// FanoutResult is the per-list outcome of an ambiguous-name confirmation.
type FanoutResult struct {
	ListID string
	Quote  *store.Quote
	Err    error
}

// AddToLists writes the quote once per selected list, in parallel and fully
// independently: one list's failure neither cancels nor rolls back the
// others. Results come back in the order the ids were given.
func (s *Service) AddToLists(ctx context.Context, userID, personName, text string, listIDs []string) []FanoutResult {
	results := make([]FanoutResult, len(listIDs))
	var wg sync.WaitGroup
	for i, listID := range listIDs {
		wg.Add(1)
		go func(i int, listID string) {
			defer wg.Done()
			quote, err := s.Add(ctx, text, personName, listID, userID)
			results[i] = FanoutResult{ListID: listID, Quote: quote, Err: err}
		}(i, listID)
	}
	wg.Wait()
	return results
}
