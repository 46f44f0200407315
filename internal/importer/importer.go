// Package importer processes bulk quote uploads. Rows are handled
// sequentially against a running alias map, so a person appearing several
// times in one file gets a single new list. Per-row failures are collected,
// never fatal; a bad row costs one entry in the error list, not the batch.
package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mgalvez/quotelists-go/internal/lists"
	"github.com/mgalvez/quotelists-go/internal/quotes"
	"github.com/mgalvez/quotelists-go/internal/store"
)

// snippetLen bounds the amount of offending text carried in a row error.
const snippetLen = 40

// Row is one validated import record.
type Row struct {
	Person string
	Text   string
	Date   *time.Time
}

// RowError describes a single failed row.
type RowError struct {
	Line    int    `json:"line"`
	Snippet string `json:"snippet"`
	Reason  string `json:"reason"`
}

// Result summarizes a completed import batch.
type Result struct {
	Created      int        `json:"created"`
	ListsCreated int        `json:"lists_created"`
	Errors       []RowError `json:"errors"`
}

// Service runs import batches.
type Service struct {
	lists  *lists.Service
	quotes *quotes.Service
}

// NewService creates a new import service
func NewService(listSvc *lists.Service, quoteSvc *quotes.Service) *Service {
	return &Service{lists: listSvc, quotes: quoteSvc}
}

// Run imports rows for a user. Lists created during the batch are recorded
// in the local alias map immediately, so later rows for the same person
// match them. When a name matches several existing lists the first match
// wins; bulk import never fans out.
func (s *Service) Run(ctx context.Context, rows []Row, userID string) (*Result, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", store.ErrValidation)
	}

	aliasMap, err := s.lists.ResolvedAliases(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load alias map for import: %w", err)
	}

	result := &Result{Errors: []RowError{}}
	for i, row := range rows {
		if err := s.importRow(ctx, row, userID, aliasMap, result); err != nil {
			result.Errors = append(result.Errors, RowError{
				Line:    i + 1,
				Snippet: truncate(row.Text, snippetLen),
				Reason:  err.Error(),
			})
		}
	}
	return result, nil
}

func (s *Service) importRow(ctx context.Context, row Row, userID string, aliasMap map[string]string, result *Result) error {
	person := strings.TrimSpace(row.Person)
	if person == "" {
		return fmt.Errorf("%w: person name is required", store.ErrValidation)
	}
	if strings.TrimSpace(row.Text) == "" {
		return fmt.Errorf("%w: quote text is required", store.ErrValidation)
	}

	var targetID string
	match := lists.MatchListIDs(aliasMap, person)
	if match.Kind == lists.MatchNone {
		list, err := s.lists.Create(ctx, person, userID)
		if err != nil {
			return err
		}
		aliasMap[list.ID] = person
		result.ListsCreated++
		targetID = list.ID
	} else {
		targetID = match.ListIDs[0]
	}

	at := time.Time{}
	if row.Date != nil {
		at = *row.Date
	}
	if _, err := s.quotes.AddAt(ctx, row.Text, person, targetID, userID, at); err != nil {
		return err
	}
	result.Created++
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
