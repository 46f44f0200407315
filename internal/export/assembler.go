// Package export builds denormalized snapshots of a user's lists and quotes
// for offline download. Internal ids never leave through the export format.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/mgalvez/quotelists-go/internal/quotes"
	"github.com/mgalvez/quotelists-go/internal/store"
	"golang.org/x/sync/errgroup"
)

const dayMillis = 24 * 60 * 60 * 1000

// Options narrows an export to one list and/or a date range. From and To
// name whole days: From is inclusive from the start of its day, To is
// inclusive through the end of its day. Any instant within the day selects
// the same window.
type Options struct {
	ListID string
	From   *time.Time
	To     *time.Time
}

// QuoteExport is one flattened quote. CreatedAt is RFC 3339, or empty when
// the stored quote carries no timestamp.
type QuoteExport struct {
	Text        string `json:"text"`
	PersonAlias string `json:"personAlias"`
	CreatedAt   string `json:"createdAt"`
	CreatedBy   string `json:"createdBy"`
}

// ListExport is one list entry: the user's resolved display name and the
// filtered quotes.
type ListExport struct {
	Name   string        `json:"name"`
	Quotes []QuoteExport `json:"quotes"`
}

// Snapshot is the full export document.
type Snapshot struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Lists       []ListExport `json:"lists"`
}

// Assembler builds export snapshots.
type Assembler struct {
	lists   store.Lists
	aliases store.Aliases
	quotes  store.Quotes
}

// NewAssembler creates a new export assembler
func NewAssembler(lists store.Lists, aliases store.Aliases, qs store.Quotes) *Assembler {
	return &Assembler{lists: lists, aliases: aliases, quotes: qs}
}

// Build loads the user's lists and aliases in parallel, fetches quotes for
// the selected lists through the chunked in-filter path, applies the date
// window, and flattens the result. Lists left with zero quotes stay in the
// snapshot unless a From filter was applied: a plain export shows every
// list, a from-filtered one hides lists with nothing in range.
func (a *Assembler) Build(ctx context.Context, userID string, opts Options) (*Snapshot, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", store.ErrValidation)
	}

	var (
		userLists []store.QuoteList
		aliases   map[string]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		userLists, err = a.lists.ByCollaborator(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		aliases, err = a.aliases.ByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load lists for export: %w", err)
	}

	if opts.ListID != "" {
		narrowed := userLists[:0]
		for _, list := range userLists {
			if list.ID == opts.ListID {
				narrowed = append(narrowed, list)
			}
		}
		if len(narrowed) == 0 {
			return nil, fmt.Errorf("%w: list %s", store.ErrNotFound, opts.ListID)
		}
		userLists = narrowed
	}

	ids := make([]string, len(userLists))
	for i, list := range userLists {
		ids[i] = list.ID
	}

	all, err := quotes.CollectByLists(ctx, a.quotes, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes for export: %w", err)
	}
	byList := quotes.GroupByList(all)

	snapshot := &Snapshot{GeneratedAt: time.Now().UTC(), Lists: []ListExport{}}
	for _, list := range userLists {
		filtered := filterByDate(byList[list.ID], opts.From, opts.To)
		if len(filtered) == 0 && opts.From != nil {
			continue
		}

		name := aliases[list.ID]
		if name == "" {
			name = list.PersonName
		}

		entry := ListExport{Name: name, Quotes: make([]QuoteExport, 0, len(filtered))}
		for _, q := range filtered {
			createdAt := ""
			if !q.CreatedAt.IsZero() {
				createdAt = q.CreatedAt.UTC().Format(time.RFC3339)
			}
			entry.Quotes = append(entry.Quotes, QuoteExport{
				Text:        q.Text,
				PersonAlias: q.PersonAlias,
				CreatedAt:   createdAt,
				CreatedBy:   q.CreatedBy,
			})
		}
		snapshot.Lists = append(snapshot.Lists, entry)
	}
	return snapshot, nil
}

// filterByDate keeps quotes inside the inclusive day window, comparing
// milliseconds. Both bounds name whole days: From is truncated to the start
// of its day, and To's cutoff is the start of its day plus 24 hours,
// exclusive.
func filterByDate(qs []store.Quote, from, to *time.Time) []store.Quote {
	if from == nil && to == nil {
		return qs
	}
	var kept []store.Quote
	for _, q := range qs {
		ms := q.CreatedAt.UnixMilli()
		if q.CreatedAt.IsZero() {
			ms = 0
		}
		if from != nil && ms < startOfDay(*from).UnixMilli() {
			continue
		}
		if to != nil && ms >= startOfDay(*to).UnixMilli()+dayMillis {
			continue
		}
		kept = append(kept, q)
	}
	return kept
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
