package quotes

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mgalvez/quotelists-go/internal/store"
)

// Order selects the direction SortByDate sorts in.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// GroupByList partitions quotes by list id. The partition is stable: every
// quote lands in exactly one group and the order within a group matches the
// input order. No sorting happens here; ordering is the caller's concern.
func GroupByList(quotes []store.Quote) map[string][]store.Quote {
	groups := make(map[string][]store.Quote)
	for _, q := range quotes {
		groups[q.ListID] = append(groups[q.ListID], q)
	}
	return groups
}

// SortByDate returns a new slice ordered by creation time. The input is not
// mutated. Quotes with a zero timestamp sort as oldest: first under asc,
// last under desc.
func SortByDate(quotes []store.Quote, order Order) []store.Quote {
	sorted := append([]store.Quote(nil), quotes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == OrderAsc {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[j].CreatedAt.Before(sorted[i].CreatedAt)
	})
	return sorted
}

// CollectByLists fetches quotes for any number of lists, chunking the id set
// under the store's in-filter ceiling, concatenating the per-chunk results
// and re-sorting ascending, since ordering across chunks is not guaranteed.
func CollectByLists(ctx context.Context, qs store.Quotes, listIDs []string) ([]store.Quote, error) {
	var merged []store.Quote
	for _, chunk := range store.Chunk(listIDs, store.MaxInFilter) {
		quotes, err := qs.ByLists(ctx, chunk)
		if err != nil {
			return nil, err
		}
		merged = append(merged, quotes...)
	}
	return SortByDate(merged, OrderAsc), nil
}

// LastQuoted computes, per case-folded resolved alias, the most recent quote
// timestamp across all lists carrying that alias. The result only biases
// presentation ordering, so the computation is strictly best-effort: when
// disabled or on any fetch failure it returns an empty map and never an
// error.
func LastQuoted(ctx context.Context, qs store.Quotes, lists []store.QuoteList, aliases map[string]string, enabled bool) map[string]time.Time {
	recency := map[string]time.Time{}
	if !enabled || len(lists) == 0 {
		return recency
	}

	aliasByList := make(map[string]string, len(lists))
	ids := make([]string, 0, len(lists))
	for _, list := range lists {
		alias := aliases[list.ID]
		if alias == "" {
			alias = list.PersonName
		}
		aliasByList[list.ID] = strings.ToLower(alias)
		ids = append(ids, list.ID)
	}

	quotes, err := CollectByLists(ctx, qs, ids)
	if err != nil {
		slog.Debug("recency computation failed, ignoring", "error", err)
		return map[string]time.Time{}
	}

	for _, q := range quotes {
		alias := aliasByList[q.ListID]
		if q.CreatedAt.After(recency[alias]) {
			recency[alias] = q.CreatedAt
		}
	}
	return recency
}
