package quotes

import (
	"context"
	"testing"

	"github.com/mgalvez/quotelists-go/internal/lists"
	"github.com/mgalvez/quotelists-go/internal/store"
	"github.com/mgalvez/quotelists-go/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) (*Service, *lists.Service, *storetest.Stores) {
	t.Helper()
	stores := storetest.New()
	listSvc := lists.NewService(stores.Lists, stores.Aliases, stores.Quotes)
	return NewService(listSvc, stores.Quotes), listSvc, stores
}

func TestRoute_NoMatchCreatesListAndQuote(t *testing.T) {
	svc, _, stores := newServices(t)
	ctx := context.Background()

	result, err := svc.Route(ctx, "user-1", "Mike", "a wise thing")
	require.NoError(t, err)

	assert.Equal(t, RoutedNewList, result.Status)
	assert.NotEmpty(t, result.ListID)
	require.NotNil(t, result.Quote)
	assert.Equal(t, "Mike", result.Quote.PersonAlias)

	created, err := stores.Lists.Get(ctx, result.ListID)
	require.NoError(t, err)
	assert.Equal(t, "Mike", created.PersonName)
	assert.Len(t, stores.Quotes.All(), 1)
}

func TestRoute_SingleMatchWritesDirectly(t *testing.T) {
	svc, listSvc, stores := newServices(t)
	ctx := context.Background()

	existing, err := listSvc.Create(ctx, "Mike", "user-1")
	require.NoError(t, err)

	result, err := svc.Route(ctx, "user-1", "mike", "case folded entry")
	require.NoError(t, err)

	assert.Equal(t, RoutedExisting, result.Status)
	assert.Equal(t, existing.ID, result.ListID)

	// Exactly one list, exactly one quote; no extra list was created.
	userLists, err := stores.Lists.ByCollaborator(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, userLists, 1)
	assert.Len(t, stores.Quotes.All(), 1)

	// The alias snapshot keeps the typed casing.
	assert.Equal(t, "mike", result.Quote.PersonAlias)
}

func TestRoute_AmbiguousReturnsCandidatesWithoutWriting(t *testing.T) {
	svc, listSvc, stores := newServices(t)
	ctx := context.Background()

	l1, err := listSvc.Create(ctx, "Mike", "user-1")
	require.NoError(t, err)
	l2, err := listSvc.Create(ctx, "Michael", "user-1")
	require.NoError(t, err)
	require.NoError(t, listSvc.SetAlias(ctx, "user-1", l2.ID, "mike"))

	result, err := svc.Route(ctx, "user-1", "MIKE", "ambiguous entry")
	require.NoError(t, err)

	assert.Equal(t, NeedsSelection, result.Status)
	assert.ElementsMatch(t, []string{l1.ID, l2.ID}, result.CandidateIDs)
	assert.Nil(t, result.Quote)
	assert.Empty(t, stores.Quotes.All())
}

func TestRoute_BlankInputsRejected(t *testing.T) {
	svc, _, _ := newServices(t)
	ctx := context.Background()

	_, err := svc.Route(ctx, "user-1", "", "text")
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = svc.Route(ctx, "user-1", "Mike", "   ")
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestAddToLists_IndependentFanout(t *testing.T) {
	svc, listSvc, stores := newServices(t)
	ctx := context.Background()

	l1, err := listSvc.Create(ctx, "Mike", "user-1")
	require.NoError(t, err)
	l2, err := listSvc.Create(ctx, "Michael", "user-1")
	require.NoError(t, err)

	results := svc.AddToLists(ctx, "user-1", "Mike", "fanned out", []string{l1.ID, l2.ID})

	require.Len(t, results, 2)
	for _, r := range results {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Quote)
	}
	assert.Equal(t, l1.ID, results[0].ListID)
	assert.Equal(t, l2.ID, results[1].ListID)
	assert.Len(t, stores.Quotes.All(), 2)
}

func TestAddToLists_PartialFailureLeavesOthers(t *testing.T) {
	svc, listSvc, stores := newServices(t)
	ctx := context.Background()

	l1, err := listSvc.Create(ctx, "Mike", "user-1")
	require.NoError(t, err)

	// An empty list id fails validation; the valid write still lands.
	results := svc.AddToLists(ctx, "user-1", "Mike", "partial", []string{l1.ID, ""})

	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.Len(t, stores.Quotes.All(), 1)
}

func TestAdd_SnapshotAliasNotRetroactive(t *testing.T) {
	svc, listSvc, stores := newServices(t)
	ctx := context.Background()

	list, err := listSvc.Create(ctx, "Mike", "user-1")
	require.NoError(t, err)

	quote, err := svc.Add(ctx, "snapshot", "Mike", list.ID, "user-1")
	require.NoError(t, err)

	require.NoError(t, listSvc.SetAlias(ctx, "user-1", list.ID, "Mikey"))

	stored := stores.Quotes.All()
	require.Len(t, stored, 1)
	assert.Equal(t, "Mike", stored[0].PersonAlias)
	assert.Equal(t, quote.ID, stored[0].ID)
}
