package collab

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mgalvez/quotelists-go/internal/lists"
	"github.com/mgalvez/quotelists-go/internal/store"
	"github.com/mgalvez/quotelists-go/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCollab(t *testing.T) (*Service, *lists.Service, *storetest.Stores) {
	t.Helper()
	stores := storetest.New()
	listSvc := lists.NewService(stores.Lists, stores.Aliases, stores.Quotes)
	return NewService(stores.Invites, stores.Lists, stores.Aliases, listSvc), listSvc, stores
}

func TestCreateInvite_SnapshotsListName(t *testing.T) {
	svc, listSvc, _ := newCollab(t)
	ctx := context.Background()

	list, err := listSvc.Create(ctx, "Mike", "owner")
	require.NoError(t, err)

	invite, err := svc.CreateInvite(ctx, list.ID, "owner")
	require.NoError(t, err)
	assert.NotEmpty(t, invite.ID)
	assert.Equal(t, list.ID, invite.ListID)
	assert.Equal(t, "Mike", invite.ListName)
	assert.Equal(t, "owner", invite.CreatedBy)
}

func TestCreateInvite_MissingList(t *testing.T) {
	svc, _, _ := newCollab(t)

	_, err := svc.CreateInvite(context.Background(), "no-such-list", "owner")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedeem_JoinsAndSetsAlias(t *testing.T) {
	svc, listSvc, stores := newCollab(t)
	ctx := context.Background()

	list, err := listSvc.Create(ctx, "Mike", "owner")
	require.NoError(t, err)
	invite, err := svc.CreateInvite(ctx, list.ID, "owner")
	require.NoError(t, err)

	result, err := svc.Redeem(ctx, invite.ID, "joiner", "")
	require.NoError(t, err)

	assert.Equal(t, Joined, result.Status)
	assert.Equal(t, list.ID, result.ListID)

	after, err := stores.Lists.Get(ctx, list.ID)
	require.NoError(t, err)
	assert.True(t, after.HasCollaborator("joiner"))

	alias, err := stores.Aliases.Get(ctx, "joiner", list.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mike", alias)
}

func TestRedeem_AlreadyMemberIsNoop(t *testing.T) {
	svc, listSvc, stores := newCollab(t)
	ctx := context.Background()

	list, err := listSvc.Create(ctx, "Mike", "owner")
	require.NoError(t, err)
	invite, err := svc.CreateInvite(ctx, list.ID, "owner")
	require.NoError(t, err)

	result, err := svc.Redeem(ctx, invite.ID, "owner", "")
	require.NoError(t, err)

	assert.Equal(t, AlreadyMember, result.Status)

	after, err := stores.Lists.Get(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner"}, []string(after.Collaborators))
}

func TestRedeem_AliasConflictBlocksUntilResolved(t *testing.T) {
	svc, listSvc, stores := newCollab(t)
	ctx := context.Background()

	// The joiner already tracks their own "Mike".
	own, err := listSvc.Create(ctx, "mike", "joiner")
	require.NoError(t, err)

	shared, err := listSvc.Create(ctx, "Mike", "owner")
	require.NoError(t, err)
	invite, err := svc.CreateInvite(ctx, shared.ID, "owner")
	require.NoError(t, err)

	// Without a disambiguating alias the join is blocked.
	result, err := svc.Redeem(ctx, invite.ID, "joiner", "")
	require.NoError(t, err)
	assert.Equal(t, NeedsAlias, result.Status)
	assert.Equal(t, "Mike", result.ListName)

	after, err := stores.Lists.Get(ctx, shared.ID)
	require.NoError(t, err)
	assert.False(t, after.HasCollaborator("joiner"))

	// Retrying with an alias completes the join.
	result, err = svc.Redeem(ctx, invite.ID, "joiner", "Work Mike")
	require.NoError(t, err)
	assert.Equal(t, Joined, result.Status)

	alias, err := stores.Aliases.Get(ctx, "joiner", shared.ID)
	require.NoError(t, err)
	assert.Equal(t, "Work Mike", alias)

	// The joiner's own list is untouched.
	ownAlias, err := stores.Aliases.Get(ctx, "joiner", own.ID)
	require.NoError(t, err)
	assert.Equal(t, "mike", ownAlias)
}

func TestRedeem_MissingInvite(t *testing.T) {
	svc, _, _ := newCollab(t)

	_, err := svc.Redeem(context.Background(), "no-such-invite", "joiner", "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCollaboratorMutations_Idempotent(t *testing.T) {
	svc, listSvc, stores := newCollab(t)
	ctx := context.Background()

	list, err := listSvc.Create(ctx, "Mike", "owner")
	require.NoError(t, err)

	require.NoError(t, svc.AddCollaborator(ctx, list.ID, "bob"))
	require.NoError(t, svc.AddCollaborator(ctx, list.ID, "bob"))

	after, err := stores.Lists.Get(ctx, list.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"owner", "bob"}, []string(after.Collaborators))

	require.NoError(t, svc.RemoveCollaborator(ctx, list.ID, "bob"))
	require.NoError(t, svc.RemoveCollaborator(ctx, list.ID, "bob"))

	after, err = stores.Lists.Get(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner"}, []string(after.Collaborators))
}

func TestCleaner_RemovesStaleInvites(t *testing.T) {
	stores := storetest.New()
	ctx := context.Background()

	old := &store.Invite{ID: "old", ListID: "l1", ListName: "Mike", CreatedBy: "owner",
		CreatedAt: time.Now().Add(-48 * time.Hour)}
	fresh := &store.Invite{ID: "fresh", ListID: "l1", ListName: "Mike", CreatedBy: "owner",
		CreatedAt: time.Now()}
	require.NoError(t, stores.Invites.Create(ctx, old))
	require.NoError(t, stores.Invites.Create(ctx, fresh))

	cleaner := NewCleaner(stores.Invites, CleanerConfig{
		CleanInterval: time.Minute,
		KeepDuration:  24 * time.Hour,
	}, discardLogger())

	require.NoError(t, cleaner.CleanOnce(ctx))

	_, err := stores.Invites.Get(ctx, "old")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = stores.Invites.Get(ctx, "fresh")
	assert.NoError(t, err)
}
