// Package collab implements invite issuance and redemption and collaborator
// set mutation. Invites are bearer tokens: possession of the id is the whole
// credential, and redemption is idempotent per account.
package collab

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mgalvez/quotelists-go/internal/lists"
	"github.com/mgalvez/quotelists-go/internal/store"
	"golang.org/x/sync/errgroup"
)

// Service handles invites and collaborator membership.
type Service struct {
	invites  store.Invites
	listRepo store.Lists
	aliases  store.Aliases
	lists    *lists.Service
}

// NewService creates a new collaboration service
func NewService(invites store.Invites, listRepo store.Lists, aliases store.Aliases, listSvc *lists.Service) *Service {
	return &Service{invites: invites, listRepo: listRepo, aliases: aliases, lists: listSvc}
}

// CreateInvite issues an invite for a list, snapshotting the list's name at
// issuance; later renames do not touch outstanding invites.
func (s *Service) CreateInvite(ctx context.Context, listID, userID string) (*store.Invite, error) {
	if listID == "" || userID == "" {
		return nil, fmt.Errorf("%w: list id and user id are required", store.ErrValidation)
	}

	list, err := s.listRepo.Get(ctx, listID)
	if err != nil {
		return nil, err
	}

	invite := &store.Invite{
		ID:        uuid.NewString(),
		ListID:    listID,
		ListName:  list.PersonName,
		CreatedBy: userID,
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return invite, nil
}

// RedeemStatus reports how a redemption attempt ended.
type RedeemStatus int

const (
	// Joined means the user was added as a collaborator and an alias set.
	Joined RedeemStatus = iota
	// AlreadyMember means the user already collaborates on the list; the
	// redemption is a no-op, not an error.
	AlreadyMember
	// NeedsAlias means another of the user's lists already carries the
	// invite's name; the join is blocked until the caller supplies a
	// disambiguating alias.
	NeedsAlias
)

// RedeemResult is the outcome of redeeming an invite.
type RedeemResult struct {
	Status   RedeemStatus
	ListID   string
	ListName string
}

// Redeem loads the invite, the user's lists and the user's aliases in
// parallel, then joins the invite's list. An alias that case-insensitively
// collides with the invite's snapshot name on a different list blocks the
// join until alias (the caller-supplied override) is non-blank. On join the
// collaborator add happens before the alias write.
func (s *Service) Redeem(ctx context.Context, inviteID, userID, alias string) (*RedeemResult, error) {
	if inviteID == "" || userID == "" {
		return nil, fmt.Errorf("%w: invite id and user id are required", store.ErrValidation)
	}

	var (
		invite   *store.Invite
		resolved map[string]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invite, err = s.invites.Get(gctx, inviteID)
		return err
	})
	g.Go(func() error {
		var err error
		resolved, err = s.lists.ResolvedAliases(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	list, err := s.listRepo.Get(ctx, invite.ListID)
	if err != nil {
		return nil, fmt.Errorf("invite target: %w", err)
	}

	if list.HasCollaborator(userID) {
		return &RedeemResult{Status: AlreadyMember, ListID: list.ID, ListName: invite.ListName}, nil
	}

	resolvedAlias := strings.TrimSpace(alias)
	if resolvedAlias == "" {
		match := lists.MatchListIDs(resolved, invite.ListName)
		if match.Kind != lists.MatchNone {
			return &RedeemResult{Status: NeedsAlias, ListID: list.ID, ListName: invite.ListName}, nil
		}
		resolvedAlias = invite.ListName
	}

	if err := s.listRepo.AddCollaborator(ctx, list.ID, userID); err != nil {
		return nil, fmt.Errorf("failed to join list: %w", err)
	}
	if err := s.aliases.Set(ctx, userID, list.ID, resolvedAlias); err != nil {
		return nil, fmt.Errorf("failed to set alias on join: %w", err)
	}

	slog.Info("invite redeemed", "invite_id", inviteID, "list_id", list.ID, "user_id", userID)
	return &RedeemResult{Status: Joined, ListID: list.ID, ListName: invite.ListName}, nil
}

// AddCollaborator grants a user access to a list. Idempotent.
func (s *Service) AddCollaborator(ctx context.Context, listID, userID string) error {
	if listID == "" || userID == "" {
		return fmt.Errorf("%w: list id and user id are required", store.ErrValidation)
	}
	return s.listRepo.AddCollaborator(ctx, listID, userID)
}

// RemoveCollaborator revokes a user's access to a list. Idempotent.
func (s *Service) RemoveCollaborator(ctx context.Context, listID, userID string) error {
	if listID == "" || userID == "" {
		return fmt.Errorf("%w: list id and user id are required", store.ErrValidation)
	}
	return s.listRepo.RemoveCollaborator(ctx, listID, userID)
}
