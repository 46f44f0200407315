// Package storetest provides in-memory store implementations for service
// tests. Writes are applied under a mutex; timestamps are assigned from a
// deterministic clock (one second apart, in write order) so ordering
// assertions are stable.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mgalvez/quotelists-go/internal/store"
)

// Epoch is the base timestamp handed out by the fake clock.
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Stores bundles the in-memory repositories behind one clock.
type Stores struct {
	Lists   *ListStore
	Aliases *AliasStore
	Quotes  *QuoteStore
	Invites *InviteStore

	mu    sync.Mutex
	ticks int
}

// New creates an empty in-memory store set.
func New() *Stores {
	s := &Stores{}
	s.Lists = &ListStore{stores: s, byID: map[string]*store.QuoteList{}}
	s.Aliases = &AliasStore{stores: s, byKey: map[string]string{}}
	s.Quotes = &QuoteStore{stores: s}
	s.Invites = &InviteStore{stores: s, byID: map[string]*store.Invite{}}
	return s
}

func (s *Stores) now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks++
	return Epoch.Add(time.Duration(s.ticks) * time.Second)
}

// ListStore is the in-memory store.Lists implementation.
type ListStore struct {
	stores *Stores
	mu     sync.Mutex
	byID   map[string]*store.QuoteList
	order  []string

	CreateErr error
	GetErr    error
}

func (s *ListStore) Create(_ context.Context, list *store.QuoteList) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if list.CreatedAt.IsZero() {
		list.CreatedAt = s.stores.now()
	}
	cp := *list
	s.byID[list.ID] = &cp
	s.order = append(s.order, list.ID)
	return nil
}

func (s *ListStore) Get(_ context.Context, id string) (*store.QuoteList, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *list
	return &cp, nil
}

func (s *ListStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}

func (s *ListStore) ByCollaborator(_ context.Context, userID string) ([]store.QuoteList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lists []store.QuoteList
	for _, id := range s.order {
		list, ok := s.byID[id]
		if ok && list.HasCollaborator(userID) {
			lists = append(lists, *list)
		}
	}
	return lists, nil
}

func (s *ListStore) AddCollaborator(_ context.Context, listID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.byID[listID]
	if !ok {
		return nil
	}
	if !list.HasCollaborator(userID) {
		list.Collaborators = append(list.Collaborators, userID)
	}
	return nil
}

func (s *ListStore) RemoveCollaborator(_ context.Context, listID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.byID[listID]
	if !ok {
		return nil
	}
	kept := list.Collaborators[:0]
	for _, id := range list.Collaborators {
		if id != userID {
			kept = append(kept, id)
		}
	}
	list.Collaborators = kept
	return nil
}

// AliasStore is the in-memory store.Aliases implementation.
type AliasStore struct {
	stores *Stores
	mu     sync.Mutex
	byKey  map[string]string

	SetErr error
}

func aliasKey(userID, listID string) string {
	return userID + "/" + listID
}

func (s *AliasStore) Set(_ context.Context, userID, listID, alias string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey[aliasKey(userID, listID)] = alias
	return nil
}

func (s *AliasStore) Get(_ context.Context, userID, listID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alias, ok := s.byKey[aliasKey(userID, listID)]
	if !ok {
		return "", store.ErrNotFound
	}
	return alias, nil
}

func (s *AliasStore) Delete(_ context.Context, userID, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byKey, aliasKey(userID, listID))
	return nil
}

func (s *AliasStore) ByUser(_ context.Context, userID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	aliases := map[string]string{}
	prefix := userID + "/"
	for key, alias := range s.byKey {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			aliases[key[len(prefix):]] = alias
		}
	}
	return aliases, nil
}

// QuoteStore is the in-memory store.Quotes implementation.
type QuoteStore struct {
	stores *Stores
	mu     sync.Mutex
	quotes []store.Quote

	CreateErr  error
	ByListsErr error
}

func (s *QuoteStore) Create(_ context.Context, quote *store.Quote) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = s.stores.now()
	}
	s.quotes = append(s.quotes, *quote)
	return nil
}

func (s *QuoteStore) ByList(_ context.Context, listID string) ([]store.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var quotes []store.Quote
	for _, q := range s.quotes {
		if q.ListID == listID {
			quotes = append(quotes, q)
		}
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].CreatedAt.Before(quotes[j].CreatedAt)
	})
	return quotes, nil
}

func (s *QuoteStore) ByLists(_ context.Context, listIDs []string) ([]store.Quote, error) {
	if s.ByListsErr != nil {
		return nil, s.ByListsErr
	}
	if len(listIDs) > store.MaxInFilter {
		return nil, fmt.Errorf("%w: %d ids", store.ErrFilterTooLarge, len(listIDs))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := map[string]bool{}
	for _, id := range listIDs {
		wanted[id] = true
	}
	var quotes []store.Quote
	for _, q := range s.quotes {
		if wanted[q.ListID] {
			quotes = append(quotes, q)
		}
	}
	return quotes, nil
}

func (s *QuoteStore) SetList(_ context.Context, quoteID, listID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.quotes {
		if s.quotes[i].ID == quoteID {
			s.quotes[i].ListID = listID
		}
	}
	return nil
}

// All returns a copy of every stored quote, for assertions.
func (s *QuoteStore) All() []store.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]store.Quote(nil), s.quotes...)
}

// InviteStore is the in-memory store.Invites implementation.
type InviteStore struct {
	stores *Stores
	mu     sync.Mutex
	byID   map[string]*store.Invite
}

func (s *InviteStore) Create(_ context.Context, invite *store.Invite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if invite.CreatedAt.IsZero() {
		invite.CreatedAt = s.stores.now()
	}
	cp := *invite
	s.byID[invite.ID] = &cp
	return nil
}

func (s *InviteStore) Get(_ context.Context, id string) (*store.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite, ok := s.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *invite
	return &cp, nil
}

func (s *InviteStore) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for id, invite := range s.byID {
		if invite.CreatedAt.Before(cutoff) {
			delete(s.byID, id)
			deleted++
		}
	}
	return deleted, nil
}

var (
	_ store.Lists   = (*ListStore)(nil)
	_ store.Aliases = (*AliasStore)(nil)
	_ store.Quotes  = (*QuoteStore)(nil)
	_ store.Invites = (*InviteStore)(nil)
)
