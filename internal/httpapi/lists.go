package httpapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mgalvez/quotelists-go/internal/quotes"
)

type listEntry struct {
	ID            string   `json:"id"`
	PersonName    string   `json:"personName"`
	Alias         string   `json:"alias"`
	Collaborators []string `json:"collaborators"`
	QuoteCount    int      `json:"quoteCount"`
	LastQuotedAt  string   `json:"lastQuotedAt,omitempty"`
}

// handleListLists returns the user's lists with resolved aliases, quote
// counts, and, when enabled, the best-effort last-quoted recency hint.
func (a *API) handleListLists(c *fiber.Ctx) error {
	uid := userID(c)

	userLists, err := a.lists.ForUser(c.Context(), uid)
	if err != nil {
		return err
	}
	aliases, err := a.lists.ResolvedAliases(c.Context(), uid)
	if err != nil {
		return err
	}

	ids := make([]string, len(userLists))
	for i, l := range userLists {
		ids[i] = l.ID
	}
	all, err := quotes.CollectByLists(c.Context(), a.quoteStore, ids)
	if err != nil {
		return err
	}
	grouped := quotes.GroupByList(all)
	recency := quotes.LastQuoted(c.Context(), a.quoteStore, userLists, aliases, a.recencyEnabled)

	entries := make([]listEntry, 0, len(userLists))
	for _, l := range userLists {
		entry := listEntry{
			ID:            l.ID,
			PersonName:    l.PersonName,
			Alias:         aliases[l.ID],
			Collaborators: []string(l.Collaborators),
			QuoteCount:    len(grouped[l.ID]),
		}
		if last, ok := recency[strings.ToLower(aliases[l.ID])]; ok {
			entry.LastQuotedAt = last.UTC().Format(time.RFC3339)
		}
		entries = append(entries, entry)
	}
	return c.JSON(fiber.Map{"lists": entries})
}

func (a *API) handleCreateList(c *fiber.Ctx) error {
	var body struct {
		PersonName string `json:"personName"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	list, err := a.lists.Create(c.Context(), body.PersonName, userID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

func (a *API) handleListQuotes(c *fiber.Ctx) error {
	listQuotes, err := a.quotes.ForList(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"quotes": listQuotes})
}

func (a *API) handleSetAlias(c *fiber.Ctx) error {
	var body struct {
		Alias string `json:"alias"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := a.lists.SetAlias(c.Context(), userID(c), c.Params("id"), body.Alias); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (a *API) handleLeave(c *fiber.Ctx) error {
	forkID, err := a.lists.Leave(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"newListId": forkID})
}

func (a *API) handleMerge(c *fiber.Ctx) error {
	var body struct {
		KeepListID  string `json:"keepListId"`
		MergeListID string `json:"mergeListId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	if err := a.lists.Merge(c.Context(), body.KeepListID, body.MergeListID, userID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (a *API) handleRemoveCollaborator(c *fiber.Ctx) error {
	if err := a.collab.RemoveCollaborator(c.Context(), c.Params("id"), c.Params("userId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
