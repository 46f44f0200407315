package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mgalvez/quotelists-go/internal/quotes"
)

// handleAddQuote is the quote-entry point. The response mirrors the three
// routing states: the quote landed in a new list, it landed in the single
// matching list, or the name is ambiguous and the caller must confirm a
// subset of candidates via /quotes/confirm.
func (a *API) handleAddQuote(c *fiber.Ctx) error {
	var body struct {
		Person string `json:"person"`
		Text   string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	result, err := a.quotes.Route(c.Context(), userID(c), body.Person, body.Text)
	if err != nil {
		return err
	}

	switch result.Status {
	case quotes.RoutedNewList:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"status":      "created",
			"listCreated": true,
			"listId":      result.ListID,
			"quote":       result.Quote,
		})
	case quotes.RoutedExisting:
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"status":      "created",
			"listCreated": false,
			"listId":      result.ListID,
			"quote":       result.Quote,
		})
	default:
		return c.JSON(fiber.Map{
			"status":       "ambiguous",
			"candidateIds": result.CandidateIDs,
		})
	}
}

// handleConfirmQuote resolves an ambiguous entry: the quote is written once
// per selected list, each write independent of the others.
func (a *API) handleConfirmQuote(c *fiber.Ctx) error {
	var body struct {
		Person  string   `json:"person"`
		Text    string   `json:"text"`
		ListIDs []string `json:"listIds"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if len(body.ListIDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "listIds is required")
	}

	results := a.quotes.AddToLists(c.Context(), userID(c), body.Person, body.Text, body.ListIDs)

	type outcome struct {
		ListID string `json:"listId"`
		OK     bool   `json:"ok"`
		Error  string `json:"error,omitempty"`
	}
	outcomes := make([]outcome, len(results))
	for i, r := range results {
		outcomes[i] = outcome{ListID: r.ListID, OK: r.Err == nil}
		if r.Err != nil {
			outcomes[i].Error = r.Err.Error()
		}
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"results": outcomes})
}
