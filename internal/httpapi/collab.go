package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mgalvez/quotelists-go/internal/collab"
)

func (a *API) handleCreateInvite(c *fiber.Ctx) error {
	var body struct {
		ListID string `json:"listId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	invite, err := a.collab.CreateInvite(c.Context(), body.ListID, userID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(invite)
}

// handleRedeemInvite redeems a bearer invite. The alias field is only
// needed when the join collides with an existing alias; the first attempt
// normally omits it, and a "conflict" response asks the caller to retry
// with one.
func (a *API) handleRedeemInvite(c *fiber.Ctx) error {
	var body struct {
		Alias string `json:"alias"`
	}
	// Body is optional on a plain redeem.
	_ = c.BodyParser(&body)

	result, err := a.collab.Redeem(c.Context(), c.Params("id"), userID(c), body.Alias)
	if err != nil {
		return err
	}

	switch result.Status {
	case collab.AlreadyMember:
		return c.JSON(fiber.Map{
			"status":   "already_member",
			"listId":   result.ListID,
			"listName": result.ListName,
		})
	case collab.NeedsAlias:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":   "alias_conflict",
			"listId":   result.ListID,
			"listName": result.ListName,
		})
	default:
		return c.JSON(fiber.Map{
			"status":   "joined",
			"listId":   result.ListID,
			"listName": result.ListName,
		})
	}
}
