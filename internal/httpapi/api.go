// Package httpapi exposes the core services over HTTP. Identity is an
// opaque stable user id supplied by the caller in the X-User-ID header;
// authentication itself happens upstream.
package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mgalvez/quotelists-go/internal/collab"
	"github.com/mgalvez/quotelists-go/internal/export"
	"github.com/mgalvez/quotelists-go/internal/importer"
	"github.com/mgalvez/quotelists-go/internal/lists"
	"github.com/mgalvez/quotelists-go/internal/quotes"
	"github.com/mgalvez/quotelists-go/internal/store"
)

// API wires the services to fiber handlers.
type API struct {
	lists          *lists.Service
	quotes         *quotes.Service
	collab         *collab.Service
	exporter       *export.Assembler
	importer       *importer.Service
	quoteStore     store.Quotes
	recencyEnabled bool
}

// New creates the API and registers its routes on a new fiber app.
func New(listSvc *lists.Service, quoteSvc *quotes.Service, collabSvc *collab.Service, exporter *export.Assembler, importSvc *importer.Service, quoteStore store.Quotes, recencyEnabled bool) *fiber.App {
	api := &API{
		lists:          listSvc,
		quotes:         quoteSvc,
		collab:         collabSvc,
		exporter:       exporter,
		importer:       importSvc,
		quoteStore:     quoteStore,
		recencyEnabled: recencyEnabled,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api", requireUser)
	v1.Get("/lists", api.handleListLists)
	v1.Post("/lists", api.handleCreateList)
	v1.Get("/lists/:id/quotes", api.handleListQuotes)
	v1.Put("/lists/:id/alias", api.handleSetAlias)
	v1.Post("/lists/:id/leave", api.handleLeave)
	v1.Post("/lists/merge", api.handleMerge)
	v1.Delete("/lists/:id/collaborators/:userId", api.handleRemoveCollaborator)

	v1.Post("/quotes", api.handleAddQuote)
	v1.Post("/quotes/confirm", api.handleConfirmQuote)

	v1.Post("/invites", api.handleCreateInvite)
	v1.Post("/invites/:id/redeem", api.handleRedeemInvite)

	v1.Post("/import", api.handleImport)
	v1.Get("/export", api.handleExport)

	return app
}

const userKey = "userID"

// requireUser pulls the opaque user id off the request.
func requireUser(c *fiber.Ctx) error {
	userID := c.Get("X-User-ID")
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing X-User-ID header")
	}
	c.Locals(userKey, userID)
	return c.Next()
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(userKey).(string)
	return id
}

// errorHandler maps the store error taxonomy onto status codes.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, store.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
