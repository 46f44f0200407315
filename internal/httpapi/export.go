package httpapi

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mgalvez/quotelists-go/internal/export"
	"github.com/mgalvez/quotelists-go/internal/importer"
)

// handleExport streams a snapshot of the user's lists and quotes as a JSON
// download. from/to are YYYY-MM-DD and interpreted as UTC day boundaries.
func (a *API) handleExport(c *fiber.Ctx) error {
	opts := export.Options{ListID: c.Query("listId")}

	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.UTC)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid from date")
		}
		opts.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.UTC)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid to date")
		}
		opts.To = &t
	}

	snapshot, err := a.exporter.Build(c.Context(), userID(c), opts)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("quotes-export-%s.json", snapshot.GeneratedAt.Format("2006-01-02"))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.JSON(snapshot)
}

// handleImport accepts a CSV upload and runs the batch. A malformed file is
// one error; bad rows are reported individually in the summary.
func (a *API) handleImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read upload")
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read upload")
	}

	rows, err := importer.ParseCSV(&buf)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, err := a.importer.Run(c.Context(), rows, userID(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}
