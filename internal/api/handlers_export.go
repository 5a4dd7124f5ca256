package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/goutly/internal/models"
	"github.com/terraincognita07/goutly/internal/services"
)

// exportRequest is the signed-in user and optional day span of an export.
type exportRequest struct {
	user *models.User
	span services.DateSpan
	now  time.Time
}

func (request exportRequest) filename(extension string) string {
	return fmt.Sprintf("goutly-export-%s.%s", request.now.Format("2006-01-02"), extension)
}

// spanErrorKey maps a date span parse failure to its API error key.
func spanErrorKey(err error) string {
	if errors.Is(err, services.ErrSpanReversed) {
		return "error.invalid_range"
	}
	return "error.invalid_date"
}

func (handler *Handler) withExportRequest(c *fiber.Ctx, serve func(exportRequest) error) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	span, err := services.ParseDateSpan(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, spanErrorKey(err))
	}
	return serve(exportRequest{user: user, span: span, now: handler.now().In(handler.location)})
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	return handler.withExportRequest(c, func(request exportRequest) error {
		summary, err := handler.exportService.BuildSummary(request.user.ID, request.span.From, request.span.To, handler.location)
		if err != nil {
			return handler.internalError(c, "export summary", err)
		}
		return c.JSON(summary)
	})
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	return handler.withExportRequest(c, func(request exportRequest) error {
		entries, err := handler.exportService.BuildJSONEntries(request.user.ID, request.span.From, request.span.To, handler.location)
		if err != nil {
			return handler.internalError(c, "export json", err)
		}

		c.Attachment(request.filename("json"))
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		encoder := json.NewEncoder(c.Response().BodyWriter())
		encoder.SetIndent("", "  ")
		return encoder.Encode(fiber.Map{
			"exported_at": request.now.Format(time.RFC3339),
			"entries":     entries,
		})
	})
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	return handler.withExportRequest(c, func(request exportRequest) error {
		rows, err := handler.exportService.BuildCSVRows(request.user.ID, request.span.From, request.span.To, handler.location)
		if err != nil {
			return handler.internalError(c, "export csv", err)
		}

		records := make([][]string, 0, len(rows)+1)
		records = append(records, services.ExportCSVHeaders)
		for _, row := range rows {
			records = append(records, row.Columns())
		}

		c.Attachment(request.filename("csv"))
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return csv.NewWriter(c.Response().BodyWriter()).WriteAll(records)
	})
}
