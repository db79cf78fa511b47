package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"cdx-web-scan/domain"
	"cdx-web-scan/internal/api/presenters"
	"cdx-web-scan/pkg/scan"
)

type (
	ScanHandler interface {
		SubmitScan(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanService scan.ScanService
		validator   *validator.Validate
	}
)

func NewScanHandler(scanService scan.ScanService, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		scanService: scanService,
		validator:   validator,
	}
}

// SubmitScan handles POST /submit. Validation failures answer 200 with
// ok=false so the form can render the message in place; only malformed
// requests get a 4xx.
func (h *scanHandler) SubmitScan(c *fiber.Ctx) error {
	sessionID := c.Locals("session_id").(string)
	req := new(domain.SubmitScanRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitScan, err)
	}

	res := h.scanService.SubmitScan(c.Context(), sessionID, *req)

	return presenters.SuccessResponse(c, res, fiber.StatusOK, res.Message)
}
