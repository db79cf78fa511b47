package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"cdx-web-scan/domain"
	"cdx-web-scan/internal/api/presenters"
	"cdx-web-scan/pkg/batch"
	"cdx-web-scan/pkg/intake"
)

type (
	BatchHandler interface {
		Index(c *fiber.Ctx) error
		GetBatch(c *fiber.Ctx) error
		ClearBatch(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		SubmitBatch(c *fiber.Ctx) error
	}

	batchHandler struct {
		batchStore    *batch.Store
		intakeService intake.IntakeService
	}
)

func NewBatchHandler(batchStore *batch.Store, intakeService intake.IntakeService) BatchHandler {
	return &batchHandler{
		batchStore:    batchStore,
		intakeService: intakeService,
	}
}

func (h *batchHandler) Index(c *fiber.Ctx) error {
	sessionID := c.Locals("session_id").(string)
	page := h.batchStore.Page(sessionID, 0, false)
	return presenters.SuccessResponse(c, page, fiber.StatusOK, domain.MessageSuccessGetBatch)
}

// GetBatch handles GET /batch?page=N. An omitted or non-numeric page falls
// back to the session's remembered page.
func (h *batchHandler) GetBatch(c *fiber.Ctx) error {
	sessionID := c.Locals("session_id").(string)

	requested, err := strconv.Atoi(c.Query("page"))
	explicit := err == nil

	page := h.batchStore.Page(sessionID, requested, explicit)
	return presenters.SuccessResponse(c, page, fiber.StatusOK, domain.MessageSuccessGetBatch)
}

func (h *batchHandler) ClearBatch(c *fiber.Ctx) error {
	sessionID := c.Locals("session_id").(string)
	h.batchStore.Clear(sessionID)
	return presenters.SuccessResponse(c, h.batchStore.Page(sessionID, 0, false), fiber.StatusOK, domain.MessageSuccessClearBatch)
}

// DeleteItem handles POST /batch/delete/:code. Deleting an absent code is a
// no-op, not an error.
func (h *batchHandler) DeleteItem(c *fiber.Ctx) error {
	sessionID := c.Locals("session_id").(string)
	h.batchStore.Delete(sessionID, c.Params("code"))
	return presenters.SuccessResponse(c, h.batchStore.Page(sessionID, 0, false), fiber.StatusOK, domain.MessageSuccessDeleteItem)
}

// SubmitBatch handles POST /batch/submit. An empty batch or missing intake
// configuration answers 400 without any network call; an attempted call is
// always reported with 200 and ok/status/body in the payload so the
// operator can decide whether to retry.
func (h *batchHandler) SubmitBatch(c *fiber.Ctx) error {
	sessionID := c.Locals("session_id").(string)

	result, err := h.intakeService.SubmitBatch(c.Context(), sessionID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIntakeSubmit, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, result.Message)
}
