package handlers

import (
	"musiclabel/internal/app"
	contactController "musiclabel/internal/controllers/contact"
	"musiclabel/internal/models"
	"musiclabel/internal/repositories"
	"musiclabel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	Handler
	contactController contactController.ContactControllerInterface
}

type markProcessedRequest struct {
	Processed *bool `json:"processed"`
}

func NewContactHandler(app app.App, router fiber.Router) *ContactHandler {
	return &ContactHandler{
		contactController: app.Controllers.Contact,
		Handler:           newHandler(app, router, "contact_handler"),
	}
}

func (h *ContactHandler) Register() {
	contact := h.router.Group("/contact")

	contact.Post("", h.middleware.FormRateLimit(), h.submitContact)
	contact.Get("", h.listContacts)
	contact.Get("/stats", h.getContactStats)
	contact.Get("/:id", h.getContact)
	contact.Delete("/:id", h.deleteContact)
	contact.Patch("/:id/processed", h.markProcessed)
}

func (h *ContactHandler) submitContact(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("submitContact")

	var req contactController.SubmitContactRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	contact, err := h.contactController.SubmitContact(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusCreated, contact)
}

func (h *ContactHandler) listContacts(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listContacts")

	params, err := listParams(c, repositories.ContactSorts)
	if err != nil {
		return respondError(c, log, err)
	}
	contactType, err := validate.ParseOptionalEnum("type", c.Query("type"), models.ContactTypes...)
	if err != nil {
		return respondError(c, log, err)
	}
	processed, err := validate.ParseOptionalBool("processed", c.Query("processed"))
	if err != nil {
		return respondError(c, log, err)
	}

	result, err := h.contactController.ListContacts(c.UserContext(), params, contactType, processed)
	if err != nil {
		return respondError(c, log, err)
	}

	return respondList(c, result)
}

func (h *ContactHandler) getContactStats(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getContactStats")

	stats, err := h.contactController.GetContactStats(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, stats)
}

func (h *ContactHandler) getContact(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getContact")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	contact, err := h.contactController.GetContact(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, contact)
}

// markProcessed defaults to true when the body omits the flag.
func (h *ContactHandler) markProcessed(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("markProcessed")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	processed := true
	if len(c.Body()) > 0 {
		var req markProcessedRequest
		if err := parseBody(c, &req); err != nil {
			return respondError(c, log, err)
		}
		if req.Processed != nil {
			processed = *req.Processed
		}
	}

	contact, err := h.contactController.MarkProcessed(c.UserContext(), id, processed)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, contact)
}

func (h *ContactHandler) deleteContact(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteContact")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.contactController.DeleteContact(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return respondMessage(c, "Contact deleted successfully")
}
