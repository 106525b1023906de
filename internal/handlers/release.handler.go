package handlers

import (
	"musiclabel/internal/app"
	releaseController "musiclabel/internal/controllers/release"
	"musiclabel/internal/models"
	"musiclabel/internal/repositories"
	"musiclabel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ReleaseHandler struct {
	Handler
	releaseController releaseController.ReleaseControllerInterface
}

func NewReleaseHandler(app app.App, router fiber.Router) *ReleaseHandler {
	return &ReleaseHandler{
		releaseController: app.Controllers.Release,
		Handler:           newHandler(app, router, "release_handler"),
	}
}

func (h *ReleaseHandler) Register() {
	releases := h.router.Group("/releases")

	releases.Get("", h.listReleases)
	releases.Post("", h.createRelease)
	releases.Get("/:id", h.getRelease)
	releases.Put("/:id", h.updateRelease)
	releases.Delete("/:id", h.deleteRelease)
	releases.Post("/:id/cover", h.uploadReleaseCover)
	releases.Delete("/:id/cover", h.deleteReleaseCover)
}

func (h *ReleaseHandler) listReleases(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listReleases")

	params, err := listParams(c, repositories.ReleaseSorts)
	if err != nil {
		return respondError(c, log, err)
	}
	artistID, err := validate.ParseOptionalID("artistId", c.Query("artistId"))
	if err != nil {
		return respondError(c, log, err)
	}
	releaseType, err := validate.ParseOptionalEnum("type", c.Query("type"), models.ReleaseTypes...)
	if err != nil {
		return respondError(c, log, err)
	}

	result, err := h.releaseController.ListReleases(c.UserContext(), params, artistID, releaseType)
	if err != nil {
		return respondError(c, log, err)
	}

	return respondList(c, result)
}

func (h *ReleaseHandler) getRelease(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getRelease")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	release, err := h.releaseController.GetRelease(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, release)
}

func (h *ReleaseHandler) createRelease(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createRelease")

	var req releaseController.CreateReleaseRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	release, err := h.releaseController.CreateRelease(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusCreated, release)
}

func (h *ReleaseHandler) updateRelease(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateRelease")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req releaseController.UpdateReleaseRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	release, err := h.releaseController.UpdateRelease(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, release)
}

func (h *ReleaseHandler) deleteRelease(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteRelease")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.releaseController.DeleteRelease(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return respondMessage(c, "Release deleted successfully")
}

func (h *ReleaseHandler) uploadReleaseCover(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("uploadReleaseCover")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	data, err := readImage(c)
	if err != nil {
		return respondError(c, log, err)
	}

	release, err := h.releaseController.UploadReleaseCover(c.UserContext(), id, data)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, release)
}

func (h *ReleaseHandler) deleteReleaseCover(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteReleaseCover")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	release, err := h.releaseController.DeleteReleaseCover(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, release)
}
