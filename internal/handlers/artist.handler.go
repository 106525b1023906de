package handlers

import (
	"musiclabel/internal/app"
	artistController "musiclabel/internal/controllers/artist"
	"musiclabel/internal/repositories"
	"musiclabel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ArtistHandler struct {
	Handler
	artistController artistController.ArtistControllerInterface
}

func NewArtistHandler(app app.App, router fiber.Router) *ArtistHandler {
	return &ArtistHandler{
		artistController: app.Controllers.Artist,
		Handler:          newHandler(app, router, "artist_handler"),
	}
}

func (h *ArtistHandler) Register() {
	artists := h.router.Group("/artists")

	artists.Get("", h.listArtists)
	artists.Post("", h.createArtist)
	artists.Get("/featured", h.getFeaturedArtists)
	artists.Get("/:id", h.getArtist)
	artists.Put("/:id", h.updateArtist)
	artists.Delete("/:id", h.deleteArtist)
	artists.Post("/:id/image", h.uploadArtistImage)
	artists.Delete("/:id/image", h.deleteArtistImage)
}

func (h *ArtistHandler) listArtists(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listArtists")

	params, err := listParams(c, repositories.ArtistSorts)
	if err != nil {
		return respondError(c, log, err)
	}
	featured, err := validate.ParseOptionalBool("featured", c.Query("featured"))
	if err != nil {
		return respondError(c, log, err)
	}

	result, err := h.artistController.ListArtists(c.UserContext(), params, featured)
	if err != nil {
		return respondError(c, log, err)
	}

	return respondList(c, result)
}

func (h *ArtistHandler) getFeaturedArtists(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getFeaturedArtists")

	artists, err := h.artistController.GetFeaturedArtists(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, artists)
}

func (h *ArtistHandler) getArtist(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getArtist")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	artist, err := h.artistController.GetArtist(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, artist)
}

func (h *ArtistHandler) createArtist(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createArtist")

	var req artistController.CreateArtistRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	artist, err := h.artistController.CreateArtist(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusCreated, artist)
}

func (h *ArtistHandler) updateArtist(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateArtist")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req artistController.UpdateArtistRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	artist, err := h.artistController.UpdateArtist(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, artist)
}

func (h *ArtistHandler) deleteArtist(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteArtist")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.artistController.DeleteArtist(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return respondMessage(c, "Artist deleted successfully")
}

func (h *ArtistHandler) uploadArtistImage(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("uploadArtistImage")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	data, err := readImage(c)
	if err != nil {
		return respondError(c, log, err)
	}

	artist, err := h.artistController.UploadArtistImage(c.UserContext(), id, data)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, artist)
}

func (h *ArtistHandler) deleteArtistImage(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteArtistImage")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	artist, err := h.artistController.DeleteArtistImage(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, artist)
}
