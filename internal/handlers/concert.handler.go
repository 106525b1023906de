package handlers

import (
	"strconv"

	"musiclabel/internal/app"
	concertController "musiclabel/internal/controllers/concert"
	"musiclabel/internal/repositories"
	"musiclabel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const defaultUpcomingLimit = 10

type ConcertHandler struct {
	Handler
	concertController concertController.ConcertControllerInterface
}

func NewConcertHandler(app app.App, router fiber.Router) *ConcertHandler {
	return &ConcertHandler{
		concertController: app.Controllers.Concert,
		Handler:           newHandler(app, router, "concert_handler"),
	}
}

func (h *ConcertHandler) Register() {
	concerts := h.router.Group("/concerts")

	concerts.Get("", h.listConcerts)
	concerts.Post("", h.createConcert)
	concerts.Get("/upcoming", h.getUpcomingConcerts)
	concerts.Get("/:id", h.getConcert)
	concerts.Put("/:id", h.updateConcert)
	concerts.Delete("/:id", h.deleteConcert)
}

func (h *ConcertHandler) listConcerts(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listConcerts")

	params, err := listParams(c, repositories.ConcertSorts)
	if err != nil {
		return respondError(c, log, err)
	}

	filter := concertController.ConcertFilter{
		City:    c.Query("city"),
		Country: c.Query("country"),
	}
	if filter.ArtistID, err = validate.ParseOptionalID("artistId", c.Query("artistId")); err != nil {
		return respondError(c, log, err)
	}
	if filter.Upcoming, err = validate.ParseOptionalBool("upcoming", c.Query("upcoming")); err != nil {
		return respondError(c, log, err)
	}

	result, err := h.concertController.ListConcerts(c.UserContext(), params, filter)
	if err != nil {
		return respondError(c, log, err)
	}

	return respondList(c, result)
}

func (h *ConcertHandler) getUpcomingConcerts(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getUpcomingConcerts")

	limit := defaultUpcomingLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return respondError(c, log, validate.Failed("limit", "must be an integer between 1 and 100"))
		}
		limit = parsed
	}

	concerts, err := h.concertController.GetUpcomingConcerts(c.UserContext(), limit)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, concerts)
}

func (h *ConcertHandler) getConcert(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getConcert")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	concert, err := h.concertController.GetConcert(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, concert)
}

func (h *ConcertHandler) createConcert(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createConcert")

	var req concertController.CreateConcertRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	concert, err := h.concertController.CreateConcert(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusCreated, concert)
}

func (h *ConcertHandler) updateConcert(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateConcert")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req concertController.UpdateConcertRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	concert, err := h.concertController.UpdateConcert(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, concert)
}

func (h *ConcertHandler) deleteConcert(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteConcert")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.concertController.DeleteConcert(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return respondMessage(c, "Concert deleted successfully")
}
