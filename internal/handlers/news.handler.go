package handlers

import (
	"musiclabel/internal/app"
	newsController "musiclabel/internal/controllers/news"
	"musiclabel/internal/models"
	"musiclabel/internal/repositories"
	"musiclabel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type NewsHandler struct {
	Handler
	newsController newsController.NewsControllerInterface
}

func NewNewsHandler(app app.App, router fiber.Router) *NewsHandler {
	return &NewsHandler{
		newsController: app.Controllers.News,
		Handler:        newHandler(app, router, "news_handler"),
	}
}

func (h *NewsHandler) Register() {
	news := h.router.Group("/news")

	news.Get("", h.listNews)
	news.Post("", h.createNews)
	news.Get("/slug/:slug", h.getNewsBySlug)
	news.Get("/:id", h.getNews)
	news.Put("/:id", h.updateNews)
	news.Delete("/:id", h.deleteNews)
	news.Patch("/:id/publish", h.publishNews)
	news.Patch("/:id/unpublish", h.unpublishNews)
}

func (h *NewsHandler) listNews(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listNews")

	params, err := listParams(c, repositories.NewsSorts)
	if err != nil {
		return respondError(c, log, err)
	}
	status, err := validate.ParseOptionalEnum("status", c.Query("status"), newsController.NewsStatuses...)
	if err != nil {
		return respondError(c, log, err)
	}

	result, err := h.newsController.ListNews(c.UserContext(), params, models.NewsStatus(status))
	if err != nil {
		return respondError(c, log, err)
	}

	return respondList(c, result)
}

func (h *NewsHandler) getNews(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getNews")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	news, err := h.newsController.GetNews(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, news)
}

func (h *NewsHandler) getNewsBySlug(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getNewsBySlug")

	news, err := h.newsController.GetNewsBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, news)
}

func (h *NewsHandler) createNews(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createNews")

	var req newsController.CreateNewsRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	news, err := h.newsController.CreateNews(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusCreated, news)
}

func (h *NewsHandler) updateNews(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateNews")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	var req newsController.UpdateNewsRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	news, err := h.newsController.UpdateNews(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, news)
}

func (h *NewsHandler) publishNews(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("publishNews")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	news, err := h.newsController.PublishNews(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, news)
}

func (h *NewsHandler) unpublishNews(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("unpublishNews")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	news, err := h.newsController.UnpublishNews(c.UserContext(), id)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, news)
}

func (h *NewsHandler) deleteNews(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteNews")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.newsController.DeleteNews(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return respondMessage(c, "News article deleted successfully")
}
