package handlers

import (
	"musiclabel/internal/app"
	newsletterController "musiclabel/internal/controllers/newsletter"
	"musiclabel/internal/repositories"
	"musiclabel/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type NewsletterHandler struct {
	Handler
	newsletterController newsletterController.NewsletterControllerInterface
}

func NewNewsletterHandler(app app.App, router fiber.Router) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterController: app.Controllers.Newsletter,
		Handler:              newHandler(app, router, "newsletter_handler"),
	}
}

func (h *NewsletterHandler) Register() {
	newsletter := h.router.Group("/newsletter")

	newsletter.Post("/subscribe", h.middleware.FormRateLimit(), h.subscribe)
	newsletter.Post("/unsubscribe", h.unsubscribe)
	newsletter.Get("/subscribers", h.listSubscribers)
	newsletter.Get("/stats", h.getSubscriberStats)
	newsletter.Delete("/subscribers/:id", h.deleteSubscriber)
}

func (h *NewsletterHandler) subscribe(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("subscribe")

	var req newsletterController.SubscriptionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	subscriber, err := h.newsletterController.Subscribe(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusCreated, subscriber)
}

func (h *NewsletterHandler) unsubscribe(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("unsubscribe")

	var req newsletterController.SubscriptionRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, log, err)
	}

	subscriber, err := h.newsletterController.Unsubscribe(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, subscriber)
}

func (h *NewsletterHandler) listSubscribers(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listSubscribers")

	params, err := listParams(c, repositories.SubscriberSorts)
	if err != nil {
		return respondError(c, log, err)
	}
	active, err := validate.ParseOptionalBool("active", c.Query("active"))
	if err != nil {
		return respondError(c, log, err)
	}

	result, err := h.newsletterController.ListSubscribers(c.UserContext(), params, active)
	if err != nil {
		return respondError(c, log, err)
	}

	return respondList(c, result)
}

func (h *NewsletterHandler) getSubscriberStats(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getSubscriberStats")

	stats, err := h.newsletterController.GetSubscriberStats(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return respond(c, fiber.StatusOK, stats)
}

func (h *NewsletterHandler) deleteSubscriber(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteSubscriber")

	id, err := paramID(c)
	if err != nil {
		return respondError(c, log, err)
	}

	if err := h.newsletterController.DeleteSubscriber(c.UserContext(), id); err != nil {
		return respondError(c, log, err)
	}

	return respondMessage(c, "Subscriber deleted successfully")
}
