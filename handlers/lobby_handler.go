package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/services"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/shared"
)

// LobbyHandler serves the currently rendered lobby state.
type LobbyHandler struct {
	View    *services.LobbyView
	Session *services.Session
	Metrics *shared.RefreshMetrics
}

func NewLobbyHandler(view *services.LobbyView, session *services.Session, metrics *shared.RefreshMetrics) *LobbyHandler {
	return &LobbyHandler{View: view, Session: session, Metrics: metrics}
}

// GetRooms returns the current room cards plus their HTML fragment.
func (h *LobbyHandler) GetRooms(c *fiber.Ctx) error {
	cards, html := h.View.Rooms()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"cards": cards,
			"html":  html,
		},
	})
}

// GetBanners returns the current slides, their HTML fragment and the
// carousel widget state (nil until the first banner render).
func (h *LobbyHandler) GetBanners(c *fiber.Ctx) error {
	slides, html := h.View.Banners()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"slides":   slides,
			"html":     html,
			"carousel": h.Session.Carousel(),
		},
	})
}

// GetMetrics returns the refresh-loop counters.
func (h *LobbyHandler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.Metrics.Snapshot(),
	})
}
