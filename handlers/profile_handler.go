package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/services"
)

// ProfileHandler proxies the out-of-lobby reads (profile stats, coupons,
// events) with a short-lived cache in front of the upstream.
type ProfileHandler struct {
	Client *services.LobbyAPIClient
	Cache  *services.ProxyCache
}

func NewProfileHandler(client *services.LobbyAPIClient, cache *services.ProxyCache) *ProfileHandler {
	return &ProfileHandler{Client: client, Cache: cache}
}

// GetUser returns the profile stats record for one user.
func (h *ProfileHandler) GetUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid user id",
		})
	}

	cacheKey := fmt.Sprintf("user:%d", userID)
	if cached, found := h.Cache.Get(cacheKey); found {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    cached,
		})
	}

	stats, err := h.Client.FetchUserStats(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	h.Cache.Set(cacheKey, stats)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

// GetCoupons returns the coupons held by one user.
func (h *ProfileHandler) GetCoupons(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("user_id"), 10, 64)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid user id",
		})
	}

	cacheKey := fmt.Sprintf("coupons:%d", userID)
	if cached, found := h.Cache.Get(cacheKey); found {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    cached,
		})
	}

	coupons, err := h.Client.FetchCoupons(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	h.Cache.Set(cacheKey, coupons)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    coupons,
	})
}

// GetEvents returns the active promotional events.
func (h *ProfileHandler) GetEvents(c *fiber.Ctx) error {
	if cached, found := h.Cache.Get("events"); found {
		return c.JSON(fiber.Map{
			"success": true,
			"data":    cached,
		})
	}

	events, err := h.Client.FetchEvents(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	h.Cache.Set("events", events)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    events,
	})
}
