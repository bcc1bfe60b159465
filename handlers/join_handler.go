package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/models"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/services"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/shared"
)

// JoinHandler relays join-tracking calls to the upstream API, fire-and-forget.
type JoinHandler struct {
	Client  *services.LobbyAPIClient
	Metrics *shared.RefreshMetrics
}

func NewJoinHandler(client *services.LobbyAPIClient, metrics *shared.RefreshMetrics) *JoinHandler {
	return &JoinHandler{Client: client, Metrics: metrics}
}

// PostJoin records a room join. The upstream call runs in the background and
// its failure never reaches the user; the reply is always immediate.
func (h *JoinHandler) PostJoin(c *fiber.Ctx) error {
	roomID, err := strconv.Atoi(c.Params("id"))
	if err != nil || roomID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid room id",
		})
	}

	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid user_id",
		})
	}

	join := models.JoinRequest{
		UserID:    userID,
		Username:  c.Query("username"),
		FirstName: c.Query("first_name"),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := h.Client.TrackJoin(ctx, roomID, join)
		h.Metrics.RecordJoinTracked(err == nil)
	}()

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"ok":      true,
			"message": "join recorded",
		},
	})
}
