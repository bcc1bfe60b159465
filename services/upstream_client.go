package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/models"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/shared"
	"github.com/sirupsen/logrus"
)

// LobbyAPIClient talks to the upstream mini-app API: the two read endpoints
// the refresh loop polls, the profile/coupons/events reads, and the
// best-effort join-tracking call.
type LobbyAPIClient struct {
	baseURL string
	client  *http.Client
}

// NewLobbyAPIClient creates a client for the upstream API rooted at baseURL.
func NewLobbyAPIClient(baseURL string, factory *shared.HTTPClientFactory, timeout time.Duration) *LobbyAPIClient {
	return &LobbyAPIClient{
		baseURL: baseURL,
		client:  factory.CreateOptimizedHTTPClient(timeout),
	}
}

// FetchRooms returns the current ordered room list.
func (c *LobbyAPIClient) FetchRooms(ctx context.Context) ([]models.Room, error) {
	rooms := []models.Room{}
	if err := shared.FetchJSON(ctx, c.client, c.baseURL+"/api/rooms", &rooms); err != nil {
		return nil, shared.NewNetworkError("LobbyAPIClient", "FetchRooms", "rooms endpoint fetch failed", err)
	}
	return rooms, nil
}

// FetchBanners returns the current ordered banner list.
func (c *LobbyAPIClient) FetchBanners(ctx context.Context) ([]models.Banner, error) {
	banners := []models.Banner{}
	if err := shared.FetchJSON(ctx, c.client, c.baseURL+"/api/banners", &banners); err != nil {
		return nil, shared.NewNetworkError("LobbyAPIClient", "FetchBanners", "banners endpoint fetch failed", err)
	}
	return banners, nil
}

// FetchUserStats returns the profile stats record for one user.
func (c *LobbyAPIClient) FetchUserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	var stats models.UserStats
	endpoint := fmt.Sprintf("%s/api/users/%d", c.baseURL, userID)
	if err := shared.FetchJSON(ctx, c.client, endpoint, &stats); err != nil {
		return nil, shared.NewNetworkError("LobbyAPIClient", "FetchUserStats", "users endpoint fetch failed", err)
	}
	return &stats, nil
}

// FetchEvents returns the active promotional events.
func (c *LobbyAPIClient) FetchEvents(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	if err := shared.FetchJSON(ctx, c.client, c.baseURL+"/api/events", &events); err != nil {
		return nil, shared.NewNetworkError("LobbyAPIClient", "FetchEvents", "events endpoint fetch failed", err)
	}
	return events, nil
}

// FetchCoupons returns the coupons held by one user.
func (c *LobbyAPIClient) FetchCoupons(ctx context.Context, userID int64) ([]models.Coupon, error) {
	coupons := []models.Coupon{}
	endpoint := fmt.Sprintf("%s/api/coupons/%d", c.baseURL, userID)
	if err := shared.FetchJSON(ctx, c.client, endpoint, &coupons); err != nil {
		return nil, shared.NewNetworkError("LobbyAPIClient", "FetchCoupons", "coupons endpoint fetch failed", err)
	}
	return coupons, nil
}

// TrackJoin records a room join upstream. The call is best-effort: a failure
// is logged with its attempt id and returned for metrics, but callers must
// never surface it to the end user.
func (c *LobbyAPIClient) TrackJoin(ctx context.Context, roomID int, join models.JoinRequest) error {
	attemptID := uuid.New()

	params := url.Values{}
	params.Set("user_id", fmt.Sprintf("%d", join.UserID))
	if join.Username != "" {
		params.Set("username", join.Username)
	}
	if join.FirstName != "" {
		params.Set("first_name", join.FirstName)
	}
	endpoint := fmt.Sprintf("%s/api/rooms/%d/join?%s", c.baseURL, roomID, params.Encode())

	if err := shared.PostForSideEffect(ctx, c.client, endpoint); err != nil {
		trackErr := shared.NewTrackingError("LobbyAPIClient", "TrackJoin", "join tracking call failed", err)
		logrus.WithFields(logrus.Fields{
			"attempt_id": attemptID,
			"room_id":    roomID,
			"user_id":    join.UserID,
		}).WithError(trackErr).Warn("Join tracking failed, dropping")
		return trackErr
	}

	logrus.WithFields(logrus.Fields{
		"attempt_id": attemptID,
		"room_id":    roomID,
		"user_id":    join.UserID,
	}).Debug("Join tracked")
	return nil
}
