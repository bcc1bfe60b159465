package services

import (
	"context"
	"time"

	"github.com/royalswap114-cloud/poker-miniapp-gateway/models"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/shared"
	"github.com/sirupsen/logrus"
)

// RefreshCoordinator owns the lobby snapshot slot and decides whether the
// view is served from cache or from the network. It guarantees that the
// displayed lobby is never older than the staleness window under normal
// operation and that a failed refresh never regresses what is rendered.
//
// Multiple refreshes may be in flight at once (the initial background
// refresh racing the first periodic tick, or overlapping ticks); the last
// one to complete wins. Nothing is cancelled or diffed.
type RefreshCoordinator struct {
	store    *SnapshotStore
	client   *LobbyAPIClient
	renderer *Renderer
	view     *LobbyView
	session  *Session
	metrics  *shared.RefreshMetrics
	logger   *logrus.Entry
}

// NewRefreshCoordinator wires the coordinator to its collaborators.
func NewRefreshCoordinator(store *SnapshotStore, client *LobbyAPIClient, renderer *Renderer, view *LobbyView, session *Session, metrics *shared.RefreshMetrics) *RefreshCoordinator {
	return &RefreshCoordinator{
		store:    store,
		client:   client,
		renderer: renderer,
		view:     view,
		session:  session,
		metrics:  metrics,
		logger:   logrus.WithField("component", "RefreshCoordinator"),
	}
}

// LoadInitial performs the first-activation load. A fresh cached snapshot is
// rendered immediately and a background refresh is issued unconditionally;
// its result re-renders and overwrites the slot whether or not it differs.
// Without a fresh snapshot both endpoints are fetched synchronously.
func (rc *RefreshCoordinator) LoadInitial(ctx context.Context) error {
	if snap, ok := rc.store.LoadFresh(); ok {
		rc.metrics.RecordCacheHit()
		rc.logger.WithField("age", snap.Age()).Info("Serving lobby from cached snapshot")
		rc.renderSnapshot(snap)

		go func() {
			bgCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := rc.RefreshAll(bgCtx); err != nil {
				rc.logger.WithError(err).Warn("Background refresh after cache hit failed")
			}
		}()
		return nil
	}

	rc.metrics.RecordCacheMiss()
	rc.logger.Info("No fresh snapshot, fetching lobby from upstream")
	return rc.RefreshAll(ctx)
}

// RefreshAll fetches both endpoints concurrently, re-renders each section
// independently and persists a new snapshot. The two fetches are issued
// before either resolves, so one render pass costs the slower of the two
// round-trips, not their sum. One endpoint failing does not block the
// other's render; the snapshot is only written when both succeed.
func (rc *RefreshCoordinator) RefreshAll(ctx context.Context) error {
	type roomsResult struct {
		rooms []models.Room
		err   error
	}
	type bannersResult struct {
		banners []models.Banner
		err     error
	}

	roomsCh := make(chan roomsResult, 1)
	bannersCh := make(chan bannersResult, 1)

	go func() {
		rooms, err := rc.client.FetchRooms(ctx)
		roomsCh <- roomsResult{rooms, err}
	}()
	go func() {
		banners, err := rc.client.FetchBanners(ctx)
		bannersCh <- bannersResult{banners, err}
	}()

	rooms := <-roomsCh
	banners := <-bannersCh

	if banners.err != nil {
		rc.logger.WithError(banners.err).Error("Banner fetch failed, keeping rendered banners")
		rc.renderBannersFallback()
	} else {
		rc.renderBanners(banners.banners)
	}

	if rooms.err != nil {
		rc.logger.WithError(rooms.err).Error("Room fetch failed, keeping rendered rooms")
		rc.renderRoomsFallback()
	} else {
		rc.renderRooms(rooms.rooms)
	}

	if rooms.err != nil {
		return rooms.err
	}
	if banners.err != nil {
		return banners.err
	}

	snap := models.LobbySnapshot{
		Banners:   banners.banners,
		Rooms:     rooms.rooms,
		FetchedAt: time.Now(),
	}
	if err := rc.store.Store(snap); err != nil {
		rc.logger.WithError(err).Warn("Failed to persist lobby snapshot")
	}
	return nil
}

// RefreshRooms is one periodic tick: re-fetch the room endpoint only and
// replace the rendered room list. A failed tick leaves the current list
// untouched; the fixed interval is the only retry mechanism.
func (rc *RefreshCoordinator) RefreshRooms(ctx context.Context) error {
	rooms, err := rc.client.FetchRooms(ctx)
	if err != nil {
		rc.metrics.RecordTick(false)
		rc.logger.WithError(err).Warn("Refresh tick failed, keeping rendered rooms")
		return err
	}

	rc.renderRooms(rooms)
	rc.metrics.RecordTick(true)
	return nil
}

// renderSnapshot renders both sections from a cached snapshot.
func (rc *RefreshCoordinator) renderSnapshot(snap *models.LobbySnapshot) {
	rc.renderBanners(snap.Banners)
	rc.renderRooms(snap.Rooms)
}

func (rc *RefreshCoordinator) renderRooms(rooms []models.Room) {
	cards := rc.renderer.BuildRoomCards(rooms)
	html, err := rc.renderer.RenderRooms(cards)
	if err != nil {
		rc.logger.WithError(err).Error("Room render failed, keeping rendered rooms")
		return
	}
	rc.view.ReplaceRooms(cards, html)
}

func (rc *RefreshCoordinator) renderBanners(banners []models.Banner) {
	slides := rc.renderer.BuildBannerSlides(banners)
	html, err := rc.renderer.RenderBanners(slides)
	if err != nil {
		rc.logger.WithError(err).Error("Banner render failed, keeping rendered banners")
		return
	}
	if constructed := rc.session.ApplyBanners(slides); constructed {
		rc.logger.Debug("Constructed banner carousel")
	}
	rc.view.ReplaceBanners(slides, html)
}

// renderRoomsFallback shows the empty-state placeholder on a first load that
// has neither cache nor a reachable endpoint. Once anything was rendered the
// previous state is preserved instead.
func (rc *RefreshCoordinator) renderRoomsFallback() {
	if rc.view.HasRooms() {
		return
	}
	rc.renderRooms(nil)
}

func (rc *RefreshCoordinator) renderBannersFallback() {
	if rc.view.HasBanners() {
		return
	}
	rc.renderBanners(nil)
}
