package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/royalswap114-cloud/poker-miniapp-gateway/models"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/shared"
	"github.com/stretchr/testify/require"
)

// fakeUpstream is an in-process stand-in for the mini-app API.
type fakeUpstream struct {
	server *httptest.Server

	roomHits   int64
	bannerHits int64
	failRooms  int32

	roomsJSON   atomic.Value // string
	bannersJSON atomic.Value // string
	delay       time.Duration
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	f.roomsJSON.Store(`[]`)
	f.bannersJSON.Store(`[]`)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.roomHits, 1)
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
		if atomic.LoadInt32(&f.failRooms) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.roomsJSON.Load().(string)))
	})
	mux.HandleFunc("/api/banners", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&f.bannerHits, 1)
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(f.bannersJSON.Load().(string)))
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeUpstream) setRooms(t *testing.T, rooms []models.Room) {
	t.Helper()
	payload, err := json.Marshal(rooms)
	require.NoError(t, err)
	f.roomsJSON.Store(string(payload))
}

func (f *fakeUpstream) setBanners(t *testing.T, banners []models.Banner) {
	t.Helper()
	payload, err := json.Marshal(banners)
	require.NoError(t, err)
	f.bannersJSON.Store(string(payload))
}

type coordinatorFixture struct {
	store       *SnapshotStore
	view        *LobbyView
	session     *Session
	metrics     *shared.RefreshMetrics
	coordinator *RefreshCoordinator
}

func newCoordinatorFixture(t *testing.T, baseURL string) *coordinatorFixture {
	t.Helper()
	store := newTestStore(t, 5*time.Minute)
	factory := shared.NewHTTPClientFactory(5 * time.Second)
	client := NewLobbyAPIClient(baseURL, factory, 5*time.Second)
	renderer := NewRenderer(10, "@poker_admin")
	view := NewLobbyView()
	session := NewSession()
	metrics := shared.NewRefreshMetrics()

	return &coordinatorFixture{
		store:       store,
		view:        view,
		session:     session,
		metrics:     metrics,
		coordinator: NewRefreshCoordinator(store, client, renderer, view, session, metrics),
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestLoadInitialWithoutCacheFetchesRendersAndPersists(t *testing.T) {
	upstream := newFakeUpstream(t)
	three := 3
	upstream.setRooms(t, []models.Room{{ID: 1, RoomName: "Table A", Status: "open", CurrentPlayers: &three}})
	upstream.setBanners(t, []models.Banner{{ID: 1, Title: "Freeroll"}})

	fx := newCoordinatorFixture(t, upstream.server.URL)
	require.NoError(t, fx.coordinator.LoadInitial(context.Background()))

	cards, _ := fx.view.Rooms()
	require.Len(t, cards, 1)
	require.Equal(t, "Table A", cards[0].Name)
	require.Equal(t, "OPEN", cards[0].Status)
	require.Equal(t, "3 / 10", cards[0].Players)

	snap, ok := fx.store.LoadFresh()
	require.True(t, ok)
	require.Len(t, snap.Rooms, 1)
	require.Len(t, snap.Banners, 1)

	require.NotNil(t, fx.session.Carousel())
}

func TestLoadInitialWithFreshCacheRendersImmediatelyThenRefreshes(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.setRooms(t, []models.Room{{ID: 2, RoomName: "Live Table", Status: "open"}})
	upstream.setBanners(t, []models.Banner{{ID: 5, Title: "Live Banner"}})
	upstream.delay = 150 * time.Millisecond

	fx := newCoordinatorFixture(t, upstream.server.URL)
	require.NoError(t, fx.store.Store(models.LobbySnapshot{
		Rooms:     []models.Room{{ID: 1, RoomName: "Cached Table", Status: "open"}},
		Banners:   []models.Banner{{ID: 4, Title: "Cached Banner"}},
		FetchedAt: time.Now().Add(-time.Minute),
	}))

	start := time.Now()
	require.NoError(t, fx.coordinator.LoadInitial(context.Background()))
	require.Less(t, time.Since(start), 100*time.Millisecond, "cache hit must not wait for the network")

	cards, _ := fx.view.Rooms()
	require.Len(t, cards, 1)
	require.Equal(t, "Cached Table", cards[0].Name)

	// The background refresh is unconditional: it re-renders and overwrites
	// the slot even though the cached copy was fresh.
	waitFor(t, 2*time.Second, func() bool {
		cards, _ := fx.view.Rooms()
		return len(cards) == 1 && cards[0].Name == "Live Table"
	})
	waitFor(t, 2*time.Second, func() bool {
		snap, ok := fx.store.Load()
		return ok && len(snap.Rooms) == 1 && snap.Rooms[0].RoomName == "Live Table"
	})
	require.GreaterOrEqual(t, atomic.LoadInt64(&upstream.roomHits), int64(1))
	require.GreaterOrEqual(t, atomic.LoadInt64(&upstream.bannerHits), int64(1))
}

func TestLoadInitialWithStaleCacheFetchesSynchronously(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.setRooms(t, []models.Room{{ID: 2, RoomName: "Live Table", Status: "open"}})

	fx := newCoordinatorFixture(t, upstream.server.URL)
	require.NoError(t, fx.store.Store(models.LobbySnapshot{
		Rooms:     []models.Room{{ID: 1, RoomName: "Stale Table", Status: "open"}},
		FetchedAt: time.Now().Add(-6 * time.Minute),
	}))

	require.NoError(t, fx.coordinator.LoadInitial(context.Background()))

	cards, _ := fx.view.Rooms()
	require.Len(t, cards, 1)
	require.Equal(t, "Live Table", cards[0].Name)
}

func TestLoadInitialIssuesBothFetchesConcurrently(t *testing.T) {
	roomsArrived := make(chan struct{})
	bannersArrived := make(chan struct{})

	rendezvous := func(here chan struct{}, other chan struct{}) bool {
		close(here)
		select {
		case <-other:
			return true
		case <-time.After(2 * time.Second):
			return false
		}
	}

	var serialized int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		if !rendezvous(roomsArrived, bannersArrived) {
			atomic.StoreInt32(&serialized, 1)
		}
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/banners", func(w http.ResponseWriter, r *http.Request) {
		if !rendezvous(bannersArrived, roomsArrived) {
			atomic.StoreInt32(&serialized, 1)
		}
		w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fx := newCoordinatorFixture(t, server.URL)
	require.NoError(t, fx.coordinator.LoadInitial(context.Background()))
	require.Equal(t, int32(0), atomic.LoadInt32(&serialized),
		"both endpoint fetches must be in flight before either resolves")
}

func TestFailedTickLeavesRenderedRoomsUnchanged(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.setRooms(t, []models.Room{{ID: 1, RoomName: "Table A", Status: "open"}})

	fx := newCoordinatorFixture(t, upstream.server.URL)
	require.NoError(t, fx.coordinator.LoadInitial(context.Background()))

	_, before := fx.view.Rooms()
	require.NotEmpty(t, before)

	atomic.StoreInt32(&upstream.failRooms, 1)
	err := fx.coordinator.RefreshRooms(context.Background())
	require.Error(t, err)

	_, after := fx.view.Rooms()
	require.Equal(t, before, after, "a failed tick must not touch the rendered list")
	require.Equal(t, int64(1), atomic.LoadInt64(&fx.metrics.RefreshFailures))
}

func TestRefreshRoomsDoesNotTouchBanners(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.setRooms(t, []models.Room{{ID: 1, RoomName: "Table A", Status: "open"}})
	upstream.setBanners(t, []models.Banner{{ID: 1, Title: "Freeroll"}})

	fx := newCoordinatorFixture(t, upstream.server.URL)
	require.NoError(t, fx.coordinator.LoadInitial(context.Background()))

	bannerHitsBefore := atomic.LoadInt64(&upstream.bannerHits)
	carouselBefore := fx.session.Carousel()

	upstream.setRooms(t, []models.Room{{ID: 1, RoomName: "Table A", Status: "full"}})
	require.NoError(t, fx.coordinator.RefreshRooms(context.Background()))

	cards, _ := fx.view.Rooms()
	require.Equal(t, "FULL", cards[0].Status)
	require.Equal(t, bannerHitsBefore, atomic.LoadInt64(&upstream.bannerHits),
		"periodic ticks fetch the rooms endpoint only")
	require.Equal(t, carouselBefore.Updates, fx.session.Carousel().Updates)
}

func TestFirstLoadWithNoCacheAndDeadUpstreamRendersPlaceholders(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // upstream unreachable

	fx := newCoordinatorFixture(t, server.URL)
	err := fx.coordinator.LoadInitial(context.Background())
	require.Error(t, err)

	cards, roomsHTML := fx.view.Rooms()
	require.Empty(t, cards)
	require.Contains(t, roomsHTML, "empty-state")

	slides, _ := fx.view.Banners()
	require.Len(t, slides, 1)
	require.True(t, slides[0].Placeholder)
	require.NotNil(t, fx.session.Carousel(), "placeholder render still constructs the carousel")
}

func TestEmptyBannerListConstructsCarouselWithPlaceholderSlide(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.setRooms(t, []models.Room{{ID: 1, RoomName: "Table A", Status: "open"}})
	// banners endpoint returns []

	fx := newCoordinatorFixture(t, upstream.server.URL)
	require.NoError(t, fx.coordinator.LoadInitial(context.Background()))

	carousel := fx.session.Carousel()
	require.NotNil(t, carousel)
	require.Len(t, carousel.Slides, 1)
	require.True(t, carousel.Slides[0].Placeholder)
	require.Equal(t, 0, carousel.Updates, "first call constructs, not updates")
}

func TestRefreshAllUpdatesCarouselInPlace(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.setBanners(t, []models.Banner{{ID: 1, Title: "First"}, {ID: 2, Title: "Second"}})

	fx := newCoordinatorFixture(t, upstream.server.URL)
	require.NoError(t, fx.coordinator.LoadInitial(context.Background()))

	upstream.setBanners(t, []models.Banner{{ID: 3, Title: "Third"}})
	require.NoError(t, fx.coordinator.RefreshAll(context.Background()))

	carousel := fx.session.Carousel()
	require.Len(t, carousel.Slides, 1)
	require.Equal(t, 1, carousel.Updates, "later renders update the existing widget")
}
