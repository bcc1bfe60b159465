package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/royalswap114-cloud/poker-miniapp-gateway/services"
	"github.com/sirupsen/logrus"
)

// LobbyRefreshJob drives the periodic room re-fetch. Each tick runs in its
// own goroutine: a fetch slower than the interval does not delay the next
// tick, and whichever tick resolves last determines the rendered state.
// Banners are intentionally excluded from the periodic loop.
type LobbyRefreshJob struct {
	Coordinator *services.RefreshCoordinator
	interval    time.Duration
	tickTimeout time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

func NewLobbyRefreshJob(coordinator *services.RefreshCoordinator, interval time.Duration) *LobbyRefreshJob {
	return &LobbyRefreshJob{
		Coordinator: coordinator,
		interval:    interval,
		tickTimeout: 30 * time.Second,
		stop:        make(chan struct{}),
	}
}

// Start launches the ticker loop. There is no backoff on failure; the next
// tick is the retry.
func (j *LobbyRefreshJob) Start() {
	logrus.Infof("Starting Lobby Refresh Job (runs every %v)...", j.interval)
	ticker := time.NewTicker(j.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				go j.Run()
			case <-j.stop:
				return
			}
		}
	}()
}

// Stop terminates the ticker loop. Ticks already in flight still complete
// and write their result.
func (j *LobbyRefreshJob) Stop() {
	j.stopOnce.Do(func() {
		close(j.stop)
	})
}

// Run executes a single refresh tick. A panic or error in one tick must not
// reach the ticker loop or any later tick.
func (j *LobbyRefreshJob) Run() {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Lobby Refresh Job tick panicked: %v", r)
		}
	}()

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), j.tickTimeout)
	defer cancel()

	if err := j.Coordinator.RefreshRooms(ctx); err != nil {
		logrus.Debugf("Lobby Refresh Job tick failed after %v: %v", time.Since(startTime), err)
		return
	}

	logrus.Debugf("Lobby Refresh Job tick completed (took %v)", time.Since(startTime))
}
