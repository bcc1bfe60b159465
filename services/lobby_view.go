package services

import (
	"sync"

	"github.com/google/uuid"
	"github.com/royalswap114-cloud/poker-miniapp-gateway/models"
)

// Carousel is the banner widget handle. It is constructed exactly once, on
// the first banner render, and only updated afterwards: reconstructing it
// would reset the pagination position.
type Carousel struct {
	Slides      []BannerSlide `json:"slides"`
	ActiveIndex int           `json:"active_index"`
	Updates     int           `json:"updates"`
}

// NewCarousel constructs the widget around its first slide set.
func NewCarousel(slides []BannerSlide) *Carousel {
	return &Carousel{Slides: slides}
}

// Update replaces the slide set in place, preserving the active position
// (clamped when the new set is shorter).
func (c *Carousel) Update(slides []BannerSlide) {
	c.Slides = slides
	if len(slides) == 0 {
		c.ActiveIndex = 0
	} else if c.ActiveIndex >= len(slides) {
		c.ActiveIndex = len(slides) - 1
	}
	c.Updates++
}

// Advance moves the active slide forward, wrapping around.
func (c *Carousel) Advance() {
	if len(c.Slides) == 0 {
		c.ActiveIndex = 0
		return
	}
	c.ActiveIndex = (c.ActiveIndex + 1) % len(c.Slides)
}

// Session carries the per-page state that would otherwise live in module
// globals: the current user and the carousel handle.
type Session struct {
	ID   uuid.UUID
	User *models.JoinRequest

	mu       sync.Mutex
	carousel *Carousel
}

// NewSession creates a session with a fresh id and no widget constructed yet.
func NewSession() *Session {
	return &Session{ID: uuid.New()}
}

// ApplyBanners routes a new slide set to the carousel: construct on first
// call, update in place on every later one. It reports whether this call
// constructed the widget.
func (s *Session) ApplyBanners(slides []BannerSlide) (constructed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carousel == nil {
		s.carousel = NewCarousel(slides)
		return true
	}
	s.carousel.Update(slides)
	return false
}

// Carousel returns a copy of the current widget state, nil before the first
// banner render.
func (s *Session) Carousel() *Carousel {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.carousel == nil {
		return nil
	}
	snapshot := *s.carousel
	snapshot.Slides = append([]BannerSlide(nil), s.carousel.Slides...)
	return &snapshot
}

// LobbyView holds the currently rendered lobby state. The room section and
// the banner section are replaced independently and each replacement is
// atomic; whichever write lands last wins.
type LobbyView struct {
	mu          sync.RWMutex
	roomCards   []RoomCard
	roomsHTML   string
	slides      []BannerSlide
	bannersHTML string
	hasRooms    bool
	hasBanners  bool
}

// NewLobbyView creates an empty view; nothing is rendered until the
// coordinator produces the first replacement.
func NewLobbyView() *LobbyView {
	return &LobbyView{}
}

// ReplaceRooms swaps the rendered room section wholesale.
func (v *LobbyView) ReplaceRooms(cards []RoomCard, html string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.roomCards = cards
	v.roomsHTML = html
	v.hasRooms = true
}

// ReplaceBanners swaps the rendered banner section wholesale.
func (v *LobbyView) ReplaceBanners(slides []BannerSlide, html string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.slides = slides
	v.bannersHTML = html
	v.hasBanners = true
}

// Rooms returns the current room cards and their HTML fragment.
func (v *LobbyView) Rooms() ([]RoomCard, string) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]RoomCard(nil), v.roomCards...), v.roomsHTML
}

// Banners returns the current slides and their HTML fragment.
func (v *LobbyView) Banners() ([]BannerSlide, string) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]BannerSlide(nil), v.slides...), v.bannersHTML
}

// HasRooms reports whether the room section was ever rendered.
func (v *LobbyView) HasRooms() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.hasRooms
}

// HasBanners reports whether the banner section was ever rendered.
func (v *LobbyView) HasBanners() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.hasBanners
}
