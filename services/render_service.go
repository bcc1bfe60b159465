package services

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/royalswap114-cloud/poker-miniapp-gateway/models"
)

// textPlaceholder is the dash glyph shown for missing text fields.
const textPlaceholder = "—"

// RoomCard is the display form of one room record with all defaults applied.
type RoomCard struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Status   string `json:"status"`
	Blinds   string `json:"blinds"`
	MinBuyin string `json:"min_buyin"`
	GameTime string `json:"game_time"`
	Players  string `json:"players"`
	JoinURL  string `json:"join_url"`
	Contact  string `json:"contact,omitempty"`
}

// BannerSlide is the display form of one banner. Placeholder marks the
// synthetic admin-contact slide shown when the banner list is empty.
type BannerSlide struct {
	ID          int    `json:"id"`
	ImageURL    string `json:"image_url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LinkURL     string `json:"link_url"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

var roomsTemplate = template.Must(template.New("rooms").Parse(`{{if .Cards}}{{range .Cards}}<div class="room-card" data-room-id="{{.ID}}">
  <div class="room-card-header">
    <span class="room-name">{{.Name}}</span>
    <span class="room-status">{{.Status}}</span>
  </div>
  <div class="room-card-body">
    <span class="room-blinds">{{.Blinds}}</span>
    <span class="room-buyin">{{.MinBuyin}}</span>
    <span class="room-time">{{.GameTime}}</span>
    <span class="room-players">{{.Players}}</span>
  </div>
  <a class="room-join" href="{{.JoinURL}}">Join</a>
</div>
{{end}}{{else}}<div class="empty-state">No active rooms right now</div>
{{end}}`))

var bannersTemplate = template.Must(template.New("banners").Parse(`{{range .Slides}}<div class="banner-slide{{if .Placeholder}} placeholder{{end}}" data-banner-id="{{.ID}}">
  {{if .ImageURL}}<img class="banner-image" src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
  {{if .Title}}<div class="banner-title">{{.Title}}</div>{{end}}
  {{if .Description}}<div class="banner-description">{{.Description}}</div>{{end}}
</div>
{{end}}`))

// Renderer turns upstream records into view models and HTML fragments.
// Rendering always replaces wholesale: the produced fragment stands in for
// the full content of the target container.
type Renderer struct {
	defaultMaxPlayers int
	adminContact      string
}

// NewRenderer creates a renderer with the configured display defaults.
func NewRenderer(defaultMaxPlayers int, adminContact string) *Renderer {
	if defaultMaxPlayers <= 0 {
		defaultMaxPlayers = 10
	}
	return &Renderer{
		defaultMaxPlayers: defaultMaxPlayers,
		adminContact:      adminContact,
	}
}

// BuildRoomCards applies the display defaults to a room list: status is
// uppercased, empty text fields become the dash glyph, current_players
// defaults to 0 and max_players to the configured capacity.
func (r *Renderer) BuildRoomCards(rooms []models.Room) []RoomCard {
	cards := make([]RoomCard, 0, len(rooms))
	for _, room := range rooms {
		current := 0
		if room.CurrentPlayers != nil {
			current = *room.CurrentPlayers
		}
		max := r.defaultMaxPlayers
		if room.MaxPlayers != nil && *room.MaxPlayers > 0 {
			max = *room.MaxPlayers
		}
		cards = append(cards, RoomCard{
			ID:       room.ID,
			Name:     textOrDash(room.RoomName),
			Status:   strings.ToUpper(textOrDash(room.Status)),
			Blinds:   textOrDash(room.Blinds),
			MinBuyin: textOrDash(room.MinBuyin),
			GameTime: textOrDash(room.GameTime),
			Players:  fmt.Sprintf("%d / %d", current, max),
			JoinURL:  room.RoomURL,
			Contact:  room.Contact,
		})
	}
	return cards
}

// RenderRooms produces the room list fragment: exactly one card node per
// record, or exactly one empty-state node when the list is empty.
func (r *Renderer) RenderRooms(cards []RoomCard) (string, error) {
	var sb strings.Builder
	err := roomsTemplate.Execute(&sb, struct{ Cards []RoomCard }{cards})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// BuildBannerSlides maps banners to slides. An empty list yields the single
// placeholder slide pointing at the admin contact channel.
func (r *Renderer) BuildBannerSlides(banners []models.Banner) []BannerSlide {
	if len(banners) == 0 {
		return []BannerSlide{{
			Title:       "Want your promotion here?",
			Description: "Contact " + r.adminContact,
			Placeholder: true,
		}}
	}
	slides := make([]BannerSlide, 0, len(banners))
	for _, b := range banners {
		slides = append(slides, BannerSlide{
			ID:          b.ID,
			ImageURL:    b.ImageURL,
			Title:       b.Title,
			Description: b.Description,
			LinkURL:     b.LinkURL,
		})
	}
	return slides
}

// RenderBanners produces the carousel slides fragment.
func (r *Renderer) RenderBanners(slides []BannerSlide) (string, error) {
	var sb strings.Builder
	err := bannersTemplate.Execute(&sb, struct{ Slides []BannerSlide }{slides})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

func textOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return textPlaceholder
	}
	return s
}
