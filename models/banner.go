package models

// Banner is one promotional banner record from the upstream banners endpoint.
type Banner struct {
	ID          int    `json:"id"`
	ImageURL    string `json:"image_url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LinkURL     string `json:"link_url"`
}
