package models

import "time"

// Coupon is one user coupon from the upstream coupons endpoint.
type Coupon struct {
	ID          int        `json:"id"`
	Code        string     `json:"code"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Amount      int        `json:"amount"`
	IsUsed      bool       `json:"is_used"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

// Event is one promotional event from the upstream events endpoint.
type Event struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImageURL  string `json:"image_url"`
	CreatedAt string `json:"created_at"`
}
