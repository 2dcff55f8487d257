package domain

import "time"

// DefaultCoverURL is used when a book is created without a cover.
const DefaultCoverURL = "/images/unavailable.png"

// Book is a library record owned by a single user.
type Book struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Author            string     `json:"author"`
	ISBN              int64      `json:"isbn"`
	AddedAt           time.Time  `json:"added_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty"`
	Plot              string     `json:"plot"`
	CompletedReadings int        `json:"completed_readings"`
	CoverURL          string     `json:"cover_url"`
	UserID            string     `json:"user_id"`
}
