package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is one end-of-session satisfaction record. Comment is only set
// for the free-text "others" rating.
type Feedback struct {
	ID        uuid.UUID `db:"id"`
	UserID    *int64    `db:"user_id"`
	UserEmail string    `db:"user_email"`
	Rating    int       `db:"rating"`
	Category  string    `db:"category"`
	Comment   *string   `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}
