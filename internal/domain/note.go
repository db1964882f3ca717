package domain

import "time"

// Note belongs to exactly one owner. Every query that touches notes
// must be constrained by OwnerID.
type Note struct {
	ID      int64
	OwnerID int64
	Title   string
	Content string

	CreatedAt time.Time
}
