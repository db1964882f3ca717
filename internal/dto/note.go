package dto

import "time"

// CreateNoteRequest is the JSON body for POST /api/data.
type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=120"`
	Content string `json:"content" binding:"max=10000"`
}

// NoteResponse is a single note as returned to its owner.
type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
