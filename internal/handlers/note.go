package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/bscheucher/keeper-server/internal/auth"
	dom "github.com/bscheucher/keeper-server/internal/domain"
	"github.com/bscheucher/keeper-server/internal/dto"
	"github.com/bscheucher/keeper-server/internal/service"

	"github.com/gin-gonic/gin"
)

// NoteHandler handles owner-scoped note endpoints. The owner ID is always
// taken from the context set by the access guard.
type NoteHandler struct {
	svc *service.NoteService
}

// NewNoteHandler returns a new NoteHandler.
func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// List returns all of the caller's notes.
func (h *NoteHandler) List(c *gin.Context) {
	ownerID := auth.UserIDFromContext(c)
	list, err := h.svc.List(c.Request.Context(), ownerID)
	if err != nil {
		log.Printf("list notes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notes"})
		return
	}
	c.JSON(http.StatusOK, notesToResponses(list))
}

// Search returns the caller's notes matching the q query parameter.
func (h *NoteHandler) Search(c *gin.Context) {
	ownerID := auth.UserIDFromContext(c)
	list, err := h.svc.Search(c.Request.Context(), ownerID, c.Query("q"))
	if err != nil {
		log.Printf("search notes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search notes"})
		return
	}
	c.JSON(http.StatusOK, notesToResponses(list))
}

// Create stores a new note owned by the caller.
func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ownerID := auth.UserIDFromContext(c)
	n, err := h.svc.Create(c.Request.Context(), ownerID, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("create note: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create note"})
		return
	}
	c.JSON(http.StatusCreated, noteToResponse(n))
}

// Delete removes the caller's note. A note that is missing or owned by
// another user gets the same 404.
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ownerID := auth.UserIDFromContext(c)
	if err := h.svc.Delete(c.Request.Context(), ownerID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found or not authorized"})
			return
		}
		log.Printf("delete note: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete note"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "note deleted successfully"})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func noteToResponse(n dom.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		OwnerID:   n.OwnerID,
		CreatedAt: n.CreatedAt,
	}
}

func notesToResponses(list []dom.Note) []dto.NoteResponse {
	out := make([]dto.NoteResponse, len(list))
	for i := range list {
		out[i] = noteToResponse(list[i])
	}
	return out
}
