package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	dom "github.com/bscheucher/keeper-server/internal/domain"
	"github.com/bscheucher/keeper-server/internal/repo"

	"golang.org/x/sync/singleflight"
)

// NoteCache is the read-through cache the note service uses.
// *cache.NoteCache implements it; nil disables caching.
type NoteCache interface {
	GetList(ctx context.Context, ownerID int64) ([]dom.Note, error)
	SetList(ctx context.Context, ownerID int64, list []dom.Note) error
	GetSearch(ctx context.Context, ownerID int64, q string) ([]dom.Note, error)
	SetSearch(ctx context.Context, ownerID int64, q string, list []dom.Note) error
	Invalidate(ctx context.Context, ownerID int64) error
}

// ErrNotFound covers both a nonexistent note and someone else's note. The
// caller cannot tell whether the ID exists at all.
var ErrNotFound = errors.New("not found")

var ErrEmptyTitle = errors.New("title required")

// NoteService handles owner-scoped note operations. The owner ID always
// comes from the verified request identity, never from the request body.
type NoteService struct {
	repo  repo.NoteRepo
	cache NoteCache
	sf    singleflight.Group
}

// NewNoteService creates a NoteService. If c is nil, caching is disabled.
func NewNoteService(r repo.NoteRepo, c NoteCache) *NoteService {
	return &NoteService{repo: r, cache: c}
}

func (s *NoteService) Create(ctx context.Context, ownerID int64, title, content string) (dom.Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return dom.Note{}, ErrEmptyTitle
	}
	n, err := s.repo.Create(ctx, dom.Note{
		OwnerID: ownerID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		return dom.Note{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return n, nil
}

func (s *NoteService) List(ctx context.Context, ownerID int64) ([]dom.Note, error) {
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(ownerID, 10)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, ownerID); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.ListByOwner(ctx, ownerID)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, ownerID, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Note), nil
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *NoteService) Search(ctx context.Context, ownerID int64, q string) ([]dom.Note, error) {
	q = strings.TrimSpace(q)
	if s.cache != nil {
		key := "search:" + strconv.FormatInt(ownerID, 10) + ":" + strings.ToLower(q)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetSearch(ctx, ownerID, q); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.SearchByOwner(ctx, ownerID, q)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetSearch(ctx, ownerID, q, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Note), nil
	}
	return s.repo.SearchByOwner(ctx, ownerID, q)
}

// Delete removes the owner's note. A delete that matches zero rows reports
// ErrNotFound whether the note is missing or owned by someone else.
func (s *NoteService) Delete(ctx context.Context, ownerID, id int64) error {
	affected, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.invalidateCache(ctx, ownerID)
	return nil
}

func (s *NoteService) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, ownerID)
}
