package repo

import (
	"context"

	dom "github.com/bscheucher/keeper-server/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NoteRepo provides note persistence. Every operation is scoped by the
// owner's user ID; no query may touch another owner's rows.
type NoteRepo interface {
	Create(ctx context.Context, n dom.Note) (dom.Note, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]dom.Note, error)
	SearchByOwner(ctx context.Context, ownerID int64, q string) ([]dom.Note, error)
	// Delete removes the note and returns the number of rows affected.
	// 0 means the note does not exist or belongs to someone else.
	Delete(ctx context.Context, ownerID, id int64) (int64, error)
}

// PGNoteRepo implements NoteRepo with Postgres.
type PGNoteRepo struct {
	db *pgxpool.Pool
}

// NewPGNoteRepo returns a new PGNoteRepo.
func NewPGNoteRepo(db *pgxpool.Pool) *PGNoteRepo {
	return &PGNoteRepo{db: db}
}

func (r *PGNoteRepo) Create(ctx context.Context, n dom.Note) (dom.Note, error) {
	query := `
		INSERT INTO notes (owner_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, title, content, created_at`
	var out dom.Note
	err := r.db.QueryRow(ctx, query, n.OwnerID, n.Title, n.Content).Scan(
		&out.ID, &out.OwnerID, &out.Title, &out.Content, &out.CreatedAt,
	)
	return out, err
}

func (r *PGNoteRepo) ListByOwner(ctx context.Context, ownerID int64) ([]dom.Note, error) {
	query := `
		SELECT id, owner_id, title, content, created_at
		FROM notes WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Note
	for rows.Next() {
		var n dom.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *PGNoteRepo) SearchByOwner(ctx context.Context, ownerID int64, q string) ([]dom.Note, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT id, owner_id, title, content, created_at
		FROM notes WHERE owner_id = $1 AND (title ILIKE $2 OR content ILIKE $2)
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Note
	for rows.Next() {
		var n dom.Note
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

func (r *PGNoteRepo) Delete(ctx context.Context, ownerID, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
