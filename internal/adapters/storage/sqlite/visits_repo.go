package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"patient-visit-history/internal/domain/visits"
)

type VisitsRepo struct {
	db *sql.DB
}

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

func (r *VisitsRepo) GetActive(ctx context.Context) (visits.Visit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, entered_at, mood, comment, source, status
		FROM active_visit
		WHERE slot = 1
	`)

	var v visits.Visit
	var source, status string
	if err := row.Scan(&v.ID, &v.CreatedAt, &v.EnteredAt, &v.Mood, &v.Comment, &source, &status); err != nil {
		if err == sql.ErrNoRows {
			return visits.Visit{}, visits.ErrNotFound
		}
		return visits.Visit{}, err
	}

	v.Source = visits.Source(source)
	v.Status = visits.Status(status)
	return v, nil
}

// SetActive pisa el slot único (a lo sumo una visita activa, por
// construcción del schema: slot = 1).
func (r *VisitsRepo) SetActive(ctx context.Context, v visits.Visit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO active_visit (slot, id, created_at, entered_at, mood, comment, source, status)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			id = excluded.id,
			created_at = excluded.created_at,
			entered_at = excluded.entered_at,
			mood = excluded.mood,
			comment = excluded.comment,
			source = excluded.source,
			status = excluded.status
	`,
		v.ID,
		v.CreatedAt.UTC(),
		v.EnteredAt.UTC(),
		v.Mood,
		v.Comment,
		string(v.Source),
		string(v.Status),
	)
	return err
}

func (r *VisitsRepo) ClearActive(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM active_visit WHERE slot = 1`)
	return err
}

// AppendHistory es upsert por id: un cierre entregado dos veces pisa la
// misma fila en vez de duplicarla.
func (r *VisitsRepo) AppendHistory(ctx context.Context, v visits.Visit) error {
	if strings.TrimSpace(v.ID) == "" {
		return visits.ErrNotFound
	}

	var exitedAt any
	if v.ExitedAt != nil {
		exitedAt = v.ExitedAt.UTC()
	}

	var fbRating, fbComment, fbAt any
	if v.Feedback != nil {
		fbRating = v.Feedback.Rating
		fbComment = v.Feedback.Comment
		fbAt = v.Feedback.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visit_history (
			id, created_at, entered_at, exited_at,
			mood, comment, source, status,
			feedback_rating, feedback_comment, feedback_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			created_at = excluded.created_at,
			entered_at = excluded.entered_at,
			exited_at = excluded.exited_at,
			mood = excluded.mood,
			comment = excluded.comment,
			source = excluded.source,
			status = excluded.status,
			feedback_rating = excluded.feedback_rating,
			feedback_comment = excluded.feedback_comment,
			feedback_at = excluded.feedback_at
	`,
		v.ID,
		v.CreatedAt.UTC(),
		v.EnteredAt.UTC(),
		exitedAt,
		v.Mood,
		v.Comment,
		string(v.Source),
		string(v.Status),
		fbRating,
		fbComment,
		fbAt,
	)
	return err
}

// ListHistory devuelve el log del más reciente al más antiguo.
// rowid desempata cierres con el mismo exited_at; el upsert con
// ON CONFLICT conserva el rowid original, así que el orden de inserción
// sobrevive a las entregas duplicadas.
func (r *VisitsRepo) ListHistory(ctx context.Context, limit int) ([]visits.Visit, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, entered_at, exited_at,
		       mood, comment, source, status,
		       feedback_rating, feedback_comment, feedback_at
		FROM visit_history
		ORDER BY exited_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visits.Visit, 0)
	for rows.Next() {
		v, err := scanHistoryRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VisitsRepo) GetFromHistory(ctx context.Context, id string) (visits.Visit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, entered_at, exited_at,
		       mood, comment, source, status,
		       feedback_rating, feedback_comment, feedback_at
		FROM visit_history
		WHERE id = ?
	`, id)

	v, err := scanHistoryRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return visits.Visit{}, visits.ErrNotFound
		}
		return visits.Visit{}, err
	}
	return v, nil
}

func (r *VisitsRepo) AttachFeedback(ctx context.Context, id string, fb visits.Feedback) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE visit_history
		SET feedback_rating = ?, feedback_comment = ?, feedback_at = ?, status = ?
		WHERE id = ?
	`,
		fb.Rating,
		fb.Comment,
		fb.CreatedAt.UTC(),
		string(visits.StatusCompleted),
		id,
	)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return visits.ErrNotFound
	}
	return nil
}

// scanner cubre tanto *sql.Row como *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHistoryRow(s scanner) (visits.Visit, error) {
	var v visits.Visit
	var source, status string
	var exitedAt, fbAt sql.NullTime
	var fbRating sql.NullInt64
	var fbComment sql.NullString

	if err := s.Scan(
		&v.ID,
		&v.CreatedAt,
		&v.EnteredAt,
		&exitedAt,
		&v.Mood,
		&v.Comment,
		&source,
		&status,
		&fbRating,
		&fbComment,
		&fbAt,
	); err != nil {
		return visits.Visit{}, err
	}

	v.Source = visits.Source(source)
	v.Status = visits.Status(status)

	if exitedAt.Valid {
		t := exitedAt.Time
		v.ExitedAt = &t
	}
	if fbRating.Valid {
		v.Feedback = &visits.Feedback{
			Rating:    int(fbRating.Int64),
			Comment:   fbComment.String,
			CreatedAt: fbAt.Time,
		}
	}
	return v, nil
}
