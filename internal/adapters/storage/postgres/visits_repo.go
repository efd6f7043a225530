package postgres

import (
	"context"
	"database/sql"
	"strings"

	"patient-visit-history/internal/domain/visits"
)

// Schema esperado (migración manual por ahora):
//
//	CREATE TABLE active_visit (
//	    slot             SMALLINT PRIMARY KEY CHECK (slot = 1),
//	    id               TEXT NOT NULL,
//	    created_at       TIMESTAMPTZ NOT NULL,
//	    entered_at       TIMESTAMPTZ NOT NULL,
//	    mood             TEXT NOT NULL DEFAULT '',
//	    comment          TEXT NOT NULL DEFAULT '',
//	    source           TEXT NOT NULL,
//	    status           TEXT NOT NULL
//	);
//
//	CREATE TABLE visit_history (
//	    id               TEXT PRIMARY KEY,
//	    created_at       TIMESTAMPTZ NOT NULL,
//	    entered_at       TIMESTAMPTZ NOT NULL,
//	    exited_at        TIMESTAMPTZ,
//	    mood             TEXT NOT NULL DEFAULT '',
//	    comment          TEXT NOT NULL DEFAULT '',
//	    source           TEXT NOT NULL,
//	    status           TEXT NOT NULL,
//	    feedback_rating  INTEGER,
//	    feedback_comment TEXT,
//	    feedback_at      TIMESTAMPTZ,
//	    closed_seq       BIGSERIAL
//	);
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

func (r *VisitsRepo) SetActive(ctx context.Context, v visits.Visit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO active_visit (slot, id, created_at, entered_at, mood, comment, source, status)
		VALUES (1,$1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (slot) DO UPDATE SET
			id = EXCLUDED.id,
			created_at = EXCLUDED.created_at,
			entered_at = EXCLUDED.entered_at,
			mood = EXCLUDED.mood,
			comment = EXCLUDED.comment,
			source = EXCLUDED.source,
			status = EXCLUDED.status
	`,
		v.ID,
		v.CreatedAt,
		v.EnteredAt,
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

// AppendHistory es upsert por id, para que un cierre entregado dos
// veces no duplique la entrada.
func (r *VisitsRepo) AppendHistory(ctx context.Context, v visits.Visit) error {
	if strings.TrimSpace(v.ID) == "" {
		return visits.ErrNotFound
	}

	var exitedAt any
	if v.ExitedAt != nil {
		exitedAt = *v.ExitedAt
	}

	var fbRating, fbComment, fbAt any
	if v.Feedback != nil {
		fbRating = v.Feedback.Rating
		fbComment = v.Feedback.Comment
		fbAt = v.Feedback.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visit_history (
			id, created_at, entered_at, exited_at,
			mood, comment, source, status,
			feedback_rating, feedback_comment, feedback_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			created_at = EXCLUDED.created_at,
			entered_at = EXCLUDED.entered_at,
			exited_at = EXCLUDED.exited_at,
			mood = EXCLUDED.mood,
			comment = EXCLUDED.comment,
			source = EXCLUDED.source,
			status = EXCLUDED.status,
			feedback_rating = EXCLUDED.feedback_rating,
			feedback_comment = EXCLUDED.feedback_comment,
			feedback_at = EXCLUDED.feedback_at
	`,
		v.ID,
		v.CreatedAt,
		v.EnteredAt,
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

func (r *VisitsRepo) ListHistory(ctx context.Context, limit int) ([]visits.Visit, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	// closed_seq desempata cierres con el mismo exited_at y el upsert
	// lo conserva, así el orden de inserción sobrevive a duplicados.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, entered_at, exited_at,
		       mood, comment, source, status,
		       feedback_rating, feedback_comment, feedback_at
		FROM visit_history
		ORDER BY exited_at DESC, closed_seq DESC
		LIMIT $1
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
	id = strings.TrimSpace(id)
	if id == "" {
		return visits.Visit{}, visits.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, entered_at, exited_at,
		       mood, comment, source, status,
		       feedback_rating, feedback_comment, feedback_at
		FROM visit_history
		WHERE id = $1
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
	id = strings.TrimSpace(id)
	if id == "" {
		return visits.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE visit_history
		SET feedback_rating = $1, feedback_comment = $2, feedback_at = $3, status = $4
		WHERE id = $5
	`,
		fb.Rating,
		fb.Comment,
		fb.CreatedAt,
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
