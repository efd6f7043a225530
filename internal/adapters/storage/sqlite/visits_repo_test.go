package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"patient-visit-history/internal/domain/visits"
)

func newTestRepo(t *testing.T) *VisitsRepo {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "visits.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewVisitsRepo(db)
}

func closedVisit(id string, exited time.Time) visits.Visit {
	entered := exited.Add(-30 * time.Minute)
	return visits.Visit{
		ID:        id,
		CreatedAt: entered,
		EnteredAt: entered,
		ExitedAt:  &exited,
		Mood:      "calm",
		Comment:   "routine check",
		Source:    visits.SourceSensor,
		Status:    visits.StatusActive,
	}
}

func TestVisitsRepo_ActiveSlot_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetActive(ctx); err != visits.ErrNotFound {
		t.Fatalf("expected ErrNotFound on empty slot, got %v", err)
	}

	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	v := visits.Visit{
		ID:        "v-1",
		CreatedAt: now,
		EnteredAt: now,
		Mood:      "nervous",
		Comment:   "first time",
		Source:    visits.SourceManual,
		Status:    visits.StatusActive,
	}
	if err := repo.SetActive(ctx, v); err != nil {
		t.Fatalf("SetActive returned error: %v", err)
	}

	got, err := repo.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive returned error: %v", err)
	}
	if got.ID != "v-1" || got.Mood != "nervous" || got.Comment != "first time" {
		t.Fatalf("round trip mismatch: %#v", got)
	}
	if got.Source != visits.SourceManual || got.Status != visits.StatusActive {
		t.Fatalf("source/status mismatch: %s %s", got.Source, got.Status)
	}
	if !got.CreatedAt.Equal(now) || !got.EnteredAt.Equal(now) {
		t.Fatalf("timestamps mismatch: %v %v", got.CreatedAt, got.EnteredAt)
	}

	// pisar el slot reemplaza, no acumula
	v2 := v
	v2.ID = "v-2"
	if err := repo.SetActive(ctx, v2); err != nil {
		t.Fatalf("second SetActive returned error: %v", err)
	}
	got, err = repo.GetActive(ctx)
	if err != nil {
		t.Fatalf("GetActive returned error: %v", err)
	}
	if got.ID != "v-2" {
		t.Fatalf("expected slot replaced with v-2, got %s", got.ID)
	}

	if err := repo.ClearActive(ctx); err != nil {
		t.Fatalf("ClearActive returned error: %v", err)
	}
	if _, err := repo.GetActive(ctx); err != visits.ErrNotFound {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestVisitsRepo_History_RoundTripWithOptionals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	exited := time.Date(2026, 3, 10, 10, 15, 0, 0, time.UTC)
	v := closedVisit("v-1", exited)
	if err := repo.AppendHistory(ctx, v); err != nil {
		t.Fatalf("AppendHistory returned error: %v", err)
	}

	got, err := repo.GetFromHistory(ctx, "v-1")
	if err != nil {
		t.Fatalf("GetFromHistory returned error: %v", err)
	}
	if got.ExitedAt == nil || !got.ExitedAt.Equal(exited) {
		t.Fatalf("expected ExitedAt=%v, got %v", exited, got.ExitedAt)
	}
	// sin feedback todavía: el optional vuelve ausente, no zero-value
	if got.Feedback != nil {
		t.Fatalf("expected nil feedback, got %#v", got.Feedback)
	}
	if got.Mood != "calm" || got.Comment != "routine check" {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestVisitsRepo_History_NewestFirstAndLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"v-1", "v-2", "v-3"} {
		if err := repo.AppendHistory(ctx, closedVisit(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("AppendHistory(%s) returned error: %v", id, err)
		}
	}

	list, err := repo.ListHistory(ctx, 0)
	if err != nil {
		t.Fatalf("ListHistory returned error: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(list))
	}
	if list[0].ID != "v-3" || list[2].ID != "v-1" {
		t.Fatalf("expected newest first, got %s..%s", list[0].ID, list[2].ID)
	}

	limited, err := repo.ListHistory(ctx, 2)
	if err != nil {
		t.Fatalf("ListHistory(2) returned error: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "v-3" {
		t.Fatalf("limit not applied: %#v", limited)
	}
}

func TestVisitsRepo_AppendHistory_UpsertsByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	exited := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	v := closedVisit("v-1", exited)
	if err := repo.AppendHistory(ctx, v); err != nil {
		t.Fatalf("AppendHistory returned error: %v", err)
	}

	v.Comment = "updated"
	if err := repo.AppendHistory(ctx, v); err != nil {
		t.Fatalf("duplicate AppendHistory returned error: %v", err)
	}

	list, err := repo.ListHistory(ctx, 0)
	if err != nil {
		t.Fatalf("ListHistory returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 entry after duplicate append, got %d", len(list))
	}
	if list[0].Comment != "updated" {
		t.Fatalf("upsert did not replace the row")
	}
}

func TestVisitsRepo_AttachFeedback(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	exited := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	if err := repo.AppendHistory(ctx, closedVisit("v-1", exited)); err != nil {
		t.Fatalf("AppendHistory returned error: %v", err)
	}

	fbAt := exited.Add(5 * time.Minute)
	fb := visits.Feedback{Rating: 4, Comment: "all good", CreatedAt: fbAt}
	if err := repo.AttachFeedback(ctx, "v-1", fb); err != nil {
		t.Fatalf("AttachFeedback returned error: %v", err)
	}

	got, err := repo.GetFromHistory(ctx, "v-1")
	if err != nil {
		t.Fatalf("GetFromHistory returned error: %v", err)
	}
	if got.Feedback == nil {
		t.Fatalf("expected feedback attached")
	}
	if got.Feedback.Rating != 4 || got.Feedback.Comment != "all good" {
		t.Fatalf("feedback mismatch: %#v", got.Feedback)
	}
	if !got.Feedback.CreatedAt.Equal(fbAt) {
		t.Fatalf("expected feedback CreatedAt=%v, got %v", fbAt, got.Feedback.CreatedAt)
	}
	if got.Status != visits.StatusCompleted {
		t.Fatalf("expected status completed, got %s", got.Status)
	}

	if err := repo.AttachFeedback(ctx, "nope", fb); err != visits.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}
