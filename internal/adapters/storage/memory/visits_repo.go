package memory

import (
	"context"
	"errors"
	"sync"

	"patient-visit-history/internal/domain/visits"
)

// visitsRepo guarda el slot activo y el histórico en memoria.
// Es el storage por defecto en dev y el que usan los tests.
type visitsRepo struct {
	mu sync.RWMutex

	active    visits.Visit
	hasActive bool

	// history se mantiene del más reciente al más antiguo (unshift al
	// cerrar).
	history []visits.Visit
}

func NewVisitsRepo() visits.Repository {
	return &visitsRepo{}
}

func (r *visitsRepo) GetActive(ctx context.Context) (visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.hasActive {
		return visits.Visit{}, visits.ErrNotFound
	}
	return r.active, nil
}

func (r *visitsRepo) SetActive(ctx context.Context, v visits.Visit) error {
	if v.ID == "" {
		return errors.New("visit id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = v
	r.hasActive = true
	return nil
}

func (r *visitsRepo) ClearActive(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.active = visits.Visit{}
	r.hasActive = false
	return nil
}

// AppendHistory es upsert por id: si la visita ya está en el histórico
// (cierre entregado dos veces) se reemplaza en su posición, no se
// duplica.
func (r *visitsRepo) AppendHistory(ctx context.Context, v visits.Visit) error {
	if v.ID == "" {
		return errors.New("visit id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.history {
		if r.history[i].ID == v.ID {
			r.history[i] = v
			return nil
		}
	}

	r.history = append([]visits.Visit{v}, r.history...)
	return nil
}

func (r *visitsRepo) ListHistory(ctx context.Context, limit int) ([]visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	n := len(r.history)
	if n > limit {
		n = limit
	}

	out := make([]visits.Visit, n)
	copy(out, r.history[:n])
	return out, nil
}

func (r *visitsRepo) GetFromHistory(ctx context.Context, id string) (visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.history {
		if v.ID == id {
			return v, nil
		}
	}
	return visits.Visit{}, visits.ErrNotFound
}

func (r *visitsRepo) AttachFeedback(ctx context.Context, id string, fb visits.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.history {
		if r.history[i].ID == id {
			fbCopy := fb
			r.history[i].Feedback = &fbCopy
			r.history[i].Status = visits.StatusCompleted
			return nil
		}
	}
	return visits.ErrNotFound
}
