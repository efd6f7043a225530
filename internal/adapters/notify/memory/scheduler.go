package memory

import (
	"context"
	"sync"

	"patient-visit-history/internal/ports/notify"

	"github.com/rs/zerolog"
)

// Scheduler registra las notificaciones en memoria y las loguea.
// Es el fallback cuando el gateway de push no está configurado (dev) y
// el punto de aserción de los tests.
type Scheduler struct {
	mu        sync.Mutex
	scheduled []notify.Notification

	log zerolog.Logger
}

func NewScheduler(log zerolog.Logger) *Scheduler {
	return &Scheduler{log: log}
}

func (s *Scheduler) Schedule(ctx context.Context, n notify.Notification) error {
	s.mu.Lock()
	s.scheduled = append(s.scheduled, n)
	s.mu.Unlock()

	s.log.Info().
		Str("type", string(n.Data.Type)).
		Str("visit_id", n.Data.VisitID).
		Dur("delay", n.Delay).
		Str("title", n.Title).
		Msg("notification scheduled (in-memory)")
	return nil
}

// Scheduled devuelve una copia de lo programado hasta ahora.
func (s *Scheduler) Scheduled() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]notify.Notification, len(s.scheduled))
	copy(out, s.scheduled)
	return out
}
