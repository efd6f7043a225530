package visits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"patient-visit-history/internal/ports/notify"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoActiveVisit = errors.New("no active visit")
)

const (
	welcomeTitle = "Welcome to the Clinic!"
	welcomeBody  = "We're glad you're here. Please check in at the front desk."

	feedbackTitle = "How was your visit?"
	feedbackBody  = "We'd love to hear your feedback!"

	// Pequeño delay para que el pedido de feedback llegue cuando el
	// paciente ya salió, no en la puerta.
	defaultFeedbackDelay = 5 * time.Second
)

// Service es la máquina de estados del ciclo de vida: un único slot
// lógico "visita actual" mutado por triggers de llegada, notas, salida
// y adjunto de feedback. Los triggers pueden llegar repetidos (sensor y
// notificaciones son at-least-once), así que cada transición es
// idempotente.
type Service struct {
	repo     Repository
	notifier notify.Scheduler
	log      zerolog.Logger

	now           func() time.Time
	feedbackDelay time.Duration
}

func NewService(repo Repository, notifier notify.Scheduler, log zerolog.Logger) *Service {
	return &Service{
		repo:          repo,
		notifier:      notifier,
		log:           log,
		now:           time.Now,
		feedbackDelay: defaultFeedbackDelay,
	}
}

// SetFeedbackDelay ajusta el delay de la notificación de feedback
// (viene de config; el default queda para tests y dev).
func (s *Service) SetFeedbackDelay(d time.Duration) {
	if d >= 0 {
		s.feedbackDelay = d
	}
}

type ArriveInput struct {
	Mood    string
	Comment string
	Source  Source
}

// newVisit es la factory: id único, ambos timestamps en "now",
// status active.
func (s *Service) newVisit(mood, comment string, src Source) Visit {
	now := s.now()
	if src == "" {
		src = SourceManual
	}
	return Visit{
		ID:        uuid.NewString(),
		CreatedAt: now,
		EnteredAt: now,
		Mood:      strings.TrimSpace(mood),
		Comment:   strings.TrimSpace(comment),
		Source:    src,
		Status:    StatusActive,
	}
}

// Arrive maneja un trigger de llegada (enter del sensor o simulación
// manual). Si ya hay una visita activa devuelve esa misma sin tocarla:
// un enter duplicado no pisa el slot ni pierde las notas ya guardadas.
func (s *Service) Arrive(ctx context.Context, in ArriveInput) (Visit, error) {
	current, err := s.repo.GetActive(ctx)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Visit{}, fmt.Errorf("read active visit: %w", err)
	}

	v := s.newVisit(in.Mood, in.Comment, in.Source)
	if err := s.repo.SetActive(ctx, v); err != nil {
		return Visit{}, fmt.Errorf("save active visit: %w", err)
	}

	s.schedule(ctx, notify.Notification{
		Title: welcomeTitle,
		Body:  welcomeBody,
		Data:  notify.Data{Type: notify.TypeClinicEntry},
	})

	s.log.Info().Str("visit_id", v.ID).Str("source", string(v.Source)).Msg("visit opened")
	return v, nil
}

// SaveNote guarda las notas pre-visita. Mood no puede venir vacío.
// Si no hay visita activa, crea una nueva que arranca con la nota
// (así se comporta la pantalla principal de la app).
func (s *Service) SaveNote(ctx context.Context, mood, comment string) (Visit, error) {
	if strings.TrimSpace(mood) == "" {
		return Visit{}, ErrInvalidInput
	}

	current, err := s.repo.GetActive(ctx)
	if errors.Is(err, ErrNotFound) {
		v := s.newVisit(mood, comment, SourceManual)
		if err := s.repo.SetActive(ctx, v); err != nil {
			return Visit{}, fmt.Errorf("save active visit: %w", err)
		}
		return v, nil
	}
	if err != nil {
		return Visit{}, fmt.Errorf("read active visit: %w", err)
	}

	current.Mood = strings.TrimSpace(mood)
	current.Comment = strings.TrimSpace(comment)
	if err := s.repo.SetActive(ctx, current); err != nil {
		return Visit{}, fmt.Errorf("save active visit: %w", err)
	}
	return current, nil
}

// Depart cierra la visita activa: estampa ExitedAt, la pasa al
// histórico, limpia el slot y programa el pedido de feedback con el id
// de la visita. Sin visita activa devuelve ErrNoActiveVisit; para el
// sensor eso es un no-op esperable (exit duplicado o notificación
// vieja), no un error.
func (s *Service) Depart(ctx context.Context, source Source) (Visit, error) {
	current, err := s.repo.GetActive(ctx)
	if errors.Is(err, ErrNotFound) {
		return Visit{}, ErrNoActiveVisit
	}
	if err != nil {
		return Visit{}, fmt.Errorf("read active visit: %w", err)
	}

	now := s.now()
	current.ExitedAt = &now

	// Orden importa: primero histórico, después limpiar el slot.
	// Si el append falla, el slot sigue intacto y el trigger se puede
	// reintentar. AppendHistory es upsert por id, así que una carrera
	// entre dos cierres del mismo id no duplica la entrada.
	if err := s.repo.AppendHistory(ctx, current); err != nil {
		return Visit{}, fmt.Errorf("append visit to history: %w", err)
	}
	if err := s.repo.ClearActive(ctx); err != nil {
		return Visit{}, fmt.Errorf("clear active visit: %w", err)
	}

	s.schedule(ctx, notify.Notification{
		Title: feedbackTitle,
		Body:  feedbackBody,
		Data:  notify.Data{Type: notify.TypeFeedbackRequest, VisitID: current.ID},
		Delay: s.feedbackDelay,
	})

	s.log.Info().Str("visit_id", current.ID).Str("source", string(source)).Msg("visit closed")
	return current, nil
}

// AttachFeedback parchea por id sobre el histórico. No es una
// transición del slot activo: es legal en cualquier momento después
// del cierre, y un id desconocido devuelve ErrNotFound (el caller del
// tap de notificación lo trata como no-fatal).
func (s *Service) AttachFeedback(ctx context.Context, visitID string, fb Feedback) (Visit, error) {
	visitID = strings.TrimSpace(visitID)
	if visitID == "" {
		return Visit{}, ErrInvalidInput
	}

	if err := s.repo.AttachFeedback(ctx, visitID, fb); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Visit{}, ErrNotFound
		}
		return Visit{}, fmt.Errorf("attach feedback: %w", err)
	}

	s.log.Info().Str("visit_id", visitID).Int("rating", fb.Rating).Msg("feedback attached")
	return s.repo.GetFromHistory(ctx, visitID)
}

// Active devuelve la visita en curso, o ErrNotFound si el slot está vacío.
func (s *Service) Active(ctx context.Context) (Visit, error) {
	return s.repo.GetActive(ctx)
}

// History lista visitas cerradas, la más reciente primero.
func (s *Service) History(ctx context.Context, limit int) ([]Visit, error) {
	return s.repo.ListHistory(ctx, limit)
}

// schedule es fire-and-forget: si el collaborator falla lo logueamos y
// seguimos; la mutación de estado ya quedó persistida y no se revierte.
func (s *Service) schedule(ctx context.Context, n notify.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Schedule(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("type", string(n.Data.Type)).Msg("notification schedule failed")
	}
}
