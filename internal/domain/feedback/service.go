package feedback

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"patient-visit-history/internal/domain/visits"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service es el agregador de feedback: convierte las respuestas del
// paciente (encuesta multi-pregunta o estrella directa) en un rating
// numérico normalizado más un comment, y lo adjunta a la visita vía el
// controller del ciclo de vida.
type Service struct {
	visits *visits.Service
	now    func() time.Time
}

func NewService(visitsSvc *visits.Service) *Service {
	return &Service{
		visits: visitsSvc,
		now:    time.Now,
	}
}

// SubmitInput admite las dos formas de captura. Si vienen Answers se
// toma el camino encuesta (canónico) y Rating se ignora; si no, Rating
// es la estrella directa 1-5.
type SubmitInput struct {
	Rating  int
	Answers map[string]string
	Comment string
}

// Submit valida, agrega y adjunta el feedback a la visita del histórico
// con el id dado. Falla con ErrInvalidInput sin adjuntar nada si la
// encuesta está incompleta o el rating directo es 0/fuera de rango;
// con visits.ErrNotFound si el id no está en el histórico.
func (s *Service) Submit(ctx context.Context, visitID string, in SubmitInput) (visits.Visit, error) {
	var fb visits.Feedback
	var err error

	if len(in.Answers) > 0 {
		fb, err = s.aggregateSurvey(in.Answers, in.Comment)
	} else {
		fb, err = s.direct(in.Rating, in.Comment)
	}
	if err != nil {
		return visits.Visit{}, err
	}

	return s.visits.AttachFeedback(ctx, visitID, fb)
}

// direct es la escala directa: una estrella 1-5 y comment libre.
func (s *Service) direct(rating int, comment string) (visits.Feedback, error) {
	if rating < 1 || rating > 5 {
		return visits.Feedback{}, ErrInvalidInput
	}
	return visits.Feedback{
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: s.now(),
	}, nil
}

// aggregateSurvey exige respuesta válida para todas las preguntas,
// promedia los scores con redondeo half-up y sintetiza el comment:
// una línea "pregunta respuesta" por pregunta, en orden, más el texto
// libre del paciente bajo un header separador si vino.
func (s *Service) aggregateSurvey(answers map[string]string, extra string) (visits.Feedback, error) {
	scores := make([]int, 0, len(questions))
	lines := make([]string, 0, len(questions))

	for _, q := range questions {
		label, ok := answers[q.ID]
		if !ok {
			return visits.Feedback{}, ErrInvalidInput
		}
		score, ok := scoreFor(q, label)
		if !ok {
			return visits.Feedback{}, ErrInvalidInput
		}
		scores = append(scores, score)
		lines = append(lines, q.Text+" "+label)
	}

	comment := strings.Join(lines, "\n")
	if t := strings.TrimSpace(extra); t != "" {
		comment += "\n\nAdditional comments:\n" + t
	}

	return visits.Feedback{
		Rating:    overallRating(scores),
		Comment:   comment,
		CreatedAt: s.now(),
	}, nil
}

// overallRating promedia con round half-up. El 0 queda como centinela
// "sin score": con la validación de arriba no debería darse, pero el
// agregado no revienta si algún día llega una lista vacía.
func overallRating(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}
