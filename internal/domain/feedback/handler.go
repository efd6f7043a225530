package feedback

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"patient-visit-history/internal/domain/visits"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/feedback/questions", listQuestionsHandler())
	r.Post("/visits/{visitID}/feedback", submitFeedbackHandler(svc))
}

// submitFeedbackRequest es el cuerpo del submit. Con answers presente
// se toma el camino encuesta; si no, rating es la estrella directa 1-5.
type submitFeedbackRequest struct {
	Rating  int               `json:"rating"`
	Answers map[string]string `json:"answers"`
	Comment string            `json:"comment"`
}

// submitFeedbackResponse devuelve el feedback normalizado ya adjunto.
type submitFeedbackResponse struct {
	VisitID   string        `json:"visit_id"`
	Rating    int           `json:"rating"`
	Comment   string        `json:"comment"`
	CreatedAt time.Time     `json:"created_at"`
	Status    visits.Status `json:"status"`
}

// optionResponse y questionResponse exponen la encuesta al cliente.
type optionResponse struct {
	Label string `json:"label"`
	Score int    `json:"score"`
}

type questionResponse struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Options []optionResponse `json:"options"`
}

// listQuestionsHandler godoc
// @Summary Preguntas de la encuesta
// @Description Devuelve la encuesta post-visita (preguntas y opciones en orden) para que el cliente la renderice.
// @Tags feedback
// @Produce json
// @Success 200 {array} questionResponse
// @Router /feedback/questions [get]
func listQuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qs := Questions()
		out := make([]questionResponse, 0, len(qs))
		for _, q := range qs {
			opts := make([]optionResponse, 0, len(q.Options))
			for _, o := range q.Options {
				opts = append(opts, optionResponse{Label: o.Label, Score: o.Score})
			}
			out = append(out, questionResponse{ID: q.ID, Text: q.Text, Options: opts})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// submitFeedbackHandler godoc
// @Summary Enviar feedback de una visita
// @Description Adjunta la valoración del paciente a una visita del histórico. Acepta encuesta completa (answers) o estrella directa (rating 1-5). Llega tanto desde el tap de la notificación como desde el flujo de cierre en la app.
// @Tags feedback
// @Accept json
// @Produce json
// @Param visitID path string true "ID de la visita"
// @Param payload body submitFeedbackRequest true "Respuestas de la encuesta o rating directo"
// @Success 200 {object} submitFeedbackResponse
// @Failure 400 {string} string "invalid json / encuesta incompleta / rating inválido"
// @Failure 404 {string} string "visit not found"
// @Router /visits/{visitID}/feedback [post]
func submitFeedbackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitID := chi.URLParam(r, "visitID")

		var req submitFeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.Submit(r.Context(), visitID, SubmitInput{
			Rating:  req.Rating,
			Answers: req.Answers,
			Comment: req.Comment,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput), errors.Is(err, visits.ErrInvalidInput):
				http.Error(w, "invalid feedback", http.StatusBadRequest)
			case errors.Is(err, visits.ErrNotFound):
				// id desconocido: no-fatal, el tap puede venir de una
				// notificación vieja.
				http.Error(w, "visit not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		resp := submitFeedbackResponse{
			VisitID: v.ID,
			Status:  v.Status,
		}
		if v.Feedback != nil {
			resp.Rating = v.Feedback.Rating
			resp.Comment = v.Feedback.Comment
			resp.CreatedAt = v.Feedback.CreatedAt
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo;
// extraerlo a un helper común recién vale la pena si sigue creciendo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
