package visits

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/visits", func(vr chi.Router) {
		vr.Get("/active", getActiveHandler(svc))
		vr.Post("/active/notes", saveNoteHandler(svc))
		vr.Post("/arrival", arrivalHandler(svc))
		vr.Post("/departure", departureHandler(svc))
		vr.Get("/history", listHistoryHandler(svc))
	})
}

// saveNoteRequest es el cuerpo para guardar notas pre-visita.
type saveNoteRequest struct {
	Mood    string `json:"mood"`
	Comment string `json:"comment"`
}

// arrivalRequest permite abrir una visita manualmente (staff/demo),
// opcionalmente con notas iniciales.
type arrivalRequest struct {
	Mood    string `json:"mood"`
	Comment string `json:"comment"`
}

// feedbackResponse representa la valoración adjunta a una visita.
type feedbackResponse struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// visitResponse representa una visita devuelta por la API.
type visitResponse struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	EnteredAt time.Time         `json:"entered_at"`
	ExitedAt  *time.Time        `json:"exited_at,omitempty"`
	Mood      string            `json:"mood,omitempty"`
	Comment   string            `json:"comment,omitempty"`
	Source    Source            `json:"source"`
	Status    Status            `json:"status"`
	Feedback  *feedbackResponse `json:"feedback,omitempty"`
}

// getActiveHandler godoc
// @Summary Visita activa
// @Description Devuelve la visita en curso, si existe. 404 si el slot activo está vacío.
// @Tags visits
// @Produce json
// @Success 200 {object} visitResponse
// @Failure 404 {string} string "no active visit"
// @Router /visits/active [get]
func getActiveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Active(r.Context())
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "no active visit", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toVisitResponse(v))
	}
}

// saveNoteHandler godoc
// @Summary Guardar notas pre-visita
// @Description Guarda mood/comment sobre la visita activa. Si no hay visita activa, crea una nueva que arranca con la nota. Mood no puede venir vacío.
// @Tags visits
// @Accept json
// @Produce json
// @Param payload body saveNoteRequest true "Notas del paciente; mood obligatorio"
// @Success 200 {object} visitResponse
// @Failure 400 {string} string "invalid json / mood vacío"
// @Router /visits/active/notes [post]
func saveNoteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.SaveNote(r.Context(), req.Mood, req.Comment)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "mood is required", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toVisitResponse(v))
	}
}

// arrivalHandler godoc
// @Summary Abrir visita (llegada manual)
// @Description Trigger manual de llegada (staff o demo). Si ya hay una visita activa devuelve esa misma, sin crear otra.
// @Tags visits
// @Accept json
// @Produce json
// @Param payload body arrivalRequest false "Notas iniciales opcionales"
// @Success 201 {object} visitResponse
// @Failure 400 {string} string "invalid json"
// @Router /visits/arrival [post]
func arrivalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req arrivalRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		v, err := svc.Arrive(r.Context(), ArriveInput{
			Mood:    req.Mood,
			Comment: req.Comment,
			Source:  SourceManual,
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toVisitResponse(v))
	}
}

// departureHandler godoc
// @Summary Cerrar visita (salida manual)
// @Description Trigger manual de salida (staff "close visit" o demo). La confirmación previa es cosa de la UI: acá la transición se ejecuta directo. 409 si no hay visita activa.
// @Tags visits
// @Produce json
// @Success 200 {object} visitResponse
// @Failure 409 {string} string "no active visit"
// @Router /visits/departure [post]
func departureHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.Depart(r.Context(), SourceManual)
		if err != nil {
			if errors.Is(err, ErrNoActiveVisit) {
				http.Error(w, "no active visit", http.StatusConflict)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toVisitResponse(v))
	}
}

// listHistoryHandler godoc
// @Summary Histórico de visitas
// @Description Lista visitas cerradas, la más reciente primero.
// @Tags visits
// @Produce json
// @Param limit query int false "Máximo de visitas a devolver (1-200). Por defecto 50"
// @Success 200 {array} visitResponse
// @Failure 500 {string} string "internal error"
// @Router /visits/history [get]
func listHistoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
				limit = n
			}
		}

		items, err := svc.History(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toVisitResponse(v Visit) visitResponse {
	resp := visitResponse{
		ID:        v.ID,
		CreatedAt: v.CreatedAt,
		EnteredAt: v.EnteredAt,
		ExitedAt:  v.ExitedAt,
		Mood:      v.Mood,
		Comment:   v.Comment,
		Source:    v.Source,
		Status:    v.Status,
	}
	if v.Feedback != nil {
		resp.Feedback = &feedbackResponse{
			Rating:    v.Feedback.Rating,
			Comment:   v.Feedback.Comment,
			CreatedAt: v.Feedback.CreatedAt,
		}
	}
	return resp
}

// writeJSON está duplicado a propósito en los handlers de cada módulo;
// extraerlo a un helper común recién vale la pena si sigue creciendo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
