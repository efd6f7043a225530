package geofence

import (
	"encoding/json"
	"errors"
	"net/http"

	"patient-visit-history/internal/domain/visits"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func RegisterRoutes(r chi.Router, visitsSvc *visits.Service, region Region, log zerolog.Logger) {
	r.Route("/geofence", func(gr chi.Router) {
		gr.Post("/events", eventHandler(visitsSvc, region, log))
		gr.Get("/region", regionHandler(region))
	})
}

// eventRequest es el callback crudo del sensor: eventType 1=enter,
// 2=exit, más el identificador de la región que lo disparó.
type eventRequest struct {
	EventType int    `json:"event_type"`
	RegionID  string `json:"region_id"`
}

// regionResponse describe la región monitoreada.
type regionResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusM   int     `json:"radius_m"`
}

// eventHandler godoc
// @Summary Evento de geofence
// @Description Callback del sensor de geofencing. enter(1) abre visita, exit(2) la cierra. Códigos desconocidos y regiones no registradas se aceptan como no-op: el sensor entrega at-least-once y acá no puede fallar nada por un duplicado.
// @Tags geofence
// @Accept json
// @Produce json
// @Param payload body eventRequest true "Evento crudo del sensor"
// @Success 202 {string} string "accepted"
// @Failure 400 {string} string "invalid json"
// @Router /geofence/events [post]
func eventHandler(visitsSvc *visits.Service, region Region, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ev := Event{Type: EventType(req.EventType), RegionID: req.RegionID}
		if err := ev.Validate(region); err != nil {
			// Trigger que no nos incumbe: se loguea y se responde 202
			// igual, para que el collaborator no reintente.
			log.Debug().
				Int("event_type", req.EventType).
				Str("region_id", req.RegionID).
				Msg("geofence event ignored")
			w.WriteHeader(http.StatusAccepted)
			return
		}

		switch ev.Type {
		case EventEnter:
			if _, err := visitsSvc.Arrive(r.Context(), visits.ArriveInput{Source: visits.SourceSensor}); err != nil {
				log.Error().Err(err).Msg("geofence enter failed")
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		case EventExit:
			_, err := visitsSvc.Depart(r.Context(), visits.SourceSensor)
			if err != nil && !errors.Is(err, visits.ErrNoActiveVisit) {
				log.Error().Err(err).Msg("geofence exit failed")
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			// exit sin visita activa = entrega duplicada o evento viejo;
			// no-op seguro.
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

// regionHandler godoc
// @Summary Región monitoreada
// @Description Devuelve la región circular registrada para geofencing (la clínica).
// @Tags geofence
// @Produce json
// @Success 200 {object} regionResponse
// @Router /geofence/region [get]
func regionHandler(region Region) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(regionResponse{
			ID:        region.ID,
			Name:      region.Name,
			Latitude:  region.Latitude,
			Longitude: region.Longitude,
			RadiusM:   region.RadiusM,
		})
	}
}
