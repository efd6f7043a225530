package visits

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters cuando el slot activo está vacío
// o el id no existe en el histórico. Se define acá para que el service
// pueda distinguir "no hay" de un fallo real de storage con errors.Is.
var ErrNotFound = errors.New("not found")

// Repository es el gateway de persistencia del ciclo de vida:
// un slot "visita activa" (cero o un registro) y un log "histórico"
// ordenado del más reciente al más antiguo.
type Repository interface {
	// Slot activo
	GetActive(ctx context.Context) (Visit, error)
	SetActive(ctx context.Context, v Visit) error
	ClearActive(ctx context.Context) error

	// Histórico.
	// AppendHistory es upsert por id: entregar dos veces el mismo cierre
	// no puede duplicar la entrada (at-least-once delivery del sensor).
	AppendHistory(ctx context.Context, v Visit) error
	ListHistory(ctx context.Context, limit int) ([]Visit, error)
	GetFromHistory(ctx context.Context, id string) (Visit, error)

	// AttachFeedback parchea la entrada del histórico con id dado:
	// setea feedback y pasa status a completed.
	AttachFeedback(ctx context.Context, id string, fb Feedback) error
}
