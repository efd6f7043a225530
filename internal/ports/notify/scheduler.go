package notify

import (
	"context"
	"time"
)

// DataType clasifica la notificación para que el cliente sepa qué hacer
// al tocarla. Son los dos únicos tipos que maneja la app.
type DataType string

const (
	TypeClinicEntry     DataType = "clinic_entry"
	TypeFeedbackRequest DataType = "feedback_request"
)

// Data viaja dentro de la notificación y vuelve igual en el tap-callback.
type Data struct {
	Type    DataType `json:"type"`
	VisitID string   `json:"visitId,omitempty"`
}

type Notification struct {
	Title string
	Body  string
	Data  Data

	// Delay 0 = enviar ya. No existe "des-programar": una vez aceptada
	// por el collaborator, la notificación sale sí o sí.
	Delay time.Duration
}

// Scheduler programa notificaciones locales/push.
// El core lo usa fire-and-forget: un error acá no revierte la mutación
// de estado ya persistida.
type Scheduler interface {
	Schedule(ctx context.Context, n Notification) error
}
