package geofence

import (
	"errors"
	"strings"
)

var (
	ErrUnknownEventType = errors.New("unknown event type")
	ErrUnknownRegion    = errors.New("unknown region")
)

// EventType son los códigos que entrega el servicio de geofencing del
// dispositivo. Solo reaccionamos a enter(1) y exit(2); cualquier otro
// código se ignora.
type EventType int

const (
	EventEnter EventType = 1
	EventExit  EventType = 2
)

// Region es la única región circular monitoreada (la clínica).
type Region struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64
	RadiusM   int
}

// Event es el trigger del sensor ya tipado. Los payloads del OS llegan
// sueltos (duck-typed); acá se validan en el borde antes de tocar el
// ciclo de vida.
type Event struct {
	Type     EventType
	RegionID string
}

// Validate chequea el evento contra la región registrada.
func (e Event) Validate(monitored Region) error {
	if e.Type != EventEnter && e.Type != EventExit {
		return ErrUnknownEventType
	}
	if strings.TrimSpace(e.RegionID) != monitored.ID {
		return ErrUnknownRegion
	}
	return nil
}
