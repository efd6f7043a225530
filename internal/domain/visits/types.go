package visits

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Source indica qué tipo de trigger originó la transición:
// el sensor de geofencing o una acción manual de la UI (staff/demo).
type Source string

const (
	SourceSensor Source = "sensor"
	SourceManual Source = "manual"
)
