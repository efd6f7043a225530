package visits

import "time"

// Visit representa un encuentro físico del paciente con la clínica,
// desde que se detecta (o declara) su llegada hasta su salida.
type Visit struct {
	ID string

	// CreatedAt y EnteredAt se estampan con el mismo "now" al crear.
	// Hoy no existe ningún flujo donde difieran; se mantienen separados
	// porque el registro histórico los persiste como campos distintos.
	CreatedAt time.Time
	EnteredAt time.Time

	// ExitedAt queda nil mientras la visita sigue activa.
	ExitedAt *time.Time

	// Notas pre-visita del paciente. Mutables solo mientras la visita
	// está activa; después del cierre ningún flujo las escribe.
	Mood    string
	Comment string

	Source Source
	Status Status

	// Feedback post-visita, adjunto por id sobre el histórico.
	// Si está presente, la visita está completed.
	Feedback *Feedback
}

// Feedback es la valoración del paciente para una visita.
type Feedback struct {
	// Rating guarda tanto la estrella directa (1-5) como el promedio
	// redondeado de la encuesta (1-4). El consumidor no distingue el
	// origen de la escala.
	Rating int

	Comment   string
	CreatedAt time.Time
}
