package feedback

// Option es una respuesta cualitativa con su score numérico asociado.
type Option struct {
	Label string
	Score int
}

// Question es una pregunta de la encuesta post-visita, con sus opciones
// en el orden en que se muestran.
type Question struct {
	ID      string
	Text    string
	Options []Option
}

// questions define la encuesta canónica. El orden importa: el comment
// sintetizado lista las respuestas en este mismo orden. Textos y scores
// son contrato con clientes ya desplegados; no renombrar a la ligera.
var questions = []Question{
	{
		ID:   "staff",
		Text: "How was the staff?",
		Options: []Option{
			{Label: "Excellent", Score: 4},
			{Label: "Good", Score: 3},
			{Label: "Okay", Score: 2},
			{Label: "Poor", Score: 1},
		},
	},
	{
		ID:   "waitTime",
		Text: "How was the wait time?",
		Options: []Option{
			{Label: "Very fast", Score: 4},
			{Label: "Reasonable", Score: 3},
			{Label: "Slow", Score: 2},
			{Label: "Very slow", Score: 1},
		},
	},
	{
		ID:   "care",
		Text: "How was the care you received?",
		Options: []Option{
			{Label: "Excellent", Score: 4},
			{Label: "Good", Score: 3},
			{Label: "Fair", Score: 2},
			{Label: "Poor", Score: 1},
		},
	},
}

// Questions devuelve la encuesta para que el cliente la renderice desde
// la definición del server (y no duplique textos/scores).
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// scoreFor resuelve el score de una opción elegida. false si la opción
// no pertenece a la pregunta.
func scoreFor(q Question, label string) (int, bool) {
	for _, opt := range q.Options {
		if opt.Label == label {
			return opt.Score, true
		}
	}
	return 0, false
}
