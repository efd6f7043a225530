package push

import (
	"context"

	"patient-visit-history/internal/ports/notify"
)

// Scheduler implementa notify.Scheduler contra el gateway de push.
// Si el cliente no está configurado preferimos fallar explícito: el
// router decide en el arranque si cae al scheduler en memoria (dev).
type Scheduler struct {
	client *Client
}

func NewScheduler(client *Client) *Scheduler {
	return &Scheduler{client: client}
}

func (s *Scheduler) Schedule(ctx context.Context, n notify.Notification) error {
	if s == nil || s.client == nil {
		return ErrPushNotConfigured
	}

	p := notificationPayload{
		Title:        n.Title,
		Body:         n.Body,
		DelaySeconds: int(n.Delay.Seconds()),
	}
	p.Data.Type = string(n.Data.Type)
	p.Data.VisitID = n.Data.VisitID

	return s.client.Send(ctx, p)
}
