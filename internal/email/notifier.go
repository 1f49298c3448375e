package email

import (
	"context"
	"fmt"
	"time"

	"gymdesk/internal/logger"
	"gymdesk/internal/person"
)

// Notifier turns reservation and membership events into queued mail. It
// resolves the recipient from the persona record; socios without an email
// address are silently skipped.
type Notifier struct {
	service *Service
	persons person.Repository
}

func NewNotifier(service *Service, persons person.Repository) *Notifier {
	return &Notifier{service: service, persons: persons}
}

func (n *Notifier) enqueue(personaID int, emailType, subject, body string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p, err := n.persons.GetByID(ctx, personaID)
	if err != nil {
		logger.Errorf("resolving recipient %d: %v", personaID, err)
		return
	}
	if p.Email == "" {
		return
	}

	_ = n.service.Enqueue(ctx, Job{
		To:      p.Email,
		Name:    p.Nombre,
		Subject: subject,
		Body:    fmt.Sprintf("Hola %s,\n\n%s\n\nGymDesk", p.Nombre, body),
		Type:    emailType,
	})
}

func (n *Notifier) ReservaConfirmada(personaID int, claseNombre, fecha, hora string) {
	n.enqueue(personaID, "reserva_confirmada",
		"Reserva confirmada - "+claseNombre,
		fmt.Sprintf("Tu reserva fue confirmada.\n\nClase: %s\nFecha: %s\nHora: %s\n\n¡Te esperamos!",
			claseNombre, fecha, hora))
}

func (n *Notifier) ReservaCancelada(personaID int, claseNombre, fecha string) {
	n.enqueue(personaID, "reserva_cancelada",
		"Reserva cancelada - "+claseNombre,
		fmt.Sprintf("Tu reserva fue cancelada.\n\nClase: %s\nFecha: %s", claseNombre, fecha))
}

func (n *Notifier) MembresiaPorVencer(personaID int, servicioNombre, fechaFin string) {
	n.enqueue(personaID, "membresia_por_vencer",
		"Tu membresía está por vencer",
		fmt.Sprintf("Tu membresía %s vence el %s. Acercate a recepción para renovarla.",
			servicioNombre, fechaFin))
}
