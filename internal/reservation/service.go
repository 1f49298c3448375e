package reservation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gymdesk/internal/class"
	"gymdesk/internal/membership"
	"gymdesk/internal/metrics"
)

var (
	ErrClaseNotFound     = errors.New("clase not found")
	ErrClaseInactive     = errors.New("clase is not active")
	ErrClaseNotScheduled = errors.New("clase does not run on that date")
	ErrNoUsableMembresia = errors.New("persona has no usable membresia")
	ErrPastDate          = errors.New("fecha is in the past")
)

// ClassLookup is the slice of the class repository the booking flow needs.
type ClassLookup interface {
	GetByID(ctx context.Context, id int) (*class.Clase, error)
}

// MembershipSource resolves which membership a new reservation draws
// from. A fecha membership must still cover the reservation date, not
// just today.
type MembershipSource interface {
	GetUsableForPersona(ctx context.Context, idPersona int, fecha string) (*membership.Membresia, error)
}

// Notifier sends reservation lifecycle mail. Implementations must not
// block; the email service queues and delivers in the background.
type Notifier interface {
	ReservaConfirmada(personaID int, claseNombre, fecha, hora string)
	ReservaCancelada(personaID int, claseNombre, fecha string)
}

type Service struct {
	repo        Repository
	classes     ClassLookup
	memberships MembershipSource
	notifier    Notifier
}

func NewService(repo Repository, classes ClassLookup, memberships MembershipSource, notifier Notifier) *Service {
	return &Service{
		repo:        repo,
		classes:     classes,
		memberships: memberships,
		notifier:    notifier,
	}
}

// Book validates the clase and resolves the membership, then delegates to
// the repository transaction for the capacity-safe insert.
func (s *Service) Book(ctx context.Context, personaID, claseID int, fecha string) (*Reserva, error) {
	day, err := time.ParseInLocation("2006-01-02", fecha, time.Local)
	if err != nil {
		return nil, ErrPastDate
	}
	today := time.Now().Format("2006-01-02")
	if day.Format("2006-01-02") < today {
		return nil, ErrPastDate
	}

	clase, err := s.classes.GetByID(ctx, claseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClaseNotFound
		}
		return nil, err
	}
	if clase.Estado != class.EstadoActiva {
		return nil, ErrClaseInactive
	}
	if !class.RunsOn(clase, day) {
		return nil, ErrClaseNotScheduled
	}

	m, err := s.memberships.GetUsableForPersona(ctx, personaID, fecha)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoUsableMembresia
		}
		return nil, err
	}

	reserva, err := s.repo.Book(ctx, personaID, claseID, fecha, m)
	if err != nil {
		return nil, err
	}

	metrics.RecordReservation(m.Tipo)
	if s.notifier != nil {
		s.notifier.ReservaConfirmada(personaID, clase.Nombre, fecha, clase.HoraInicio)
	}

	return reserva, nil
}

// Cancel releases the reservation. When asSocio is set the reservation
// must belong to that persona.
func (s *Service) Cancel(ctx context.Context, reservaID int, asSocio *int) error {
	reserva, err := s.repo.GetByID(ctx, reservaID)
	if err != nil {
		return err
	}
	if asSocio != nil && reserva.IDPersona != *asSocio {
		return ErrReservaNotFound
	}

	if err := s.repo.Cancel(ctx, reservaID); err != nil {
		return err
	}

	metrics.RecordReservationCancellation()
	if s.notifier != nil {
		clase, err := s.classes.GetByID(ctx, reserva.IDClaseGym)
		if err == nil {
			s.notifier.ReservaCancelada(reserva.IDPersona, clase.Nombre, reserva.FechaReserva)
		}
	}

	return nil
}

// MarkAttendance records a class check-in (via reserva) or a free walk-in.
func (s *Service) MarkAttendance(ctx context.Context, req MarcarAsistenciaRequest) (*Asistencia, error) {
	if req.IDReserva != nil {
		asistencia, err := s.repo.MarkAttended(ctx, req.IDReserva.Int())
		if err != nil {
			return nil, err
		}
		metrics.RecordAttendance(AsistenciaClase)
		return asistencia, nil
	}

	asistencia, err := s.repo.RecordWalkIn(ctx, req.IDPersona.Int())
	if err != nil {
		return nil, err
	}
	metrics.RecordAttendance(AsistenciaLibre)

	return asistencia, nil
}

func (s *Service) List(ctx context.Context, personaID int, fecha string) ([]ReservaWithDetails, error) {
	return s.repo.List(ctx, personaID, fecha)
}

func (s *Service) ListAsistencias(ctx context.Context, personaID int, fecha string) ([]Asistencia, error) {
	return s.repo.ListAsistencias(ctx, personaID, fecha)
}
