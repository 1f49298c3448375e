package reservation

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/class"
	"gymdesk/internal/membership"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct{ mock.Mock }
type MockClassLookup struct{ mock.Mock }
type MockMembershipSource struct{ mock.Mock }
type MockNotifier struct{ mock.Mock }

func (m *MockRepo) Book(ctx context.Context, personaID, claseID int, fecha string, mem *membership.Membresia) (*Reserva, error) {
	args := m.Called(ctx, personaID, claseID, fecha, mem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reserva), args.Error(1)
}

func (m *MockRepo) GetByID(ctx context.Context, id int) (*Reserva, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reserva), args.Error(1)
}

func (m *MockRepo) Cancel(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) MarkAttended(ctx context.Context, reservaID int) (*Asistencia, error) {
	args := m.Called(ctx, reservaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Asistencia), args.Error(1)
}

func (m *MockRepo) RecordWalkIn(ctx context.Context, personaID int) (*Asistencia, error) {
	args := m.Called(ctx, personaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Asistencia), args.Error(1)
}

func (m *MockRepo) List(ctx context.Context, personaID int, fecha string) ([]ReservaWithDetails, error) {
	args := m.Called(ctx, personaID, fecha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservaWithDetails), args.Error(1)
}

func (m *MockRepo) ListAsistencias(ctx context.Context, personaID int, fecha string) ([]Asistencia, error) {
	args := m.Called(ctx, personaID, fecha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Asistencia), args.Error(1)
}

func (m *MockRepo) MarkNoShows(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClassLookup) GetByID(ctx context.Context, id int) (*class.Clase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.Clase), args.Error(1)
}

func (m *MockMembershipSource) GetUsableForPersona(ctx context.Context, idPersona int, fecha string) (*membership.Membresia, error) {
	args := m.Called(ctx, idPersona, fecha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Membresia), args.Error(1)
}

func (m *MockNotifier) ReservaConfirmada(personaID int, claseNombre, fecha, hora string) {
	m.Called(personaID, claseNombre, fecha, hora)
}

func (m *MockNotifier) ReservaCancelada(personaID int, claseNombre, fecha string) {
	m.Called(personaID, claseNombre, fecha)
}

func activeClase() *class.Clase {
	return &class.Clase{
		ID:         3,
		Nombre:     "Funcional",
		DiasSemana: "Lunes,Martes,Miércoles,Jueves,Viernes,Sábado,Domingo",
		HoraInicio: "18:00",
		CupoMaximo: 10,
		Estado:     class.EstadoActiva,
	}
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

// nextWeekday returns the first future date falling on the given weekday.
func nextWeekday(day time.Weekday) string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func TestServiceBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful booking notifies and records", func(t *testing.T) {
		repo := new(MockRepo)
		classes := new(MockClassLookup)
		memberships := new(MockMembershipSource)
		notifier := new(MockNotifier)
		svc := NewService(repo, classes, memberships, notifier)

		fecha := tomorrow()
		m := &membership.Membresia{ID: 5, Tipo: membership.TipoFecha}

		classes.On("GetByID", ctx, 3).Return(activeClase(), nil)
		memberships.On("GetUsableForPersona", ctx, 7, fecha).Return(m, nil)
		repo.On("Book", ctx, 7, 3, fecha, m).Return(&Reserva{ID: 11, IDPersona: 7, IDClaseGym: 3, FechaReserva: fecha, Estado: EstadoReservada}, nil)
		notifier.On("ReservaConfirmada", 7, "Funcional", fecha, "18:00").Return()

		reserva, err := svc.Book(ctx, 7, 3, fecha)
		require.NoError(t, err)
		assert.Equal(t, 11, reserva.ID)
		notifier.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("Past date rejected before any lookups", func(t *testing.T) {
		svc := NewService(new(MockRepo), new(MockClassLookup), new(MockMembershipSource), nil)

		_, err := svc.Book(ctx, 7, 3, "2020-01-01")
		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("Inactive clase rejected", func(t *testing.T) {
		classes := new(MockClassLookup)
		svc := NewService(new(MockRepo), classes, new(MockMembershipSource), nil)

		inactive := activeClase()
		inactive.Estado = class.EstadoCancelada
		classes.On("GetByID", ctx, 3).Return(inactive, nil)

		_, err := svc.Book(ctx, 7, 3, tomorrow())
		assert.ErrorIs(t, err, ErrClaseInactive)
	})

	t.Run("No usable membership", func(t *testing.T) {
		classes := new(MockClassLookup)
		memberships := new(MockMembershipSource)
		svc := NewService(new(MockRepo), classes, memberships, nil)

		fecha := tomorrow()
		classes.On("GetByID", ctx, 3).Return(activeClase(), nil)
		memberships.On("GetUsableForPersona", ctx, 7, fecha).Return(nil, sql.ErrNoRows)

		_, err := svc.Book(ctx, 7, 3, fecha)
		assert.ErrorIs(t, err, ErrNoUsableMembresia)
	})

	t.Run("Date outside the clase schedule rejected", func(t *testing.T) {
		repo := new(MockRepo)
		classes := new(MockClassLookup)
		memberships := new(MockMembershipSource)
		svc := NewService(repo, classes, memberships, nil)

		mondayOnly := activeClase()
		mondayOnly.DiasSemana = "Lunes"
		classes.On("GetByID", ctx, 3).Return(mondayOnly, nil)

		// Next Tuesday is never a Lunes occurrence.
		fecha := nextWeekday(time.Tuesday)
		_, err := svc.Book(ctx, 7, 3, fecha)
		assert.ErrorIs(t, err, ErrClaseNotScheduled)
		memberships.AssertNotCalled(t, "GetUsableForPersona", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Full clase error propagates without notification", func(t *testing.T) {
		repo := new(MockRepo)
		classes := new(MockClassLookup)
		memberships := new(MockMembershipSource)
		notifier := new(MockNotifier)
		svc := NewService(repo, classes, memberships, notifier)

		fecha := tomorrow()
		m := &membership.Membresia{ID: 5, Tipo: membership.TipoCreditos}

		classes.On("GetByID", ctx, 3).Return(activeClase(), nil)
		memberships.On("GetUsableForPersona", ctx, 7, fecha).Return(m, nil)
		repo.On("Book", ctx, 7, 3, fecha, m).Return(nil, ErrClaseFull)

		_, err := svc.Book(ctx, 7, 3, fecha)
		assert.ErrorIs(t, err, ErrClaseFull)
		notifier.AssertNotCalled(t, "ReservaConfirmada", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestServiceCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Socio cannot cancel another persona's reserva", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo, new(MockClassLookup), new(MockMembershipSource), nil)

		repo.On("GetByID", ctx, 4).Return(&Reserva{ID: 4, IDPersona: 99}, nil)

		socio := 7
		err := svc.Cancel(ctx, 4, &socio)
		assert.ErrorIs(t, err, ErrReservaNotFound)
		repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})

	t.Run("Staff cancels any reserva and socio is notified", func(t *testing.T) {
		repo := new(MockRepo)
		classes := new(MockClassLookup)
		notifier := new(MockNotifier)
		svc := NewService(repo, classes, new(MockMembershipSource), notifier)

		reserva := &Reserva{ID: 4, IDPersona: 99, IDClaseGym: 3, FechaReserva: "2026-09-01"}
		repo.On("GetByID", ctx, 4).Return(reserva, nil)
		repo.On("Cancel", ctx, 4).Return(nil)
		classes.On("GetByID", ctx, 3).Return(activeClase(), nil)
		notifier.On("ReservaCancelada", 99, "Funcional", "2026-09-01").Return()

		err := svc.Cancel(ctx, 4, nil)
		require.NoError(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("Already finalized propagates", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo, new(MockClassLookup), new(MockMembershipSource), nil)

		repo.On("GetByID", ctx, 4).Return(&Reserva{ID: 4, IDPersona: 7}, nil)
		repo.On("Cancel", ctx, 4).Return(ErrAlreadyFinalized)

		err := svc.Cancel(ctx, 4, nil)
		assert.ErrorIs(t, err, ErrAlreadyFinalized)
	})
}

func TestServiceMarkAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("With reserva marks attended", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo, new(MockClassLookup), new(MockMembershipSource), nil)

		reservaID := api.ID(4)
		repo.On("MarkAttended", ctx, 4).Return(&Asistencia{ID: 1, Tipo: AsistenciaClase}, nil)

		asistencia, err := svc.MarkAttendance(ctx, MarcarAsistenciaRequest{IDPersona: 7, IDReserva: &reservaID})
		require.NoError(t, err)
		assert.Equal(t, AsistenciaClase, asistencia.Tipo)
	})

	t.Run("Without reserva records walk-in", func(t *testing.T) {
		repo := new(MockRepo)
		svc := NewService(repo, new(MockClassLookup), new(MockMembershipSource), nil)

		repo.On("RecordWalkIn", ctx, 7).Return(&Asistencia{ID: 2, Tipo: AsistenciaLibre}, nil)

		asistencia, err := svc.MarkAttendance(ctx, MarcarAsistenciaRequest{IDPersona: 7})
		require.NoError(t, err)
		assert.Equal(t, AsistenciaLibre, asistencia.Tipo)
	})
}
