package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/api"
	"gymdesk/internal/class"
	"gymdesk/internal/membership"
	"gymdesk/internal/reservation"
)

type fixture struct {
	personaID  int
	claseID    int
	servicioID int
}

// seedGym inserts a socio, a credit plan with the given credits, an
// active membership and a daily class with the given capacity.
func seedGym(t *testing.T, db *sqlx.DB, creditos, cupo int) fixture {
	t.Helper()

	var f fixture

	require.NoError(t, db.Get(&f.personaID, `
		INSERT INTO personas (tipo_persona, nombre, email, telefono)
		VALUES ('socio', 'Socio Test', 'socio@example.com', '1100000000')
		RETURNING id
	`))

	var coachID int
	require.NoError(t, db.Get(&coachID, `
		INSERT INTO personas (tipo_persona, nombre, email, telefono)
		VALUES ('instructor', 'Coach Test', 'coach@example.com', '1100000001')
		RETURNING id
	`))

	require.NoError(t, db.Get(&f.servicioID, `
		INSERT INTO servicios (nombre, precio, tipo_servicio, creditos)
		VALUES ('Pack créditos', 10000, 'plan', $1)
		RETURNING id
	`, creditos))

	_, err := db.Exec(`
		INSERT INTO membresias (id_persona, id_servicio, tipo, fecha_inicio, creditos_totales, creditos_restantes)
		VALUES ($1, $2, 'creditos', CURRENT_DATE, $3, $3)
	`, f.personaID, f.servicioID, creditos)
	require.NoError(t, err)

	require.NoError(t, db.Get(&f.claseID, `
		INSERT INTO clases (nombre, id_coach, dias_semana, hora_inicio, hora_fin, duracion_minutos, cupo_maximo)
		VALUES ('Funcional', $1, 'Lunes,Martes,Miércoles,Jueves,Viernes,Sábado,Domingo', '18:00', '19:00', 60, $2)
		RETURNING id
	`, coachID, cupo))

	return f
}

func newBookingService(db *sqlx.DB) *reservation.Service {
	return reservation.NewService(
		reservation.NewRepository(db),
		class.NewRepository(db),
		membership.NewRepository(db),
		nil,
	)
}

func TestBookingFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanDatabase(t, db)

	f := seedGym(t, db, 2, 10)
	svc := newBookingService(db)
	ctx := context.Background()
	fecha := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	// Book consumes a credit
	reserva, err := svc.Book(ctx, f.personaID, f.claseID, fecha)
	require.NoError(t, err)
	require.Equal(t, "reservada", reserva.Estado)

	var restantes int
	require.NoError(t, db.Get(&restantes, "SELECT creditos_restantes FROM membresias WHERE id = $1", reserva.IDMembresia))
	require.Equal(t, 1, restantes)

	// Same class and date again is a duplicate
	_, err = svc.Book(ctx, f.personaID, f.claseID, fecha)
	require.ErrorIs(t, err, reservation.ErrDuplicateReserva)

	// Cancel returns the credit
	require.NoError(t, svc.Cancel(ctx, reserva.ID, nil))
	require.NoError(t, db.Get(&restantes, "SELECT creditos_restantes FROM membresias WHERE id = $1", reserva.IDMembresia))
	require.Equal(t, 2, restantes)

	// A second cancel is rejected
	err = svc.Cancel(ctx, reserva.ID, nil)
	require.ErrorIs(t, err, reservation.ErrAlreadyFinalized)
}

func TestBookingCapacity_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanDatabase(t, db)

	f := seedGym(t, db, 5, 1)
	svc := newBookingService(db)
	ctx := context.Background()
	fecha := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	// Fill the single seat
	_, err := svc.Book(ctx, f.personaID, f.claseID, fecha)
	require.NoError(t, err)

	// A second socio finds the class full
	var otherID int
	require.NoError(t, db.Get(&otherID, `
		INSERT INTO personas (tipo_persona, nombre, email, telefono)
		VALUES ('socio', 'Otro Socio', 'otro@example.com', '1100000002')
		RETURNING id
	`))
	_, err = db.Exec(`
		INSERT INTO membresias (id_persona, id_servicio, tipo, fecha_inicio, creditos_totales, creditos_restantes)
		VALUES ($1, $2, 'creditos', CURRENT_DATE, 5, 5)
	`, otherID, f.servicioID)
	require.NoError(t, err)

	_, err = svc.Book(ctx, otherID, f.claseID, fecha)
	require.ErrorIs(t, err, reservation.ErrClaseFull)

	// The loser keeps their credits
	var restantes int
	require.NoError(t, db.Get(&restantes, "SELECT creditos_restantes FROM membresias WHERE id_persona = $1", otherID))
	require.Equal(t, 5, restantes)
}

func TestAttendanceFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	db := setupTestDB(t)
	defer db.Close()
	cleanDatabase(t, db)

	f := seedGym(t, db, 3, 10)
	svc := newBookingService(db)
	ctx := context.Background()
	fecha := time.Now().Format("2006-01-02")

	reserva, err := svc.Book(ctx, f.personaID, f.claseID, fecha)
	require.NoError(t, err)

	reservaID := api.ID(reserva.ID)
	asistencia, err := svc.MarkAttendance(ctx, reservation.MarcarAsistenciaRequest{
		IDPersona: api.ID(f.personaID),
		IDReserva: &reservaID,
	})
	require.NoError(t, err)
	require.Equal(t, "clase", asistencia.Tipo)

	var estado string
	require.NoError(t, db.Get(&estado, "SELECT estado FROM reservas WHERE id = $1", reserva.ID))
	require.Equal(t, "asistio", estado)

	// Attending twice is rejected
	_, err = svc.MarkAttendance(ctx, reservation.MarcarAsistenciaRequest{
		IDPersona: api.ID(f.personaID),
		IDReserva: &reservaID,
	})
	require.ErrorIs(t, err, reservation.ErrReservaNotPending)
}
