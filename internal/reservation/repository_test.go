package reservation

import (
	"context"
	"regexp"
	"testing"
	"time"

	"gymdesk/internal/membership"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	return repo, mock, func() { sqlxDB.Close() }
}

func reservaRows(id int, fecha string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "id_persona", "id_clase_gym", "fecha_reserva", "id_membresia", "estado", "created_at"}).
		AddRow(id, 7, 3, fecha, 5, "reservada", time.Now())
}

func TestBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Booking with a date membership inserts without touching credits", func(t *testing.T) {
		repo, mock, closeFn := setupMock(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT cupo_maximo FROM clases").WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"cupo_maximo"}).AddRow(10))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reservas")).WithArgs(3, "2026-09-01").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
		mock.ExpectQuery("SELECT EXISTS").WithArgs(7, 3, "2026-09-01").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("INSERT INTO reservas").WithArgs(7, 3, "2026-09-01", 5).
			WillReturnRows(reservaRows(11, "2026-09-01"))
		mock.ExpectCommit()

		m := &membership.Membresia{ID: 5, Tipo: membership.TipoFecha}
		reserva, err := repo.Book(ctx, 7, 3, "2026-09-01", m)
		require.NoError(t, err)
		assert.Equal(t, 11, reserva.ID)
		assert.Equal(t, EstadoReservada, reserva.Estado)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Booking with a credit membership decrements one credit", func(t *testing.T) {
		repo, mock, closeFn := setupMock(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT cupo_maximo FROM clases").WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"cupo_maximo"}).AddRow(10))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reservas")).WithArgs(3, "2026-09-01").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs(7, 3, "2026-09-01").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("UPDATE membresias").WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO reservas").WithArgs(7, 3, "2026-09-01", 5).
			WillReturnRows(reservaRows(12, "2026-09-01"))
		mock.ExpectCommit()

		m := &membership.Membresia{ID: 5, Tipo: membership.TipoCreditos}
		reserva, err := repo.Book(ctx, 7, 3, "2026-09-01", m)
		require.NoError(t, err)
		assert.Equal(t, 12, reserva.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Full clase rolls back", func(t *testing.T) {
		repo, mock, closeFn := setupMock(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT cupo_maximo FROM clases").WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"cupo_maximo"}).AddRow(10))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reservas")).WithArgs(3, "2026-09-01").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))
		mock.ExpectRollback()

		m := &membership.Membresia{ID: 5, Tipo: membership.TipoFecha}
		_, err := repo.Book(ctx, 7, 3, "2026-09-01", m)
		assert.ErrorIs(t, err, ErrClaseFull)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate reserva rolls back", func(t *testing.T) {
		repo, mock, closeFn := setupMock(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT cupo_maximo FROM clases").WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"cupo_maximo"}).AddRow(10))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reservas")).WithArgs(3, "2026-09-01").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("SELECT EXISTS").WithArgs(7, 3, "2026-09-01").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		m := &membership.Membresia{ID: 5, Tipo: membership.TipoFecha}
		_, err := repo.Book(ctx, 7, 3, "2026-09-01", m)
		assert.ErrorIs(t, err, ErrDuplicateReserva)
	})

	t.Run("Out of credits rolls back", func(t *testing.T) {
		repo, mock, closeFn := setupMock(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT cupo_maximo FROM clases").WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"cupo_maximo"}).AddRow(10))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reservas")).WithArgs(3, "2026-09-01").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT EXISTS").WithArgs(7, 3, "2026-09-01").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("UPDATE membresias").WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		m := &membership.Membresia{ID: 5, Tipo: membership.TipoCreditos}
		_, err := repo.Book(ctx, 7, 3, "2026-09-01", m)
		assert.ErrorIs(t, err, membership.ErrNoCredits)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancellation restores the credit in the same transaction", func(t *testing.T) {
		repo, mock, closeFn := setupMock(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE reservas SET estado = 'cancelada'").WithArgs(11).
			WillReturnRows(sqlmock.NewRows([]string{"id_membresia"}).AddRow(5))
		mock.ExpectExec("UPDATE membresias").WithArgs(5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Cancel(ctx, 11)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Second cancel is rejected", func(t *testing.T) {
		repo, mock, closeFn := setupMock(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE reservas SET estado = 'cancelada'").WithArgs(11).
			WillReturnRows(sqlmock.NewRows([]string{"id_membresia"}))
		mock.ExpectRollback()

		err := repo.Cancel(ctx, 11)
		assert.ErrorIs(t, err, ErrAlreadyFinalized)
	})
}

func TestMarkAttended(t *testing.T) {
	ctx := context.Background()

	t.Run("Reservada transitions to asistio and asistencia is recorded", func(t *testing.T) {
		repo, mock, closeFn := setupMock(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE reservas SET estado = 'asistio'").WithArgs(11).
			WillReturnRows(sqlmock.NewRows([]string{"id", "id_persona", "id_clase_gym", "fecha_reserva", "id_membresia", "estado", "created_at"}).
				AddRow(11, 7, 3, "2026-09-01", 5, "asistio", time.Now()))
		mock.ExpectQuery("INSERT INTO asistencias").WithArgs(7, 3, 11, "2026-09-01", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "id_persona", "id_clase_gym", "id_reserva", "fecha", "hora_entrada", "hora_salida", "tipo", "socio_nombre", "clase_nombre"}).
				AddRow(1, 7, 3, 11, "2026-09-01", "18:05", nil, "clase", "", nil))
		mock.ExpectCommit()

		asistencia, err := repo.MarkAttended(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, AsistenciaClase, asistencia.Tipo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Non-pending reserva is rejected", func(t *testing.T) {
		repo, mock, closeFn := setupMock(t)
		defer closeFn()

		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE reservas SET estado = 'asistio'").WithArgs(11).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := repo.MarkAttended(ctx, 11)
		assert.ErrorIs(t, err, ErrReservaNotPending)
	})
}

func TestMarkNoShows(t *testing.T) {
	repo, mock, closeFn := setupMock(t)
	defer closeFn()

	mock.ExpectExec("UPDATE reservas SET estado = 'ausente'\\s+FROM clases").
		WillReturnResult(sqlmock.NewResult(0, 3))

	marked, err := repo.MarkNoShows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)
}
