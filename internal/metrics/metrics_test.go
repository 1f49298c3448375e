package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("GET", "/socios", "200", 0.05)
	RecordHTTPRequest("GET", "/socios", "200", 0.07)
	RecordHTTPRequest("POST", "/reservas", "409", 0.01)

	okCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/socios", "200"))
	conflictCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/reservas", "409"))

	assert.Equal(t, float64(2), okCount)
	assert.Equal(t, float64(1), conflictCount)
}

func TestRecordReservation(t *testing.T) {
	ReservationsTotal.Reset()
	cancelsBefore := testutil.ToFloat64(ReservationCancellationsTotal)

	RecordReservation("creditos")
	RecordReservation("creditos")
	RecordReservation("fecha")
	RecordReservationCancellation()

	assert.Equal(t, float64(2), testutil.ToFloat64(ReservationsTotal.WithLabelValues("creditos")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ReservationsTotal.WithLabelValues("fecha")))
	assert.Equal(t, cancelsBefore+1, testutil.ToFloat64(ReservationCancellationsTotal))
}

func TestRecordAttendance(t *testing.T) {
	AttendancesTotal.Reset()
	noShowsBefore := testutil.ToFloat64(NoShowsTotal)

	RecordAttendance("clase")
	RecordAttendance("libre")
	RecordNoShow()

	assert.Equal(t, float64(1), testutil.ToFloat64(AttendancesTotal.WithLabelValues("clase")))
	assert.Equal(t, float64(1), testutil.ToFloat64(AttendancesTotal.WithLabelValues("libre")))
	assert.Equal(t, noShowsBefore+1, testutil.ToFloat64(NoShowsTotal))
}

func TestRecordLogin(t *testing.T) {
	LoginsTotal.Reset()

	RecordLogin("success")
	RecordLogin("failed")
	RecordLogin("failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(LoginsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(LoginsTotal.WithLabelValues("failed")))
}
