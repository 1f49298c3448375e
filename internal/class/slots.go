package class

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Spanish weekday names as stored in dias_semana. Accent-less variants are
// accepted because existing rows carry both spellings.
var weekdayNames = map[time.Weekday][]string{
	time.Monday:    {"Lunes"},
	time.Tuesday:   {"Martes"},
	time.Wednesday: {"Miércoles", "Miercoles"},
	time.Thursday:  {"Jueves"},
	time.Friday:    {"Viernes"},
	time.Saturday:  {"Sábado", "Sabado"},
	time.Sunday:    {"Domingo"},
}

func slotKey(claseID int, fecha string) string {
	return fmt.Sprintf("%d-%s", claseID, fecha)
}

// RunsOn reports whether the clase has an occurrence on the given date.
func RunsOn(clase *Clase, date time.Time) bool {
	days := strings.Split(clase.DiasSemana, ",")
	for _, day := range days {
		day = strings.TrimSpace(day)
		for _, name := range weekdayNames[date.Weekday()] {
			if strings.EqualFold(day, name) {
				return true
			}
		}
	}
	return false
}

// ExpandSlots turns class templates into the concrete occurrences inside
// [startDate, endDate]. Occupancy and the viewer's own reservations are
// joined in afterwards; here every slot starts empty.
func ExpandSlots(clases []Clase, startDate, endDate time.Time) []ClassSlot {
	var slots []ClassSlot

	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		for i := range clases {
			clase := &clases[i]
			if clase.Estado != EstadoActiva || !RunsOn(clase, d) {
				continue
			}

			fecha := d.Format("2006-01-02")
			slots = append(slots, ClassSlot{
				ID:          slotKey(clase.ID, fecha),
				ClaseID:     clase.ID,
				Nombre:      clase.Nombre,
				Instructor:  clase.CoachNombre,
				Fecha:       fecha,
				Hora:        clase.HoraInicio,
				Duracion:    clase.DuracionMinutos,
				Capacidad:   clase.CupoMaximo,
				Alumnos:     []string{},
				Disponibles: clase.CupoMaximo,
				EstadoClase: clase.Estado,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Fecha != slots[j].Fecha {
			return slots[i].Fecha < slots[j].Fecha
		}
		if slots[i].Hora != slots[j].Hora {
			return slots[i].Hora < slots[j].Hora
		}
		return slots[i].ClaseID < slots[j].ClaseID
	})

	return slots
}

// AvailableSlots derives the instancias list for the date range, computed
// fresh on every call: the client reloads after each mutation instead of
// patching local state, so reads must always reflect committed rows.
// personaID 0 means the viewer has no linked person (owner/staff accounts);
// their slots simply carry reservada=false.
func (r *Repository) AvailableSlots(ctx context.Context, startDate, endDate string, personaID int) ([]ClassSlot, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date before start_date")
	}

	clases, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	slots := ExpandSlots(clases, start, end)
	if len(slots) == 0 {
		return []ClassSlot{}, nil
	}

	occupancy, err := r.occupancy(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	var own map[string]int
	if personaID > 0 {
		own, err = r.ownReservations(ctx, personaID, startDate, endDate)
		if err != nil {
			return nil, err
		}
	}

	for i := range slots {
		slot := &slots[i]

		if occ, ok := occupancy[slot.ID]; ok {
			slot.Inscritos = occ.Inscritos
			slot.Disponibles = slot.Capacidad - occ.Inscritos
			if slot.Disponibles < 0 {
				slot.Disponibles = 0
			}
			if occ.Alumnos != nil && *occ.Alumnos != "" {
				slot.Alumnos = strings.Split(*occ.Alumnos, "|")
			}
		}

		if reservaID, ok := own[slot.ID]; ok {
			slot.Reservada = true
			id := reservaID
			slot.ReservaID = &id
		}
	}

	return slots, nil
}
