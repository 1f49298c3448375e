package membership

import (
	"context"
	"time"

	"gymdesk/internal/logger"
)

// ExpirySource is the repository slice the sweep needs.
type ExpirySource interface {
	ListExpiring(ctx context.Context) ([]ExpiringMembresia, error)
}

// ExpiryNotifier sends the renewal reminder. Implementations must not
// block; the email service queues and delivers in the background.
type ExpiryNotifier interface {
	MembresiaPorVencer(personaID int, servicioNombre, fechaFin string)
}

// ExpirySweeper mails a renewal reminder to socios whose fecha
// membership enters the por_vencer window.
type ExpirySweeper struct {
	source   ExpirySource
	notifier ExpiryNotifier
	interval time.Duration
}

func NewExpirySweeper(source ExpirySource, notifier ExpiryNotifier, interval time.Duration) *ExpirySweeper {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &ExpirySweeper{source: source, notifier: notifier, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled. One sweep runs
// immediately so restarts catch up without waiting a full interval.
func (s *ExpirySweeper) Start(ctx context.Context) {
	go func() {
		s.sweep(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	expiring, err := s.source.ListExpiring(sweepCtx)
	if err != nil {
		logger.Errorf("expiry sweep: %v", err)
		return
	}

	for _, m := range expiring {
		s.notifier.MembresiaPorVencer(m.IDPersona, m.ServicioNombre, m.FechaFin)
	}
	if len(expiring) > 0 {
		logger.Infof("expiry sweep queued %d reminders", len(expiring))
	}
}
