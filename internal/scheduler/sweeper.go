package scheduler

import (
	"context"
	"time"

	"pet-care-log/internal/domain/reminders"
	"pet-care-log/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// ReminderSource es lo que el sweeper necesita del servicio de recordatorios.
type ReminderSource interface {
	Due(ctx context.Context, at time.Time) ([]reminders.Reminder, error)
	AdvanceRecurring(ctx context.Context, at time.Time) (int, error)
}

// Sweeper revisa cada minuto los recordatorios vencidos: los anuncia por el
// logger y mueve los repetitivos a su siguiente ocurrencia.
type Sweeper struct {
	src  ReminderSource
	log  logger.Logger
	cron *cron.Cron
	now  func() time.Time
}

func New(src ReminderSource, log logger.Logger, loc *time.Location) *Sweeper {
	if loc == nil {
		loc = time.Local
	}
	return &Sweeper{
		src:  src,
		log:  log,
		cron: cron.New(cron.WithLocation(loc)),
		now:  time.Now,
	}
}

// Start registra el job y arranca el loop del scheduler.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop detiene el scheduler y espera a que termine el job en vuelo.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep es una pasada individual; el cron la invoca cada minuto.
func (s *Sweeper) Sweep() {
	ctx := context.Background()
	now := s.now()

	due, err := s.src.Due(ctx, now)
	if err != nil {
		s.log.Error("reminder sweep failed", map[string]any{"error": err.Error()})
		return
	}

	for _, rem := range due {
		fields := map[string]any{
			"reminder_id": rem.ID,
			"pet_id":      rem.PetID,
			"name":        rem.Name,
		}
		if rem.RemindAt != nil {
			fields["remind_at"] = rem.RemindAt.Format(time.RFC3339)
		}
		s.log.Info("reminder due", fields)
	}

	advanced, err := s.src.AdvanceRecurring(ctx, now)
	if err != nil {
		s.log.Error("advancing recurring reminders failed", map[string]any{"error": err.Error()})
		return
	}
	if advanced > 0 {
		s.log.Info("recurring reminders advanced", map[string]any{"count": advanced})
	}
}
