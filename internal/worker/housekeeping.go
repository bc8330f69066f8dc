package worker

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"hotelier/config"
	roomService "hotelier/internal/domains/room/service"
	"hotelier/shared/timezone"
)

// Housekeeping runs the daily room sweep on a fixed schedule.
type Housekeeping struct {
	config    *config.Config
	rooms     roomService.Room
	scheduler gocron.Scheduler
}

func NewHousekeeping(conf *config.Config, rooms roomService.Room) (*Housekeeping, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(timezone.Location()))
	if err != nil {
		return nil, fmt.Errorf("failed to create housekeeping scheduler: %w", err)
	}

	return &Housekeeping{
		config:    conf,
		rooms:     rooms,
		scheduler: scheduler,
	}, nil
}

// Start schedules the sweep once per day at the configured hour. Disabled
// deployments skip scheduling entirely.
func (h *Housekeeping) Start() error {
	if !h.config.Housekeeping.Enable {
		log.Info().Msg("Housekeeping schedule disabled")

		return nil
	}

	atHour := h.config.Housekeeping.AtHour

	_, err := h.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(uint(atHour), 0, 0))),
		gocron.NewTask(func() {
			if err := h.rooms.HousekeepingSweep(context.Background()); err != nil {
				log.Error().Err(err).Msg("Housekeeping sweep failed")
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule housekeeping sweep: %w", err)
	}

	h.scheduler.Start()

	log.Info().Int("at_hour", atHour).Msg("Housekeeping schedule started")

	return nil
}

func (h *Housekeeping) Stop() {
	if err := h.scheduler.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Failed to shut down housekeeping scheduler")
	}
}
