package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/portalhava/weather-data-service/internal/config"
	"github.com/portalhava/weather-data-service/internal/observability"
	"github.com/portalhava/weather-data-service/internal/weather"
)

// Scheduler periodically refreshes the warm snapshot for each configured city.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cities    []config.CityConfig
	interval  time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a new Scheduler.
func New(cities []config.CityConfig, interval time.Duration, service *weather.Service, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: s,
		service:   service,
		cities:    cities,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.cities) == 0 {
		s.logger.Info("no cities configured, nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.runOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) runOnce() {
	s.logger.Info("running snapshot refresh job", "cities", len(s.cities))

	var wg sync.WaitGroup
	for _, city := range s.cities {
		city := city
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			coord := city.Coordinate
			s.service.Refresh(ctx, city.Name, &coord)
		}()
	}
	wg.Wait()

	if s.metrics != nil {
		s.metrics.SnapshotRefreshes.Inc()
	}
	s.logger.Info("completed snapshot refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
