// Package scheduler tareas periódicas del servicio.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/atp-api/pkg/config"
)

// StockViewRefresher recalcula la vista de existencias actuales.
type StockViewRefresher interface {
	RefreshLatestView(ctx context.Context) error
}

// Scheduler administra las tareas programadas con cron.
type Scheduler struct {
	cron      *cron.Cron
	refresher StockViewRefresher
	cfg       config.SchedulerConfig
	log       zerolog.Logger
}

// New construye el scheduler. El parser es el estándar de 5 campos (más descriptores @every, @hourly...).
func New(cfg config.SchedulerConfig, refresher StockViewRefresher, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		refresher: refresher,
		cfg:       cfg,
		log:       log,
	}
}

// Start registra las tareas y arranca el cron en su propia goroutine.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.StockRefreshSpec, s.refreshStockView); err != nil {
		return fmt.Errorf("scheduler: programar refresco de existencias %q: %w", s.cfg.StockRefreshSpec, err)
	}
	s.log.Info().Str("spec", s.cfg.StockRefreshSpec).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler: tarea en curso no terminó antes del apagado")
	}
}

func (s *Scheduler) refreshStockView() {
	timeout := time.Duration(s.cfg.JobTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	if err := s.refresher.RefreshLatestView(ctx); err != nil {
		s.log.Error().Err(err).Msg("scheduler: refresco de existencias fallido")
		return
	}
	s.log.Debug().Dur("elapsed", time.Since(start)).Msg("scheduler: existencias refrescadas")
}
