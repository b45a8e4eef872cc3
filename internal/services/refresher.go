// Package services hosts long-running background workers used by watch mode.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cantina/adminctl/domain"
	"github.com/cantina/adminctl/internal/infrastructure/monitor"
	"github.com/cantina/adminctl/internal/view"
	"github.com/cantina/adminctl/usecase/dashboard"
)

// RefresherConfig tunes the watch-mode refresh loop.
type RefresherConfig struct {
	Interval time.Duration
}

// Refresher re-fetches the dashboard on a schedule and hands each snapshot
// to the render callback. Responses race, so each fetch carries a sequencer
// token and a stale snapshot is dropped instead of overwriting a newer one.
type Refresher struct {
	dashboard *dashboard.UseCase
	monitor   *monitor.Monitor
	render    func(*domain.Dashboard)
	seq       *view.Sequencer
	cron      *cron.Cron
	cfg       RefresherConfig
	logger    *zap.Logger
}

func NewRefresher(dash *dashboard.UseCase, mon *monitor.Monitor, cfg RefresherConfig, render func(*domain.Dashboard), logger *zap.Logger) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Refresher{
		dashboard: dash,
		monitor:   mon,
		render:    render,
		seq:       &view.Sequencer{},
		cron:      cron.New(cron.WithSeconds()),
		cfg:       cfg,
		logger:    logger,
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, r.Refresh)

	return r
}

// Start fetches once immediately and then launches the scheduler.
func (r *Refresher) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.Refresh()
	r.cron.Start()
	r.logger.Info("dashboard refresher started")
}

// Stop gracefully stops the scheduler.
func (r *Refresher) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("dashboard refresher stopped")
}

// Refresh runs one fetch cycle synchronously.
func (r *Refresher) Refresh() {
	if r.dashboard == nil || r.render == nil {
		return
	}
	if r.monitor != nil && !r.monitor.IsOnline() {
		r.logger.Debug("skipping dashboard refresh (offline)")
		return
	}

	token := r.seq.Next()

	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Interval)
	defer cancel()

	dash, err := r.dashboard.Get(ctx)
	if err != nil {
		r.logger.Warn("dashboard refresh failed", zap.Error(err))
		return
	}

	if !r.seq.Apply(token, func() { r.render(dash) }) {
		r.logger.Debug("stale dashboard snapshot dropped")
	}
}
