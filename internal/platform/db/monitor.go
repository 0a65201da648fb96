package db

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type statProvider interface {
	Stat() *pgxpool.Stat
}

// HealthMonitor pings the database on a fixed interval and logs pool usage.
type HealthMonitor struct {
	pinger   Pinger
	interval time.Duration

	mu    sync.Mutex
	sched gocron.Scheduler
}

func (m *HealthMonitor) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(func(jobCtx context.Context) {
			_ = m.Check(jobCtx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	m.mu.Lock()
	m.sched = scheduler
	m.mu.Unlock()
	scheduler.Start()

	go func() {
		<-ctx.Done()
		if sdErr := m.Shutdown(); sdErr != nil {
			logrus.Errorf("Health monitor shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Check pings the database once.
func (m *HealthMonitor) Check(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := m.pinger.Ping(pingCtx); err != nil {
		logrus.WithError(err).WithField("component", "db_health").Error("database ping failed")
		return err
	}

	if sp, ok := m.pinger.(statProvider); ok {
		stat := sp.Stat()
		logrus.WithFields(logrus.Fields{
			"component":      "db_health",
			"total_conns":    stat.TotalConns(),
			"idle_conns":     stat.IdleConns(),
			"acquired_conns": stat.AcquiredConns(),
			"max_conns":      stat.MaxConns(),
		}).Debug("database healthy")
	}
	return nil
}

func (m *HealthMonitor) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sched == nil {
		return nil
	}
	err := m.sched.Shutdown()
	m.sched = nil
	return err
}

func (m *HealthMonitor) running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sched != nil
}

func NewHealthMonitor(pinger Pinger, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &HealthMonitor{pinger: pinger, interval: interval}
}
