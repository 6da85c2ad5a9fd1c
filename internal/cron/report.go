package cron

import (
	"context"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bher20/evtariff/internal/household"
	"github.com/bher20/evtariff/internal/metrics"
	"github.com/bher20/evtariff/internal/notification"
	"github.com/bher20/evtariff/internal/storage"
)

const (
	JobName = "tariff_report"

	// KeyCheapest holds the id of the cheapest tariff seen by the last run.
	KeyCheapest = "report:cheapestTariff"
)

var lockKey = jobLockKey(JobName)

// jobLockKey maps a job name onto the advisory lock id space.
func jobLockKey(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte("evtariff:" + name))
	return int64(h.Sum64())
}

// Reporter periodically ranks the household's tariffs, publishes the costs
// as metrics and notifies when the cheapest tariff changes.
type Reporter struct {
	svc      *household.Service
	store    storage.Storage
	notifier *notification.Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewReporter(svc *household.Service, st storage.Storage, n *notification.Notifier, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	if n == nil {
		n = notification.NewNotifier(log)
	}
	return &Reporter{svc: svc, store: st, notifier: n, log: log, now: time.Now}
}

// RunOnce executes a single report. When the store can coordinate replicas,
// only the holder of the job lock does any work.
func (r *Reporter) RunOnce(ctx context.Context) (err error) {
	started := r.now()
	defer func() { metrics.UpdateJobMetrics(JobName, started, err) }()

	if l, ok := r.store.(storage.Locker); ok {
		unlock, got, err := l.TryLock(ctx, lockKey)
		if err != nil {
			return fmt.Errorf("acquire job lock: %w", err)
		}
		if !got {
			r.log.Info("report: lock held by another worker, skipping run")
			return nil
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				r.log.Warn("report: release job lock failed", zap.Error(err))
			}
		}()
	}

	ranking, err := r.svc.Comparison(ctx)
	if err != nil {
		return fmt.Errorf("comparison: %w", err)
	}

	metrics.TariffAnnualCostPounds.Reset()
	for _, t := range ranking {
		metrics.TariffAnnualCostPounds.WithLabelValues(t.ID, t.Name).Set(t.AnnualCost)
	}
	if len(ranking) == 0 {
		return nil
	}

	current := ranking[0]
	prevID, _, err := r.store.Get(ctx, KeyCheapest)
	if err != nil {
		return fmt.Errorf("read last cheapest: %w", err)
	}
	if prevID == current.ID {
		r.log.Debug("report: cheapest tariff unchanged", zap.String("tariff", current.Name))
		return nil
	}

	// Record the new cheapest first so a failing channel does not cause the
	// others to repeat the notification on every run.
	if err := r.store.Set(ctx, KeyCheapest, current.ID); err != nil {
		return fmt.Errorf("store cheapest: %w", err)
	}

	event := notification.CheapestChanged{Current: current, Ranking: ranking, Timestamp: r.now()}
	for i := range ranking {
		if ranking[i].ID == prevID {
			prev := ranking[i]
			event.Previous = &prev
		}
	}
	r.log.Info("report: cheapest tariff changed",
		zap.String("previous", prevID),
		zap.String("current", current.ID),
		zap.Float64("annual_cost", current.AnnualCost))

	return r.notifier.Notify(ctx, event)
}

// Run executes a report immediately and then on schedule until ctx is done.
// Overlapping runs are skipped.
func (r *Reporter) Run(ctx context.Context, schedule string) error {
	spec := NormalizeSchedule(schedule)
	logger := cronLogger{r.log.Sugar()}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(spec, func() { r.runLogged(ctx) }); err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", schedule, err)
	}

	r.log.Info("report worker starting", zap.String("schedule", spec))
	r.runLogged(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

func (r *Reporter) runLogged(ctx context.Context) {
	started := r.now()
	if err := r.RunOnce(ctx); err != nil {
		r.log.Error("report: run failed", zap.Error(err), zap.Duration("duration", time.Since(started)))
		return
	}
	r.log.Info("report: run completed", zap.Duration("duration", time.Since(started)))
}

// NormalizeSchedule accepts a cron expression, a descriptor such as
// "@every 30m", or a plain number of seconds.
func NormalizeSchedule(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "@every 1h"
	}
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return fmt.Sprintf("@every %ds", v)
	}
	return s
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

// Info keeps cron's per-tick chatter at debug; skipped overlapping runs are
// reported at info.
func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	if msg == "skip" {
		l.s.Infow("cron: previous run still in progress, skipping", keysAndValues...)
		return
	}
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
