package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sony/gobreaker"

	"hippodrome/internal/infra/console"
	"hippodrome/internal/infra/roster"
	workerPkg "hippodrome/internal/infra/worker"
	"hippodrome/internal/observability/logging"
	"hippodrome/internal/observability/tracing"
	"hippodrome/internal/resilience/circuitbreaker"
	"hippodrome/internal/resilience/retry"
	"hippodrome/internal/usecase/race"
)

func main() {
	os.Exit(run())
}

// run wires the process together and returns its exit status.
func run() int {
	logger := initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load race configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	cfg, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load race configuration", slog.Any("error", err))
		return 1
	}
	logger.Info("race configuration loaded",
		slog.Float64("finish_line", cfg.FinishLine),
		slog.Int("max_rounds", cfg.MaxRounds),
		slog.Duration("round_interval", cfg.RoundInterval),
		slog.Duration("race_timeout", cfg.RaceTimeout),
		slog.String("schedule", cfg.Schedule),
		slog.String("timezone", cfg.Timezone))

	shutdownTracer := tracing.InitTracer()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error("failed to shut down tracer", slog.Any("error", err))
		}
	}()

	field, err := loadRoster(ctx, cfg.RosterFile)
	if err != nil {
		logger.Error("failed to load roster", slog.String("path", cfg.RosterFile), slog.Any("error", err))
		return 1
	}

	driver := &raceDriver{
		cfg:     cfg,
		field:   field,
		out:     os.Stdout,
		logger:  logger,
		metrics: workerMetrics,
	}

	if cfg.MetricsEnabled || cfg.Scheduled() {
		startMetricsServer(ctx, logger, cfg.MetricsPort)
	}

	if !cfg.Scheduled() {
		if _, err := driver.runOnce(ctx); err != nil {
			return 1
		}
		return 0
	}

	healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
	driver.health = workerPkg.NewHealthServer(healthAddr, logger)
	driver.breaker = newRaceBreaker(driver.health)
	driver.reload = cfg.RosterFile != ""
	go func() {
		if err := driver.health.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	if err := startScheduler(ctx, driver); err != nil {
		logger.Error("failed to start race scheduler", slog.Any("error", err))
		return 1
	}
	return 0
}

// initLogger initializes the process logger. Logs go to stderr so the race
// track on stdout stays readable.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// loadRoster reads the roster file, or returns the built-in field when path is empty.
// Transient read failures are retried with backoff.
func loadRoster(ctx context.Context, path string) (*roster.Roster, error) {
	if path == "" {
		return roster.Default(), nil
	}
	var field *roster.Roster
	err := retry.WithBackoff(ctx, retry.RosterConfig(), func() error {
		var err error
		field, err = roster.Load(path)
		return err
	})
	return field, err
}

// newRaceBreaker returns the breaker guarding scheduled races. The worker
// reports not ready while the circuit is open.
func newRaceBreaker(health *workerPkg.HealthServer) *circuitbreaker.CircuitBreaker {
	cfg := circuitbreaker.RaceJobConfig()
	cfg.OnStateChange = func(_, to gobreaker.State) {
		health.SetReady(to != gobreaker.StateOpen)
	}
	return circuitbreaker.New(cfg)
}

// raceDriver runs races from a roster and reports their results.
type raceDriver struct {
	cfg     *workerPkg.RaceConfig
	field   *roster.Roster
	out     io.Writer
	logger  *slog.Logger
	metrics *workerPkg.WorkerMetrics

	// Set in scheduled mode only.
	health  *workerPkg.HealthServer
	breaker *circuitbreaker.CircuitBreaker
	reload  bool
}

// runOnce builds a fresh field and races it to completion.
// The race is bounded by the configured timeout. While the breaker rejects
// work the race is skipped and the breaker's error is returned.
func (d *raceDriver) runOnce(ctx context.Context) (race.Result, error) {
	startTime := time.Now()

	var result race.Result
	var err error
	if d.breaker == nil {
		result, err = d.race(ctx)
	} else {
		err = d.breaker.Execute(func() error {
			var raceErr error
			result, raceErr = d.race(ctx)
			return raceErr
		})
		if errors.Is(err, circuitbreaker.ErrOpen) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
			d.logger.Warn("race skipped",
				slog.String("circuit", d.breaker.Name()),
				slog.String("state", d.breaker.State().String()),
				slog.Any("error", err))
			d.metrics.RecordRaceRun("skipped")
			return result, err
		}
	}

	status := "success"
	if err != nil {
		status = "failure"
		d.logger.Error("race failed", slog.Any("error", err))
	}
	d.metrics.RecordRaceRun(status)
	d.metrics.RecordRaceDuration(time.Since(startTime).Seconds())
	if err == nil {
		d.metrics.RecordLastSuccess()
	}
	if d.health != nil {
		d.health.RecordRace(raceStatus(result, err, time.Now()))
	}
	return result, err
}

func (d *raceDriver) race(ctx context.Context) (race.Result, error) {
	if d.reload {
		field, err := loadRoster(ctx, d.cfg.RosterFile)
		if err != nil {
			return race.Result{}, fmt.Errorf("reload roster: %w", err)
		}
		d.field = field
	}

	horses, err := d.field.Horses()
	if err != nil {
		return race.Result{}, fmt.Errorf("build field: %w", err)
	}
	h, err := race.New(horses)
	if err != nil {
		return race.Result{}, fmt.Errorf("create race: %w", err)
	}

	renderer := console.NewRenderer(d.out, horses)
	runner, err := race.NewRunner(race.RunnerConfig{
		FinishLine:    d.cfg.FinishLine,
		MaxRounds:     d.cfg.MaxRounds,
		RoundInterval: d.cfg.RoundInterval,
	}, nil, renderer)
	if err != nil {
		return race.Result{RaceID: h.ID()}, fmt.Errorf("create runner: %w", err)
	}

	ctx, cancel := context.WithTimeout(logging.WithLogger(ctx, d.logger), d.cfg.RaceTimeout)
	defer cancel()

	result, err := runner.Run(ctx, h)
	if err != nil {
		return result, err
	}
	if err := renderer.Err(); err != nil {
		return result, fmt.Errorf("render race: %w", err)
	}
	return result, nil
}

// raceStatus converts a race result into the summary served by the health server.
func raceStatus(result race.Result, err error, finishedAt time.Time) workerPkg.RaceStatus {
	status := workerPkg.RaceStatus{
		RaceID:     result.RaceID,
		Outcome:    string(result.Outcome),
		Rounds:     result.Rounds,
		FinishedAt: finishedAt,
	}
	if result.Winner != nil {
		status.Winner = result.Winner.Name()
		// An overflowed distance cannot be encoded as JSON.
		if d := result.Winner.Distance(); !math.IsInf(d, 0) && !math.IsNaN(d) {
			status.Distance = d
		}
	}
	if err != nil {
		status.Error = err.Error()
		if status.Outcome == "" {
			status.Outcome = string(race.OutcomeFailed)
		}
	}
	return status
}

// newScheduler returns a cron in loc whose jobs recover from panics and
// skip ticks that fire while the previous race is still running.
func newScheduler(loc *time.Location, logger *slog.Logger) *cron.Cron {
	cl := cronLogger{logger: logger}
	return cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
}

// cronLogger adapts slog to cron.Logger. Scheduler chatter goes to debug.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, slog.Any("error", err))...)
}

// startScheduler runs a race on every tick of the configured schedule until ctx is done.
// Ticks that fire while a race is still running are skipped.
func startScheduler(ctx context.Context, d *raceDriver) error {
	loc, err := time.LoadLocation(d.cfg.Timezone)
	if err != nil {
		d.logger.Error("invalid timezone, using UTC", slog.String("timezone", d.cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := newScheduler(loc, d.logger)

	_, err = c.AddFunc(d.cfg.Schedule, func() {
		_, _ = d.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("add race job: %w", err)
	}
	c.Start()

	d.health.SetReady(true)
	d.logger.Info("race scheduler started", slog.String("schedule", d.cfg.Schedule), slog.String("timezone", loc.String()))

	<-ctx.Done()
	d.health.SetReady(false)
	<-c.Stop().Done()
	d.logger.Info("race scheduler stopped")
	return nil
}
