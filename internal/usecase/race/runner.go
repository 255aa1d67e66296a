package race

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"hippodrome/internal/domain/entity"
	"hippodrome/internal/observability/logging"
	"hippodrome/internal/observability/metrics"
	"hippodrome/internal/observability/tracing"
)

// Outcome describes how a race ended.
type Outcome string

const (
	// OutcomeFinished means the leader reached the finish line.
	OutcomeFinished Outcome = "finished"
	// OutcomeExhausted means the round limit was reached first.
	OutcomeExhausted Outcome = "exhausted"
	// OutcomeCancelled means the context ended the race early.
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeFailed means a round was aborted.
	OutcomeFailed Outcome = "failed"
)

// RunnerConfig holds the stop conditions and pacing of a race.
type RunnerConfig struct {
	// FinishLine is the distance that ends the race once the leader reaches it.
	// Zero disables the finish line.
	FinishLine float64

	// MaxRounds caps the number of rounds. Zero disables the cap.
	MaxRounds int

	// RoundInterval is the minimum pause between two rounds.
	// Zero runs rounds back to back.
	RoundInterval time.Duration
}

// Observer is notified as a race progresses.
type Observer interface {
	// OnRound is called after every completed round with the horses ordered leader first.
	OnRound(round int, standings []*entity.Horse)
	// OnFinish is called once with the winner when the race ends normally.
	OnFinish(winner *entity.Horse)
}

// Result summarizes a race.
type Result struct {
	RaceID   string
	Winner   *entity.Horse
	Rounds   int
	Outcome  Outcome
	Duration time.Duration
}

// Runner drives a hippodrome round by round.
type Runner struct {
	cfg       RunnerConfig
	logger    *slog.Logger
	observers []Observer
}

// NewRunner creates a runner. At least one of FinishLine and MaxRounds must be set.
// A nil logger means the one carried by the context passed to Run.
func NewRunner(cfg RunnerConfig, logger *slog.Logger, observers ...Observer) (*Runner, error) {
	if cfg.FinishLine <= 0 && cfg.MaxRounds <= 0 {
		return nil, ErrNoStopCondition
	}
	return &Runner{cfg: cfg, logger: logger, observers: observers}, nil
}

// Run moves the hippodrome until the leader crosses the finish line, the round
// limit is reached or ctx is done. A failed round stops the race and its error
// is returned together with the partial result.
func (r *Runner) Run(ctx context.Context, h *Hippodrome) (Result, error) {
	horses := h.Horses()
	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	logger = logging.WithRaceID(logger, h.ID())
	start := time.Now()

	ctx, span := tracing.StartRaceSpan(ctx, h.ID(), len(horses))
	defer span.End()

	metrics.RecordRaceStarted(len(horses))
	logger.Info("race started",
		slog.Int("horses", len(horses)),
		slog.Float64("finish_line", r.cfg.FinishLine),
		slog.Int("max_rounds", r.cfg.MaxRounds))

	limit := rate.Inf
	if r.cfg.RoundInterval > 0 {
		limit = rate.Every(r.cfg.RoundInterval)
	}
	limiter := rate.NewLimiter(limit, 1)

	result := Result{RaceID: h.ID()}
	finish := func(outcome Outcome, err error) (Result, error) {
		result.Outcome = outcome
		result.Rounds = h.Round()
		result.Duration = time.Since(start)
		metrics.RecordRaceCompleted(string(outcome), result.Rounds)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Warn("race stopped",
				slog.String("outcome", string(outcome)),
				slog.Int("rounds", result.Rounds),
				slog.Any("error", err))
			return result, err
		}
		logger.Info("race completed",
			slog.String("outcome", string(outcome)),
			slog.String("winner", result.Winner.Name()),
			slog.Float64("distance", result.Winner.Distance()),
			slog.Int("rounds", result.Rounds),
			slog.Duration("duration", result.Duration))
		return result, nil
	}

	for {
		if err := limiter.Wait(ctx); err != nil {
			return finish(OutcomeCancelled, fmt.Errorf("wait for round %d: %w", h.Round()+1, err))
		}

		if err := r.runRound(ctx, h); err != nil {
			outcome := OutcomeFailed
			if ctx.Err() != nil {
				outcome = OutcomeCancelled
			}
			return finish(outcome, fmt.Errorf("round %d: %w", h.Round()+1, err))
		}

		leader, err := h.Winner()
		if err != nil {
			return finish(OutcomeFailed, err)
		}
		result.Winner = leader
		metrics.RecordLeader(leader.Distance())

		standings := h.Standings()
		for _, o := range r.observers {
			o.OnRound(h.Round(), standings)
		}
		logger.Debug("round completed",
			slog.Int("round", h.Round()),
			slog.String("leader", leader.Name()),
			slog.Float64("distance", leader.Distance()))

		outcome, done := r.stopCondition(h.Round(), leader)
		if done {
			for _, o := range r.observers {
				o.OnFinish(leader)
			}
			return finish(outcome, nil)
		}
	}
}

func (r *Runner) runRound(ctx context.Context, h *Hippodrome) error {
	ctx, span := tracing.StartRoundSpan(ctx, h.ID(), h.Round()+1)
	defer span.End()

	start := time.Now()
	err := h.Move(ctx)
	metrics.RecordRound(err == nil, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (r *Runner) stopCondition(round int, leader *entity.Horse) (Outcome, bool) {
	if r.cfg.FinishLine > 0 && leader.Distance() >= r.cfg.FinishLine {
		return OutcomeFinished, true
	}
	if r.cfg.MaxRounds > 0 && round >= r.cfg.MaxRounds {
		return OutcomeExhausted, true
	}
	return "", false
}
