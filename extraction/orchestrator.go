package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/docstruct/docstruct/model"
)

// Status is the overall result of an orchestrated extraction
type Status int

const (
	Succeeded Status = iota
	AllFailed
)

func (s Status) String() string {
	if s == Succeeded {
		return "succeeded"
	}
	return "all_failed"
}

// MarshalText renders the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome records every attempt made and the elements of the one that
// succeeded, if any.
type Outcome struct {
	Status     Status
	MethodUsed string
	Attempts   []model.ExtractionAttempt
	Elements   *Elements
}

// Err returns nil on success and an error wrapping ErrAllStrategiesFailed
// otherwise.
func (o *Outcome) Err() error {
	if o.Status == Succeeded {
		return nil
	}
	if len(o.Attempts) == 0 {
		return fmt.Errorf("%w: no strategies configured", ErrAllStrategiesFailed)
	}
	last := o.Attempts[len(o.Attempts)-1]
	return fmt.Errorf("%w: last attempt %s: %s", ErrAllStrategiesFailed, last.Strategy, last.FailureReason)
}

// Config holds configuration for the orchestrator
type Config struct {
	// StrategyTimeout bounds each strategy's run
	// Default: 2m
	StrategyTimeout time.Duration
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{StrategyTimeout: 2 * time.Minute}
}

// Orchestrator tries strategies one after another until one yields elements
type Orchestrator struct {
	strategies []Strategy
	config     Config
	log        zerolog.Logger
}

// NewOrchestrator creates an orchestrator over strategies in priority order
func NewOrchestrator(strategies []Strategy, config Config) *Orchestrator {
	return &Orchestrator{strategies: strategies, config: config, log: zerolog.Nop()}
}

// WithLogger returns a copy of the orchestrator that logs to l
func (o *Orchestrator) WithLogger(l zerolog.Logger) *Orchestrator {
	cp := *o
	cp.log = l.With().Str("component", "extraction").Logger()
	return &cp
}

// Strategies returns the configured strategies in order
func (o *Orchestrator) Strategies() []Strategy {
	return o.strategies
}

// Run tries each strategy in order and stops at the first success. Errors,
// timeouts, panics and empty results count as failures. Once ctx is done
// the remaining strategies are recorded as cancelled without running.
func (o *Orchestrator) Run(ctx context.Context, src Source) *Outcome {
	out := &Outcome{Status: AllFailed}

	for i, s := range o.strategies {
		if ctx.Err() != nil {
			for _, skipped := range o.strategies[i:] {
				out.Attempts = append(out.Attempts, model.ExtractionAttempt{
					Strategy:      skipped.Name(),
					FailureReason: ErrCancelled.Error(),
				})
			}
			o.log.Warn().Int("skipped", len(o.strategies)-i).Msg("extraction cancelled")
			break
		}

		attempt, els := o.attempt(ctx, s, src)
		out.Attempts = append(out.Attempts, attempt)

		if attempt.Success {
			out.Attempts[len(out.Attempts)-1].Final = true
			out.Status = Succeeded
			out.MethodUsed = s.Name()
			out.Elements = els
			o.log.Info().
				Str("strategy", s.Name()).
				Int("pages", els.PageCount()).
				Int("elements", els.Count()).
				Dur("took", attempt.Duration).
				Msg("extraction succeeded")
			return out
		}

		o.log.Warn().
			Str("strategy", s.Name()).
			Str("reason", attempt.FailureReason).
			Dur("took", attempt.Duration).
			Msg("extraction strategy failed")
	}

	if n := len(out.Attempts); n > 0 {
		out.Attempts[n-1].Final = true
	}
	o.log.Error().Int("attempts", len(out.Attempts)).Msg("all extraction strategies failed")
	return out
}

type strategyResult struct {
	els *Elements
	err error
}

func (o *Orchestrator) attempt(ctx context.Context, s Strategy, src Source) (model.ExtractionAttempt, *Elements) {
	start := time.Now()
	attempt := model.ExtractionAttempt{Strategy: s.Name()}

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if o.config.StrategyTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, o.config.StrategyTimeout)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	// buffered so a strategy that ignores its context can still finish
	done := make(chan strategyResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- strategyResult{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		els, err := s.Extract(runCtx, src)
		done <- strategyResult{els: els, err: err}
	}()

	var res strategyResult
	select {
	case res = <-done:
	case <-runCtx.Done():
		res = strategyResult{err: runCtx.Err()}
	}
	attempt.Duration = time.Since(start)

	err := res.err
	if err == nil {
		err = res.els.validate()
	}
	if err != nil {
		attempt.FailureReason = o.reason(ctx, err)
		return attempt, nil
	}

	attempt.Success = true
	attempt.ElementsPerPage = res.els.PerPage()
	return attempt, res.els
}

func (o *Orchestrator) reason(parent context.Context, err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil:
		return fmt.Sprintf("timeout after %s", o.config.StrategyTimeout)
	case errors.Is(err, context.Canceled) && parent.Err() != nil:
		return ErrCancelled.Error()
	default:
		return err.Error()
	}
}
