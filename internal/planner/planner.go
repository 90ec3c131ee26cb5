// Package planner handles a form submission end to end: validate, compute,
// record, and optionally journal.
package planner

import (
	"context"
	"errors"

	"github.com/theirongolddev/payplan/internal/allocation"
	"github.com/theirongolddev/payplan/internal/intake"
	"github.com/theirongolddev/payplan/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// User-facing messages for rejected submissions.
const (
	MsgIncomplete  = "Please complete all selections."
	MsgInvalidNum  = "Please enter valid numeric values."
	MsgInvalidTier = "Invalid risk level selection."
	MsgUnexpected  = "Something went wrong. Please try again."
)

// Recorder is the record log a planner appends to. Both history.Log and
// history.Locked satisfy it.
type Recorder interface {
	Add(income decimal.Decimal, classYear model.ClassYear, over21 bool, tier model.RiskTier, months int) model.Record
}

// Appender persists a submission outside the process. store.Journal
// satisfies it.
type Appender interface {
	Append(ctx context.Context, rec model.Record, b allocation.Breakdown) error
}

// Result is a successful submission.
type Result struct {
	Record    model.Record
	Breakdown allocation.Breakdown
}

// Planner turns raw form input into a recorded breakdown.
type Planner struct {
	log     Recorder
	journal Appender
	logger  zerolog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithJournal appends every accepted submission to j.
func WithJournal(j Appender) Option {
	return func(p *Planner) { p.journal = j }
}

// WithLogger sets the diagnostic logger. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// New returns a planner recording into log.
func New(log Recorder, opts ...Option) *Planner {
	p := &Planner{log: log, logger: zerolog.Nop()}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Evaluation is a validated submission and its breakdown, not yet recorded.
type Evaluation struct {
	Submission model.Submission
	Breakdown  allocation.Breakdown
}

// Evaluate validates f and computes its breakdown without touching the log.
// It is safe to call from several goroutines.
func (p *Planner) Evaluate(f intake.Form) (Evaluation, error) {
	sub, err := intake.Parse(f)
	if err != nil {
		p.logger.Debug().Err(err).Msg("submission rejected")
		return Evaluation{}, err
	}

	b, err := allocation.Compute(sub.Income, sub.RiskTier, sub.SimulationMonths)
	if err != nil {
		p.logger.Debug().Err(err).Str("tier", string(sub.RiskTier)).Msg("submission rejected")
		return Evaluation{}, err
	}
	return Evaluation{Submission: sub, Breakdown: b}, nil
}

// Commit records an evaluated submission and journals it. A journal failure
// is logged but does not fail the commit: the record is already in the log.
func (p *Planner) Commit(ctx context.Context, ev Evaluation) Result {
	sub := ev.Submission
	rec := p.log.Add(sub.Income, sub.ClassYear, sub.Over21, sub.RiskTier, sub.SimulationMonths)
	p.logger.Info().
		Str("id", rec.ID.String()).
		Str("date", rec.Date()).
		Str("tier", string(rec.RiskTier)).
		Int("months", rec.SimulationMonths).
		Msg("submission recorded")

	res := Result{Record: rec, Breakdown: ev.Breakdown}
	if p.journal != nil {
		if err := p.journal.Append(ctx, rec, ev.Breakdown); err != nil {
			p.logger.Warn().Err(err).Str("id", rec.ID.String()).Msg("journal append failed")
		}
	}
	return res
}

// Submit validates f, computes the breakdown and records it. Nothing is
// recorded when validation or computation fails.
func (p *Planner) Submit(ctx context.Context, f intake.Form) (Result, error) {
	ev, err := p.Evaluate(f)
	if err != nil {
		return Result{}, err
	}
	return p.Commit(ctx, ev), nil
}

// UserMessage converts any submission error into the text shown to the user.
func UserMessage(err error) string {
	var (
		incomplete *intake.IncompleteSelectionError
		numeric    *intake.InvalidNumericInputError
		tier       *allocation.InvalidTierError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &incomplete):
		return MsgIncomplete
	case errors.As(err, &numeric):
		return MsgInvalidNum
	case errors.As(err, &tier):
		return MsgInvalidTier
	default:
		return MsgUnexpected
	}
}

// IsUserError reports whether err is a validation error the user can fix.
func IsUserError(err error) bool {
	msg := UserMessage(err)
	return msg != "" && msg != MsgUnexpected
}
