package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rahul4469/youtube-analyzer/internal/metrics"
	"github.com/rahul4469/youtube-analyzer/internal/models"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeEmpty
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// Outcome is the result of one remote call. Value is only meaningful on success.
type Outcome[T any] struct {
	Kind  OutcomeKind
	Value T
	Err   error
}

func (o Outcome[T]) OK() bool {
	return o.Kind == OutcomeSuccess
}

// fetch runs call under its own timeout and classifies the result.
// models.ErrNoItems maps to OutcomeEmpty; any other error to OutcomeFailed.
func fetch[T any](ctx context.Context, timeout time.Duration, log zerolog.Logger, op string, call func(context.Context) (T, error)) Outcome[T] {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	value, err := call(callCtx)

	var out Outcome[T]
	switch {
	case err == nil:
		out = Outcome[T]{Kind: OutcomeSuccess, Value: value}
	case errors.Is(err, models.ErrNoItems):
		out = Outcome[T]{Kind: OutcomeEmpty, Err: err}
		log.Debug().Str("operation", op).Msg("remote call returned no items")
	default:
		out = Outcome[T]{Kind: OutcomeFailed, Err: err}
		log.Warn().
			Err(err).
			Str("operation", op).
			Dur("elapsed", time.Since(start)).
			Msg("remote call failed")
	}

	metrics.RemoteCalls.WithLabelValues(op, out.Kind.String()).Inc()
	return out
}
