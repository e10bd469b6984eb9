// Package outcome carries component results together with the kind of
// degradation that produced them.
package outcome

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	ErrMalformedInput     = errors.New("malformed input")
	ErrNoData             = errors.New("no data")
	ErrComputationFailure = errors.New("computation failure")
)

type Kind string

const (
	KindOK                 Kind = "ok"
	KindMalformedInput     Kind = "malformed_input"
	KindNoData             Kind = "no_data"
	KindComputationFailure Kind = "computation_failure"
)

// Result is a value that is always usable. Err is non-nil when the value is a
// substitute or was produced from degraded input.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) Kind() Kind { return KindOf(r.Err) }

func (r Result[T]) OK() bool { return r.Err == nil }

func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOK
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrNoData):
		return KindNoData
	default:
		return KindComputationFailure
	}
}

func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}

func Failed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrComputationFailure, fmt.Sprintf(format, args...))
}

// Guard runs fn and never lets a panic or a computation failure escape.
// On failure the value is replaced by fallback(). NoData and MalformedInput
// results keep the value fn produced, since those are representable states.
func Guard[T any](log logrus.FieldLogger, component string, fallback func() T, fn func() (T, error)) (res Result[T]) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	defer func() {
		if r := recover(); r != nil {
			res = Result[T]{Value: fallback(), Err: fmt.Errorf("%w: panic: %v", ErrComputationFailure, r)}
		}
		if res.Err != nil {
			entry := log.WithFields(logrus.Fields{"component": component, "kind": res.Kind()})
			if res.Kind() == KindComputationFailure {
				entry.WithError(res.Err).Error("component failed, using fallback")
			} else {
				entry.WithError(res.Err).Debug("degraded input")
			}
		}
	}()

	v, err := fn()
	if err != nil && KindOf(err) == KindComputationFailure {
		if !errors.Is(err, ErrComputationFailure) {
			err = fmt.Errorf("%w: %w", ErrComputationFailure, err)
		}
		return Result[T]{Value: fallback(), Err: err}
	}
	return Result[T]{Value: v, Err: err}
}
