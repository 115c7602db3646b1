package fundsim

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned when fewer than 2 usable prices are
	// available for a computation.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrEmptySelection is returned when an aggregate operation receives no fund.
	ErrEmptySelection = errors.New("empty fund selection")
	// ErrNoData is returned by the allocator when it has no fund metrics to work on.
	ErrNoData = errors.New("no fund metrics")
	// ErrDivideByZero is returned when weights cannot be normalized.
	ErrDivideByZero = errors.New("division by zero")
	// ErrZeroVolatility is returned when an inverse volatility score is undefined for every candidate.
	ErrZeroVolatility = errors.New("zero volatility")
	// ErrNegativeWeight is returned when normalized weights fall outside [0,1].
	ErrNegativeWeight = errors.New("weight out of [0,1]")
	// ErrNotFound is returned by providers when a fund has no series.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable is returned by providers when a series cannot be retrieved right now.
	ErrUnavailable = errors.New("unavailable")
	// ErrUnknownStrategy is returned when parsing an unknown strategy name.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrInvalidAnswer is returned for questionnaire answers other than a, b, c or d.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrInvalidArgument is returned for out of domain numeric arguments.
	ErrInvalidArgument = errors.New("invalid argument")
)

// FundError is a failure scoped to a single fund.
//
// Callers usually exclude that fund and carry on with the others.
type FundError struct {
	Fund string
	Err  error
}

func (e *FundError) Error() string { return fmt.Sprintf("fund %s: %v", e.Fund, e.Err) }

func (e *FundError) Unwrap() error { return e.Err }

// fundErr wraps err as a FundError, unless it is nil or already one.
func fundErr(fund string, err error) error {
	if err == nil {
		return nil
	}
	var fe *FundError
	if errors.As(err, &fe) {
		return err
	}
	return &FundError{Fund: fund, Err: err}
}
