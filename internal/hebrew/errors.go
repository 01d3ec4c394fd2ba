package hebrew

import (
	"errors"

	"github.com/tartampluch/go-hebcal/internal/config"
)

// Sentinel errors returned by the conversion engine. Callers classify with
// errors.Is; the engine never retries or recovers, it only reports.
var (
	// ErrInvalidDate signals a caller-supplied date that fails structural
	// validation (month or day out of range, month 13 in a common year).
	ErrInvalidDate = errors.New(config.ErrInvalidDate)

	// ErrInvalidMonth signals a month index the name resolver cannot map.
	ErrInvalidMonth = errors.New(config.ErrInvalidMonth)

	// ErrUnsupportedRange signals a date or day number outside the span the
	// engine guarantees overflow-free 64-bit arithmetic for.
	ErrUnsupportedRange = errors.New(config.ErrUnsupportedRange)

	// ErrArithmeticOverflow signals an internal inconsistency. It cannot be
	// produced by any input inside the supported range; seeing it means a
	// defect in the engine itself.
	ErrArithmeticOverflow = errors.New(config.ErrArithOverflow)
)
