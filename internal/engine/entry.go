package engine

import (
	"time"

	"github.com/tartampluch/go-hebcal/internal/hebrew"
)

// AnniversaryEntry is a lightweight record of one contact's Hebrew
// anniversary, decoupled from the vCard parsing and the feed encoding.
type AnniversaryEntry struct {
	// UID is a deterministic identifier (hash) stable across refreshes.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// DateOfBirth is the original parsed Gregorian date.
	DateOfBirth time.Time

	// YearKnown indicates if the vCard carried a year or just --MM-DD.
	YearKnown bool

	// Hebrew is the birth date on the Hebrew calendar.
	Hebrew hebrew.Date

	// HebrewLabel is the day-and-month rendering of the Hebrew birth date,
	// e.g. "5 Iyar". The year is omitted because the anniversary recurs.
	HebrewLabel string

	// NextOccurrence is the Gregorian date on which the Hebrew anniversary
	// next falls, used as the sorting key for upcoming lists.
	NextOccurrence time.Time

	// AgeNext is the Hebrew-calendar age reached at NextOccurrence.
	// Only valid if YearKnown is true.
	AgeNext int
}

// Clock abstracts time.Now() to allow deterministic testing. The generator
// uses it to decide "today" and which Hebrew years to project events into.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock with the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
