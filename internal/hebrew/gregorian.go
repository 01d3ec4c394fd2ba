// Package hebrew converts between proleptic Gregorian dates and dates of the
// traditional Hebrew (lunisolar) calendar. The Julian Day Number, a continuous
// integer day count, is the neutral pivot between the two systems.
//
// Every function in this package is a pure computation over immutable values:
// no I/O, no shared mutable state, safe for concurrent use without locking.
package hebrew

// JDN is a Julian Day Number: a signed day count since noon UTC on
// January 1, 4713 BCE (Julian). One JDN corresponds to exactly one civil day.
type JDN int64

// GregorianDate is a proleptic Gregorian calendar date. It is valid for any
// year inside the supported range, including years before the historical
// adoption of the Gregorian calendar.
type GregorianDate struct {
	Year  int
	Month int // 1..12
	Day   int // 1..days in month
}

// Gregorian years for which conversions are guaranteed overflow-free.
const (
	MinGregorianYear = -4000
	MaxGregorianYear = 10000

	// JDNs of MinGregorianYear-01-01 and MaxGregorianYear-12-31.
	minGregorianJDN JDN = 260090
	maxGregorianJDN JDN = 5373850
)

var gregorianMonthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsGregorianLeapYear reports whether year has a February 29 under the
// Gregorian rule: divisible by 4 and (not by 100, or by 400).
func IsGregorianLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInGregorianMonth returns the number of days in the given month of year.
// Month must be in 1..12.
func DaysInGregorianMonth(year, month int) int {
	if month == 2 && IsGregorianLeapYear(year) {
		return 29
	}
	return gregorianMonthDays[month]
}

// Validate checks the structural validity of the date. It rejects out-of-range
// months and days with ErrInvalidDate and years outside the supported span
// with ErrUnsupportedRange. Invalid days are never clamped.
func (d GregorianDate) Validate() error {
	if d.Year < MinGregorianYear || d.Year > MaxGregorianYear {
		return ErrUnsupportedRange
	}
	if d.Month < 1 || d.Month > 12 {
		return ErrInvalidDate
	}
	if d.Day < 1 || d.Day > DaysInGregorianMonth(d.Year, d.Month) {
		return ErrInvalidDate
	}
	return nil
}

// FromGregorian converts a proleptic Gregorian date to its Julian Day Number
// using the Fliegel-Van Flandern closed form. The arithmetic is integer-only;
// Go's truncating division matches the Fortran division the formula was
// designed for (all quotients here have non-negative dividends or exact
// negative ones).
func FromGregorian(d GregorianDate) (JDN, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}

	a := int64((14 - d.Month) / 12)
	y := int64(d.Year) + 4800 - a
	m := int64(d.Month) + 12*a - 3

	jdn := int64(d.Day) + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
	return JDN(jdn), nil
}

// ToGregorian converts a Julian Day Number back to its proleptic Gregorian
// date. It is the exact inverse of FromGregorian over the supported range.
func ToGregorian(jdn JDN) (GregorianDate, error) {
	if jdn < minGregorianJDN || jdn > maxGregorianJDN {
		return GregorianDate{}, ErrUnsupportedRange
	}

	a := int64(jdn) + 32044
	b := (4*a + 3) / 146097
	c := a - (146097*b)/4
	d := (4*c + 3) / 1461
	e := c - (1461*d)/4
	m := (5*e + 2) / 153

	return GregorianDate{
		Year:  int(100*b + d - 4800 + m/10),
		Month: int(m + 3 - 12*(m/10)),
		Day:   int(e - (153*m+2)/5 + 1),
	}, nil
}
