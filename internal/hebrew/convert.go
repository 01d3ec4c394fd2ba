package hebrew

import "fmt"

// Result is the record returned by the conversion boundary: the Hebrew date,
// its resolved month name and a ready-to-display rendering.
type Result struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
	Formatted string `json:"formatted"`
}

// Format renders a Hebrew date with its resolved month name, e.g.
// "1 Cheshvan 5786". Pure string composition, no locale variation.
func Format(d Date, name string) string {
	return fmt.Sprintf("%d %s %d", d.Day, name, d.Year)
}

// GregorianToHebrew is the single conversion entry point: it validates the
// Gregorian triple, pivots through the Julian Day Number, locates the Hebrew
// date and resolves its month name.
func GregorianToHebrew(year, month, day int) (Result, error) {
	jdn, err := FromGregorian(GregorianDate{Year: year, Month: month, Day: day})
	if err != nil {
		return Result{}, err
	}

	date, err := FromJDN(jdn)
	if err != nil {
		return Result{}, err
	}

	name, err := MonthName(date.Month, IsLeapYear(date.Year))
	if err != nil {
		return Result{}, err
	}

	return Result{
		Year:      date.Year,
		Month:     date.Month,
		Day:       date.Day,
		MonthName: name,
		Formatted: Format(date, name),
	}, nil
}

// HebrewToGregorian is the inverse boundary: a Hebrew triple to its proleptic
// Gregorian date.
func HebrewToGregorian(year, month, day int) (GregorianDate, error) {
	jdn, err := ToJDN(Date{Year: year, Month: month, Day: day})
	if err != nil {
		return GregorianDate{}, err
	}
	return ToGregorian(jdn)
}
