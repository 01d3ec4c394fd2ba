package hebrew

// Date is a Hebrew calendar date. Months are numbered in the religious order:
// 1=Nisan .. 6=Elul, 7=Tishri .. 11=Shevat, 12=Adar (Adar I in leap years),
// 13=Adar II (leap years only). The civil year and the year number begin at
// Tishri, so within one Year the months run 7..12(,13) then 1..6.
type Date struct {
	Year  int
	Month int // 1..13
	Day   int // 1..30
}

// YearKind classifies the three possible shapes of a Hebrew civil year.
// The kind decides whether Cheshvan and Kislev have 29 or 30 days.
type YearKind int

const (
	// YearDeficient: 353 days common, 383 leap. Cheshvan 29, Kislev 29.
	YearDeficient YearKind = iota
	// YearRegular: 354 days common, 384 leap. Cheshvan 29, Kislev 30.
	YearRegular
	// YearComplete: 355 days common, 385 leap. Cheshvan 30, Kislev 30.
	YearComplete
)

// String returns a short label for the year kind.
func (k YearKind) String() string {
	switch k {
	case YearDeficient:
		return "deficient"
	case YearRegular:
		return "regular"
	case YearComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// MonthLength pairs a religious month index with its day count for a
// particular year.
type MonthLength struct {
	Month int
	Days  int
}

// hebrewEpochJDN anchors the Hebrew day count to the Julian Day Number line.
// Calibrated so 1 Tishri 5786 = JDN 2460942 = 2025-09-23 Gregorian.
const hebrewEpochJDN JDN = 347997

// Mean Hebrew year expressed as the exact ratio 35975351/98496 days
// (235 synodic months per 19 years). Used only to seed the year search.
const (
	meanYearNumer = 35975351
	meanYearDenom = 98496
)

// Postponement thresholds, in parts from the 6 p.m. day start.
const (
	moladZakenParts  = 18 * PartsPerHour    // noon
	gatradParts      = 9*PartsPerHour + 204 // 9h 204p
	betutekafotParts = 15*PartsPerHour + 589
)

// Weekdays of the Hebrew day count, day % 7.
const (
	weekdayMonday  = 1
	weekdayTuesday = 2
)

// IsLeapYear reports whether the Hebrew year carries a thirteenth month.
// Leap years sit at positions 3, 6, 8, 11, 14, 17 and 19 of the 19-year
// Metonic cycle; (7y+1) mod 19 < 7 encodes exactly that set.
func IsLeapYear(year int) bool {
	return (7*int64(year)+1)%19 < 7
}

// roshHashanahDay returns the day number of 1 Tishri of year within the
// Hebrew day count, applying the four postponement rules (dehiyot) to the
// raw molad day:
//
//  1. Molad Zaken: molad at or after noon pushes to the next day.
//  2. GaTaRaD: Tuesday molad at or after 9h 204p in a common year pushes one
//     day (landing on Wednesday, which rule 4 then pushes again: net two days).
//  3. BeTuTeKaFoT: Monday molad at or after 15h 589p in a year following a
//     leap year pushes one day.
//  4. Lo ADU Rosh: Rosh Hashanah may not fall on Sunday, Wednesday or Friday.
//
// Rules 1-3 are mutually exclusive tests against the raw molad; rule 4 then
// inspects the possibly shifted day.
func roshHashanahDay(year int) int64 {
	molad := tishriMolad(year)

	day := molad.Days
	parts := molad.dayParts()

	switch {
	case parts >= moladZakenParts:
		day++
	case day%7 == weekdayTuesday && parts >= gatradParts && !IsLeapYear(year):
		day++
	case day%7 == weekdayMonday && parts >= betutekafotParts && IsLeapYear(year-1):
		day++
	}

	switch day % 7 {
	case 0, 3, 5: // Sunday, Wednesday, Friday
		day++
	}

	return day
}

// RoshHashanah returns the Julian Day Number of 1 Tishri of the given year.
func RoshHashanah(year int) (JDN, error) {
	if year < MinYear || year > MaxYear {
		return 0, ErrUnsupportedRange
	}
	return hebrewEpochJDN + JDN(roshHashanahDay(year)), nil
}

// YearLength returns the number of days in the Hebrew year: one of 353, 354,
// 355 (common) or 383, 384, 385 (leap).
func YearLength(year int) (int, error) {
	if year < MinYear || year > MaxYear {
		return 0, ErrUnsupportedRange
	}
	return int(roshHashanahDay(year+1) - roshHashanahDay(year)), nil
}

// KindOfYear maps the year length onto its kind.
func KindOfYear(year int) (YearKind, error) {
	length, err := YearLength(year)
	if err != nil {
		return 0, err
	}
	switch length {
	case 353, 383:
		return YearDeficient, nil
	case 354, 384:
		return YearRegular, nil
	case 355, 385:
		return YearComplete, nil
	default:
		// The dehiyot guarantee the six lengths above; anything else means
		// the engine itself is broken.
		return 0, ErrArithmeticOverflow
	}
}

// MonthLengths returns the months of the Hebrew year in civil traversal order
// (Tishri first) with their day counts. The sum of the counts equals the
// year length exactly.
func MonthLengths(year int) ([]MonthLength, error) {
	length, err := YearLength(year)
	if err != nil {
		return nil, err
	}

	cheshvan := 29
	if length%10 == 5 { // complete year
		cheshvan = 30
	}
	kislev := 30
	if length%10 == 3 { // deficient year
		kislev = 29
	}

	months := make([]MonthLength, 0, 13)
	months = append(months,
		MonthLength{MonthTishri, 30},
		MonthLength{MonthCheshvan, cheshvan},
		MonthLength{MonthKislev, kislev},
		MonthLength{MonthTevet, 29},
		MonthLength{MonthShevat, 30},
	)
	if IsLeapYear(year) {
		months = append(months,
			MonthLength{MonthAdar, 30},   // Adar I
			MonthLength{MonthAdarII, 29}, // Adar II
		)
	} else {
		months = append(months, MonthLength{MonthAdar, 29})
	}
	months = append(months,
		MonthLength{MonthNisan, 30},
		MonthLength{MonthIyar, 29},
		MonthLength{MonthSivan, 30},
		MonthLength{MonthTamuz, 29},
		MonthLength{MonthAv, 30},
		MonthLength{MonthElul, 29},
	)
	return months, nil
}

// FromJDN converts a Julian Day Number to its Hebrew date. The year is seeded
// from the mean year length and corrected by at most a few iterations, then
// the month table is walked to locate the month and day.
func FromJDN(jdn JDN) (Date, error) {
	minJDN := hebrewEpochJDN + JDN(roshHashanahDay(MinYear))
	maxJDN := hebrewEpochJDN + JDN(roshHashanahDay(MaxYear+1))
	if jdn < minJDN || jdn >= maxJDN {
		return Date{}, ErrUnsupportedRange
	}

	year := int(int64(jdn-hebrewEpochJDN) * meanYearDenom / meanYearNumer)
	if year < MinYear {
		year = MinYear
	}
	for roshHashanahDay(year) > int64(jdn-hebrewEpochJDN) {
		year--
	}
	for roshHashanahDay(year+1) <= int64(jdn-hebrewEpochJDN) {
		year++
	}

	months, err := MonthLengths(year)
	if err != nil {
		return Date{}, err
	}

	offset := int(int64(jdn-hebrewEpochJDN) - roshHashanahDay(year))
	for _, m := range months {
		if offset < m.Days {
			return Date{Year: year, Month: m.Month, Day: offset + 1}, nil
		}
		offset -= m.Days
	}

	// Unreachable: the offset is below the year length by construction.
	return Date{}, ErrArithmeticOverflow
}

// ToJDN converts a Hebrew date to its Julian Day Number: Rosh Hashanah of the
// year plus the lengths of the months preceding it in civil order, plus the
// day offset. Month 13 in a common year and days past the month's end fail
// with ErrInvalidDate.
func ToJDN(d Date) (JDN, error) {
	if d.Year < MinYear || d.Year > MaxYear {
		return 0, ErrUnsupportedRange
	}
	if d.Month < MonthNisan || d.Month > MonthAdarII {
		return 0, ErrInvalidDate
	}

	months, err := MonthLengths(d.Year)
	if err != nil {
		return 0, err
	}

	jdn := hebrewEpochJDN + JDN(roshHashanahDay(d.Year))
	for _, m := range months {
		if m.Month == d.Month {
			if d.Day < 1 || d.Day > m.Days {
				return 0, ErrInvalidDate
			}
			return jdn + JDN(d.Day-1), nil
		}
		jdn += JDN(m.Days)
	}

	// Month 13 requested for a common year: not present in the table.
	return 0, ErrInvalidDate
}
