package hebrew

// Molad is the mean (calculated, not observed) moment of lunar conjunction,
// expressed in whole days, hours and parts since the calendar epoch. One hour
// holds 1080 parts (chalakim); hours are counted from 6 p.m. of the preceding
// evening, as the tradition does, so Hours==18 is civil noon.
type Molad struct {
	Days  int64
	Hours int // 0..23
	Parts int // 0..1079
}

// Time-unit constants for molad arithmetic. All molad computation is exact
// integer carry arithmetic over these units; floating point would drift over
// large year spans.
const (
	PartsPerHour = 1080
	HoursPerDay  = 24

	// Synodic month: 29 days, 12 hours, 793 parts.
	synodicDays  = 29
	synodicHours = 12
	synodicParts = 793

	// Epoch molad (BaHaRaD): day 2 of the week, 5 hours, 204 parts. In the
	// day count used here the epoch conjunction falls on day 1.
	epochMoladDays  = 1
	epochMoladHours = 5
	epochMoladParts = 204
)

// Hebrew years the engine accepts. MaxYear is chosen so the whole supported
// Gregorian span (through year 10000) stays convertible.
const (
	MinYear = 1
	MaxYear = 14000
)

// monthsBeforeYear counts the lunar months elapsed from the epoch to the
// molad of Tishri of year: 12 per elapsed year, plus one leap month for each
// of years 3, 6, 8, 11, 14, 17, 19 of every completed or partial 19-year
// Metonic cycle. The (7r+1)/19 term counts the leap years among the first r
// years of a cycle without enumerating them.
func monthsBeforeYear(year int) int64 {
	y := int64(year) - 1
	cycles := y / 19
	rem := y % 19
	return 235*cycles + 12*rem + (7*rem+1)/19
}

// MoladOfTishri computes the molad of Tishri of the given Hebrew year by
// adding the elapsed synodic months to the epoch molad, carrying parts into
// hours and hours into days.
func MoladOfTishri(year int) (Molad, error) {
	if year < MinYear || year > MaxYear {
		return Molad{}, ErrUnsupportedRange
	}
	return tishriMolad(year), nil
}

// tishriMolad is the unchecked core of MoladOfTishri. Internal callers reach
// one year past MaxYear when measuring the length of the last supported year.
func tishriMolad(year int) Molad {
	months := monthsBeforeYear(year)

	parts := epochMoladParts + synodicParts*(months%PartsPerHour)
	hours := epochMoladHours + synodicHours*months + synodicParts*(months/PartsPerHour) + parts/PartsPerHour
	days := epochMoladDays + synodicDays*months + hours/HoursPerDay

	return Molad{
		Days:  days,
		Hours: int(hours % HoursPerDay),
		Parts: int(parts % PartsPerHour),
	}
}

// dayParts flattens the time-of-day to a single parts count (0..25919),
// the form the postponement thresholds are stated in.
func (m Molad) dayParts() int {
	return m.Hours*PartsPerHour + m.Parts
}
