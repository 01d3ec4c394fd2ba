package hebrew_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-hebcal/internal/hebrew"
)

// TestGregorianToHebrew_KnownDates pins the full conversion pipeline to
// reference dates, including leap-year Adar II and the month numbering with
// Nisan first.
func TestGregorianToHebrew_KnownDates(t *testing.T) {
	tests := []struct {
		name string
		greg hebrew.GregorianDate
		want hebrew.Result
	}{
		{
			name: "First of Cheshvan 5786",
			greg: hebrew.GregorianDate{Year: 2025, Month: 10, Day: 23},
			want: hebrew.Result{Year: 5786, Month: 8, Day: 1, MonthName: "Cheshvan", Formatted: "1 Cheshvan 5786"},
		},
		{
			name: "Mid Cheshvan 5786",
			greg: hebrew.GregorianDate{Year: 2025, Month: 11, Day: 7},
			want: hebrew.Result{Year: 5786, Month: 8, Day: 16, MonthName: "Cheshvan", Formatted: "16 Cheshvan 5786"},
		},
		{
			name: "New Year 2025 falls in Tevet 5785",
			greg: hebrew.GregorianDate{Year: 2025, Month: 1, Day: 1},
			want: hebrew.Result{Year: 5785, Month: 10, Day: 1, MonthName: "Tevet", Formatted: "1 Tevet 5785"},
		},
		{
			name: "Adar II in leap year 5784",
			greg: hebrew.GregorianDate{Year: 2024, Month: 3, Day: 24},
			want: hebrew.Result{Year: 5784, Month: 13, Day: 14, MonthName: "Adar II", Formatted: "14 Adar II 5784"},
		},
		{
			name: "Adar I in leap year 5760",
			greg: hebrew.GregorianDate{Year: 2000, Month: 2, Day: 29},
			want: hebrew.Result{Year: 5760, Month: 12, Day: 23, MonthName: "Adar I", Formatted: "23 Adar I 5760"},
		},
		{
			name: "Israel declaration of independence",
			greg: hebrew.GregorianDate{Year: 1948, Month: 5, Day: 14},
			want: hebrew.Result{Year: 5708, Month: 2, Day: 5, MonthName: "Iyar", Formatted: "5 Iyar 5708"},
		},
		{
			name: "Start of the 20th century",
			greg: hebrew.GregorianDate{Year: 1900, Month: 1, Day: 1},
			want: hebrew.Result{Year: 5660, Month: 11, Day: 1, MonthName: "Shevat", Formatted: "1 Shevat 5660"},
		},
		{
			name: "Gregorian year one",
			greg: hebrew.GregorianDate{Year: 1, Month: 1, Day: 1},
			want: hebrew.Result{Year: 3761, Month: 10, Day: 18, MonthName: "Tevet", Formatted: "18 Tevet 3761"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hebrew.GregorianToHebrew(tt.greg.Year, tt.greg.Month, tt.greg.Day)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestGregorianToHebrew_Errors surfaces the boundary error taxonomy.
func TestGregorianToHebrew_Errors(t *testing.T) {
	// Invalid day for February must fail, never clamp.
	_, err := hebrew.GregorianToHebrew(2025, 2, 30)
	assert.ErrorIs(t, err, hebrew.ErrInvalidDate)

	// Dates before Hebrew year 1 exist as Gregorian dates but have no Hebrew
	// counterpart.
	_, err = hebrew.GregorianToHebrew(-3800, 1, 1)
	assert.ErrorIs(t, err, hebrew.ErrUnsupportedRange)
}

// TestHebrewToGregorian_RoundTrip converts a spread of Gregorian dates
// forward and back through the Hebrew calendar.
func TestHebrewToGregorian_RoundTrip(t *testing.T) {
	dates := []hebrew.GregorianDate{
		{Year: 1752, Month: 9, Day: 14},
		{Year: 1900, Month: 1, Day: 1},
		{Year: 1948, Month: 5, Day: 14},
		{Year: 2000, Month: 2, Day: 29},
		{Year: 2024, Month: 3, Day: 24},
		{Year: 2025, Month: 11, Day: 7},
		{Year: 2240, Month: 12, Day: 31},
	}

	for _, d := range dates {
		res, err := hebrew.GregorianToHebrew(d.Year, d.Month, d.Day)
		require.NoError(t, err)

		back, err := hebrew.HebrewToGregorian(res.Year, res.Month, res.Day)
		require.NoError(t, err)
		assert.Equalf(t, d, back, "round trip of %+v via %s", d, res.Formatted)
	}
}

// TestHebrewToGregorian_Errors propagates validation from the Hebrew side.
func TestHebrewToGregorian_Errors(t *testing.T) {
	_, err := hebrew.HebrewToGregorian(5785, 13, 1)
	assert.ErrorIs(t, err, hebrew.ErrInvalidDate)

	_, err = hebrew.HebrewToGregorian(5786, 8, 30)
	assert.ErrorIs(t, err, hebrew.ErrInvalidDate)
}

// TestMonthName resolves all religious month indices in both leap and common
// years, with Adar renamed in leap years.
func TestMonthName(t *testing.T) {
	tests := []struct {
		month int
		leap  bool
		want  string
	}{
		{1, false, "Nisan"},
		{2, false, "Iyar"},
		{3, false, "Sivan"},
		{4, false, "Tamuz"},
		{5, false, "Av"},
		{6, false, "Elul"},
		{7, false, "Tishri"},
		{8, false, "Cheshvan"},
		{9, false, "Kislev"},
		{10, false, "Tevet"},
		{11, false, "Shevat"},
		{12, false, "Adar"},
		{12, true, "Adar I"},
		{13, true, "Adar II"},
	}

	for _, tt := range tests {
		name, err := hebrew.MonthName(tt.month, tt.leap)
		require.NoError(t, err)
		assert.Equal(t, tt.want, name)
	}
}

// TestMonthName_Errors rejects indices outside the calendar.
func TestMonthName_Errors(t *testing.T) {
	_, err := hebrew.MonthName(0, false)
	assert.ErrorIs(t, err, hebrew.ErrInvalidMonth)

	_, err = hebrew.MonthName(14, true)
	assert.ErrorIs(t, err, hebrew.ErrInvalidMonth)

	// Adar II does not exist in a common year.
	_, err = hebrew.MonthName(13, false)
	assert.ErrorIs(t, err, hebrew.ErrInvalidMonth)
}

// TestFormat is plain string composition.
func TestFormat(t *testing.T) {
	got := hebrew.Format(hebrew.Date{Year: 5786, Month: 8, Day: 1}, "Cheshvan")
	assert.Equal(t, "1 Cheshvan 5786", got)
}
