package hebrew_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-hebcal/internal/hebrew"
)

// TestMoladOfTishri pins the molad arithmetic to exactly computed values,
// including the traditional epoch molad (BaHaRaD).
func TestMoladOfTishri(t *testing.T) {
	tests := []struct {
		name string
		year int
		want hebrew.Molad
	}{
		{"Epoch molad BaHaRaD", 1, hebrew.Molad{Days: 1, Hours: 5, Parts: 204}},
		{"Leap year 5784", 5784, hebrew.Molad{Days: 2112206, Hours: 11, Parts: 882}},
		{"Year 5786", 5786, hebrew.Molad{Days: 2112944, Hours: 18, Parts: 187}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			molad, err := hebrew.MoladOfTishri(tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.want, molad)
		})
	}
}

// TestMoladOfTishri_RangeGuard rejects years outside the supported span.
func TestMoladOfTishri_RangeGuard(t *testing.T) {
	_, err := hebrew.MoladOfTishri(0)
	assert.ErrorIs(t, err, hebrew.ErrUnsupportedRange)

	_, err = hebrew.MoladOfTishri(hebrew.MaxYear + 1)
	assert.ErrorIs(t, err, hebrew.ErrUnsupportedRange)
}

// TestIsLeapYear_MetonicCycle verifies the fixed 7-of-19 pattern: within any
// window of 19 consecutive years exactly seven are leap, and they sit at
// cycle positions 3, 6, 8, 11, 14, 17 and 19.
func TestIsLeapYear_MetonicCycle(t *testing.T) {
	leapPositions := map[int]bool{3: true, 6: true, 8: true, 11: true, 14: true, 17: true, 0: true}

	for start := 1; start < 6000; start += 19 {
		count := 0
		for y := start; y < start+19; y++ {
			if hebrew.IsLeapYear(y) {
				count++
				assert.Truef(t, leapPositions[y%19], "year %d is leap but sits at cycle position %d", y, y%19)
			}
		}
		assert.Equalf(t, 7, count, "window starting at %d must contain exactly 7 leap years", start)
	}

	assert.True(t, hebrew.IsLeapYear(5784), "5784 is a known leap year")
	assert.False(t, hebrew.IsLeapYear(5785))
	assert.False(t, hebrew.IsLeapYear(5786))
}

// TestRoshHashanah_KnownDates anchors the postponement logic to recent
// real-world Rosh Hashanah dates.
func TestRoshHashanah_KnownDates(t *testing.T) {
	tests := []struct {
		year int
		greg hebrew.GregorianDate
	}{
		{5784, hebrew.GregorianDate{Year: 2023, Month: 9, Day: 16}},
		{5785, hebrew.GregorianDate{Year: 2024, Month: 10, Day: 3}},
		{5786, hebrew.GregorianDate{Year: 2025, Month: 9, Day: 23}},
		{5787, hebrew.GregorianDate{Year: 2026, Month: 9, Day: 12}},
		// Years exercising the rarer postponements: GaTaRaD fired for 5004
		// and BeTuTeKaFoT for 5025.
		{5004, hebrew.GregorianDate{Year: 1243, Month: 9, Day: 24}},
		{5025, hebrew.GregorianDate{Year: 1264, Month: 9, Day: 30}},
	}

	for _, tt := range tests {
		jdn, err := hebrew.RoshHashanah(tt.year)
		require.NoError(t, err)

		greg, err := hebrew.ToGregorian(jdn)
		require.NoError(t, err)
		assert.Equalf(t, tt.greg, greg, "Rosh Hashanah of %d", tt.year)
	}
}

// TestYearLength_Closure checks for a broad span that every year length is
// one of the six legal values, that consecutive new years differ by exactly
// that length, and that the month table sums to it.
func TestYearLength_Closure(t *testing.T) {
	legal := map[int]bool{353: true, 354: true, 355: true, 383: true, 384: true, 385: true}

	for year := 1; year <= 6500; year++ {
		length, err := hebrew.YearLength(year)
		require.NoError(t, err)
		require.Truef(t, legal[length], "year %d has illegal length %d", year, length)

		// Leap years are exactly the long ones.
		require.Equalf(t, hebrew.IsLeapYear(year), length > 360, "year %d leap status disagrees with its length %d", year, length)

		months, err := hebrew.MonthLengths(year)
		require.NoError(t, err)

		sum := 0
		for _, m := range months {
			sum += m.Days
		}
		require.Equalf(t, length, sum, "month table of year %d does not sum to its length", year)

		if hebrew.IsLeapYear(year) {
			require.Len(t, months, 13)
		} else {
			require.Len(t, months, 12)
		}
	}
}

// TestYearLength_RecentYears pins the exact lengths of a recent run of years.
func TestYearLength_RecentYears(t *testing.T) {
	want := map[int]int{
		5780: 355, 5781: 353, 5782: 384, 5783: 355, 5784: 383, 5785: 355, 5786: 354,
	}
	for year, length := range want {
		got, err := hebrew.YearLength(year)
		require.NoError(t, err)
		assert.Equalf(t, length, got, "length of year %d", year)
	}
}

// TestKindOfYear maps lengths onto the deficient/regular/complete variants.
func TestKindOfYear(t *testing.T) {
	tests := []struct {
		year int
		kind hebrew.YearKind
	}{
		{5781, hebrew.YearDeficient}, // 353
		{5786, hebrew.YearRegular},   // 354
		{5785, hebrew.YearComplete},  // 355
		{5784, hebrew.YearDeficient}, // 383
		{5782, hebrew.YearRegular},   // 384
	}

	for _, tt := range tests {
		kind, err := hebrew.KindOfYear(tt.year)
		require.NoError(t, err)
		assert.Equalf(t, tt.kind, kind, "kind of year %d", tt.year)
	}

	assert.Equal(t, "deficient", hebrew.YearDeficient.String())
	assert.Equal(t, "regular", hebrew.YearRegular.String())
	assert.Equal(t, "complete", hebrew.YearComplete.String())
}

// TestMonthLengths_VariableMonths verifies the Cheshvan/Kislev selection per
// year kind and the Adar I insertion in leap years.
func TestMonthLengths_VariableMonths(t *testing.T) {
	lengthsOf := func(year int) map[int]int {
		months, err := hebrew.MonthLengths(year)
		require.NoError(t, err)
		m := make(map[int]int, len(months))
		for _, ml := range months {
			m[ml.Month] = ml.Days
		}
		return m
	}

	// Deficient leap year 5784: both variable months short, Adar I present.
	m := lengthsOf(5784)
	assert.Equal(t, 29, m[hebrew.MonthCheshvan])
	assert.Equal(t, 29, m[hebrew.MonthKislev])
	assert.Equal(t, 30, m[hebrew.MonthAdar])
	assert.Equal(t, 29, m[hebrew.MonthAdarII])

	// Complete common year 5785: both variable months long, no Adar II.
	m = lengthsOf(5785)
	assert.Equal(t, 30, m[hebrew.MonthCheshvan])
	assert.Equal(t, 30, m[hebrew.MonthKislev])
	assert.Equal(t, 29, m[hebrew.MonthAdar])
	_, hasAdarII := m[hebrew.MonthAdarII]
	assert.False(t, hasAdarII)

	// Regular year 5786: short Cheshvan, long Kislev.
	m = lengthsOf(5786)
	assert.Equal(t, 29, m[hebrew.MonthCheshvan])
	assert.Equal(t, 30, m[hebrew.MonthKislev])
}

// TestHebrewRoundTrip_Sweep exercises both round-trip laws and strict
// monotonicity over several consecutive years covering all three year kinds
// and a leap year.
func TestHebrewRoundTrip_Sweep(t *testing.T) {
	start, err := hebrew.RoshHashanah(5781)
	require.NoError(t, err)
	end, err := hebrew.RoshHashanah(5790)
	require.NoError(t, err)

	prev := hebrew.Date{}
	for jdn := start; jdn < end; jdn++ {
		date, err := hebrew.FromJDN(jdn)
		if err != nil {
			t.Fatalf("FromJDN(%d): %v", jdn, err)
		}
		back, err := hebrew.ToJDN(date)
		if err != nil {
			t.Fatalf("ToJDN(%+v): %v", date, err)
		}
		if back != jdn {
			t.Fatalf("round trip broke at JDN %d: got %d via %+v", jdn, back, date)
		}
		if date.Month == hebrew.MonthAdarII && !hebrew.IsLeapYear(date.Year) {
			t.Fatalf("FromJDN produced month 13 in common year %d", date.Year)
		}
		if jdn > start && date == prev {
			t.Fatalf("consecutive day numbers mapped to the same date %+v", date)
		}
		prev = date
	}
}

// TestFromJDN_DistantYears spot-checks the estimate-then-correct year search
// far from the present.
func TestFromJDN_DistantYears(t *testing.T) {
	for _, year := range []int{1, 2, 1000, 4000, 9999, hebrew.MaxYear} {
		rh, err := hebrew.RoshHashanah(year)
		require.NoError(t, err)

		date, err := hebrew.FromJDN(rh)
		require.NoError(t, err)
		assert.Equal(t, hebrew.Date{Year: year, Month: hebrew.MonthTishri, Day: 1}, date)
	}
}

// TestToJDN_Validation rejects structurally invalid Hebrew dates.
func TestToJDN_Validation(t *testing.T) {
	tests := []struct {
		name    string
		date    hebrew.Date
		wantErr error
	}{
		{"Adar II in common year", hebrew.Date{Year: 5785, Month: 13, Day: 1}, hebrew.ErrInvalidDate},
		{"Day 30 of 29-day month", hebrew.Date{Year: 5786, Month: hebrew.MonthCheshvan, Day: 30}, hebrew.ErrInvalidDate},
		{"Day zero", hebrew.Date{Year: 5786, Month: hebrew.MonthNisan, Day: 0}, hebrew.ErrInvalidDate},
		{"Month zero", hebrew.Date{Year: 5786, Month: 0, Day: 1}, hebrew.ErrInvalidDate},
		{"Month fourteen", hebrew.Date{Year: 5786, Month: 14, Day: 1}, hebrew.ErrInvalidDate},
		{"Year zero", hebrew.Date{Year: 0, Month: hebrew.MonthNisan, Day: 1}, hebrew.ErrUnsupportedRange},
		{"Year beyond span", hebrew.Date{Year: hebrew.MaxYear + 1, Month: hebrew.MonthNisan, Day: 1}, hebrew.ErrUnsupportedRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hebrew.ToJDN(tt.date)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Adar II is perfectly valid in a leap year.
	jdn, err := hebrew.ToJDN(hebrew.Date{Year: 5784, Month: hebrew.MonthAdarII, Day: 1})
	require.NoError(t, err)

	greg, err := hebrew.ToGregorian(jdn)
	require.NoError(t, err)
	assert.Equal(t, hebrew.GregorianDate{Year: 2024, Month: 3, Day: 11}, greg)
}

// TestFromJDN_RangeGuard rejects day numbers before year 1 and past the last
// supported year.
func TestFromJDN_RangeGuard(t *testing.T) {
	first, err := hebrew.RoshHashanah(hebrew.MinYear)
	require.NoError(t, err)

	_, err = hebrew.FromJDN(first - 1)
	assert.ErrorIs(t, err, hebrew.ErrUnsupportedRange)

	_, err = hebrew.FromJDN(first)
	assert.NoError(t, err)
}
