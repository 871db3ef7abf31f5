package daterange_test

import (
	"slices"
	"testing"
	"time"

	"hotel/shared/daterange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	d, err := daterange.ParseDate(value)
	if err != nil {
		panic(err)
	}

	return d
}

func stay(t *testing.T, in, out string) daterange.DateRange {
	t.Helper()

	dr, err := daterange.Parse(in, out)
	require.NoError(t, err)

	return dr
}

// overlapsByClauses is the three-clause formulation: the candidate check-in falls inside
// the existing stay, the candidate check-out falls inside it, or the candidate covers it.
func overlapsByClauses(candidate, existing daterange.DateRange) bool {
	inInside := !candidate.CheckIn.Before(existing.CheckIn) && candidate.CheckIn.Before(existing.CheckOut)
	outInside := candidate.CheckOut.After(existing.CheckIn) && !candidate.CheckOut.After(existing.CheckOut)
	covers := !candidate.CheckIn.After(existing.CheckIn) && !candidate.CheckOut.Before(existing.CheckOut)

	return inInside || outInside || covers
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    [2]string
		b    [2]string
		want bool
	}{
		{name: "back to back", a: [2]string{"2025-04-10", "2025-04-13"}, b: [2]string{"2025-04-13", "2025-04-15"}, want: false},
		{name: "back to back reversed", a: [2]string{"2025-04-13", "2025-04-15"}, b: [2]string{"2025-04-10", "2025-04-13"}, want: false},
		{name: "one shared night", a: [2]string{"2025-04-10", "2025-04-13"}, b: [2]string{"2025-04-12", "2025-04-15"}, want: true},
		{name: "contained", a: [2]string{"2025-04-01", "2025-04-10"}, b: [2]string{"2025-04-03", "2025-04-05"}, want: true},
		{name: "containing", a: [2]string{"2025-04-03", "2025-04-05"}, b: [2]string{"2025-04-01", "2025-04-10"}, want: true},
		{name: "identical", a: [2]string{"2025-04-03", "2025-04-05"}, b: [2]string{"2025-04-03", "2025-04-05"}, want: true},
		{name: "disjoint", a: [2]string{"2025-04-01", "2025-04-02"}, b: [2]string{"2025-04-05", "2025-04-06"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := stay(t, tt.a[0], tt.a[1])
			b := stay(t, tt.b[0], tt.b[1])

			assert.Equal(t, tt.want, a.Overlaps(b))
			assert.Equal(t, tt.want, daterange.Overlaps(a.CheckIn, a.CheckOut, b.CheckIn, b.CheckOut))
		})
	}
}

func TestOverlapsIgnoresTimeOfDay(t *testing.T) {
	checkOut := time.Date(2025, 4, 13, 11, 0, 0, 0, time.UTC)
	checkIn := time.Date(2025, 4, 13, 15, 0, 0, 0, time.UTC)

	assert.False(t, daterange.Overlaps(day("2025-04-10"), checkOut, checkIn, day("2025-04-15")))
}

func TestOverlapsMatchesClauseForm(t *testing.T) {
	base := day("2025-01-01")

	for aIn := range 6 {
		for aLen := 1; aLen <= 4; aLen++ {
			for bIn := range 6 {
				for bLen := 1; bLen <= 4; bLen++ {
					a, err := daterange.New(base.AddDate(0, 0, aIn), base.AddDate(0, 0, aIn+aLen))
					require.NoError(t, err)

					b, err := daterange.New(base.AddDate(0, 0, bIn), base.AddDate(0, 0, bIn+bLen))
					require.NoError(t, err)

					assert.Equal(t, overlapsByClauses(a, b), a.Overlaps(b), "%s vs %s", a, b)
				}
			}
		}
	}
}

func TestNew(t *testing.T) {
	_, err := daterange.Parse("2025-04-10", "2025-04-10")
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)

	_, err = daterange.Parse("2025-04-10", "2025-04-09")
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)

	_, err = daterange.Parse("10/04/2025", "2025-04-12")
	assert.ErrorIs(t, err, daterange.ErrInvalidDate)

	dr, err := daterange.New(time.Date(2025, 4, 10, 14, 0, 0, 0, time.UTC), time.Date(2025, 4, 13, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 3, dr.Nights())
	assert.Equal(t, "2025-04-10/2025-04-13", dr.String())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "2025-04-10", want: "2025-04-10"},
		{input: "2025-04-10T00:00:00Z", want: "2025-04-10"},
		{input: "2025-04-10T23:30:00+07:00", want: "2025-04-10"},
		{input: "2025-04-10T08:00:00", want: "2025-04-10"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := daterange.ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, daterange.FormatDate(d))
		})
	}
}

func TestContainsDateAndDays(t *testing.T) {
	dr := stay(t, "2025-04-10", "2025-04-13")

	assert.True(t, dr.ContainsDate(day("2025-04-10")))
	assert.True(t, dr.ContainsDate(day("2025-04-12")))
	assert.False(t, dr.ContainsDate(day("2025-04-13")))
	assert.False(t, dr.ContainsDate(day("2025-04-09")))

	days := []string{}
	for d := range dr.Days() {
		days = append(days, daterange.FormatDate(d))
	}

	assert.Equal(t, []string{"2025-04-10", "2025-04-11", "2025-04-12"}, days)
}

func TestBetween(t *testing.T) {
	days := slices.Collect(daterange.Between(day("2025-02-27"), day("2025-03-01")))

	require.Len(t, days, 3)
	assert.Equal(t, "2025-02-28", daterange.FormatDate(days[1]))
	assert.Equal(t, "2025-02", daterange.MonthKey(days[0]))
	assert.Empty(t, slices.Collect(daterange.Between(day("2025-03-02"), day("2025-03-01"))))
}
