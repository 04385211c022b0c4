package types

import "time"

// DateLayout is the calendar date layout used for business dates.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date. Business dates carry
// no time of day, so every stored date passes through Day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a "2006-01-02" date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// MustDay is like ParseDay but panics on error. Use for literals.
func MustDay(s string) time.Time {
	t, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
