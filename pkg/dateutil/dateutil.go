// Package dateutil provides the date arithmetic shared by the term and
// premium calculators. All day counts use the ceiling convention: a term
// that covers any fraction of a day counts the whole day.
package dateutil

import (
	"math"
	"time"
)

// ISODate is the wire format for all dates handled by the engine.
const ISODate = "2006-01-02"

// DaysInYear is the denominator used for pro-rata factors. The engine
// deliberately ignores leap years; a 366-day term has factor > 1.
const DaysInYear = 365

// Parse parses an ISO YYYY-MM-DD date string in UTC.
func Parse(s string) (time.Time, error) {
	return time.Parse(ISODate, s)
}

// DaysBetween returns the ceiling-rounded number of days from start to end.
// Returns 0 when end is not after start.
func DaysBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	hours := end.Sub(start).Hours()
	return int(math.Ceil(hours / 24))
}

// YearFraction returns DaysBetween(start, end) / 365 as a float.
func YearFraction(start, end time.Time) float64 {
	return float64(DaysBetween(start, end)) / float64(DaysInYear)
}
