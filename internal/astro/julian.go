package astro

import (
	"errors"
	"math"
	"time"
)

// J2000 is the Julian Date of the J2000.0 epoch, 2000-01-01 12:00 UTC.
const J2000 = 2451545.0

// ErrNotImplemented is returned by operations that exist only as stubs.
var ErrNotImplemented = errors.New("not implemented")

// CalendarDate is a civil timestamp with a whole-hour offset from UTC.
type CalendarDate struct {
	Year   int
	Month  int // 1-12
	Day    int
	Hour   int
	Minute int
	Second int

	// UTCOffset is the zone offset in hours, east positive.
	UTCOffset int

	// DST is carried for callers but does not enter any computation;
	// UTCOffset is expected to already include daylight saving.
	DST bool
}

// CalendarDateFromTime captures t in its own location. The zone offset is
// truncated to whole hours.
func CalendarDateFromTime(t time.Time) CalendarDate {
	_, offset := t.Zone()
	return CalendarDate{
		Year:      t.Year(),
		Month:     int(t.Month()),
		Day:       t.Day(),
		Hour:      t.Hour(),
		Minute:    t.Minute(),
		Second:    t.Second(),
		UTCOffset: offset / 3600,
		DST:       t.IsDST(),
	}
}

// CalendarDateIn expresses the instant t as civil time in a zone that is
// offsetHours east of UTC.
func CalendarDateIn(t time.Time, offsetHours int) CalendarDate {
	local := t.UTC().Add(time.Duration(offsetHours) * time.Hour)
	d := CalendarDateFromTime(local)
	d.UTCOffset = offsetHours
	d.DST = false
	return d
}

// dayFraction returns the UTC time of day in hours. It may fall outside
// [0, 24) when the offset carries the instant across midnight.
func (d CalendarDate) dayFraction() float64 {
	return float64(d.Hour) - float64(d.UTCOffset) +
		float64(d.Minute)/60 + float64(d.Second)/3600
}

// JulianDate0 returns the Julian Date at 0h of the date's calendar day.
//
// Every intermediate term is truncated on its own; folding them into one
// expression changes the result around month and century boundaries.
func JulianDate0(d CalendarDate) float64 {
	month := float64(d.Month)
	year := float64(d.Year)

	// January and February count as months 13 and 14 of the previous year
	if month < 3 {
		month += 12
		year--
	}

	a := math.Trunc(year / 100)
	b := 2 - a + math.Trunc(a/4)
	c := math.Trunc(365.25 * (year + 4716))
	e := math.Trunc(30.6001 * (month + 1))

	return float64(d.Day) + b + c + e - 1524.5
}

// JulianDate returns the Julian Date of the instant d.
func JulianDate(d CalendarDate) float64 {
	// TODO: apply DST once CalendarDate stops folding it into UTCOffset.
	return JulianDate0(d) + d.dayFraction()/24
}

// J2000Date returns the number of days since the J2000.0 epoch.
func J2000Date(d CalendarDate) float64 {
	return JulianDate(d) - J2000
}

// DateFromJ2000 is a placeholder for the inverse of J2000Date. It ignores
// its argument and always returns the same fixed date together with
// ErrNotImplemented.
func DateFromJ2000(jd float64) (CalendarDate, error) {
	return CalendarDate{
		Year:   2017,
		Month:  12,
		Day:    16,
		Hour:   11,
		Minute: 58,
		Second: 35,
	}, ErrNotImplemented
}
