package astro

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestJulianDate0_Epoch(t *testing.T) {
	d := CalendarDate{Year: 2000, Month: 1, Day: 1}
	if got := JulianDate0(d); got != 2451544.5 {
		t.Errorf("JulianDate0(2000-01-01) = %v, want 2451544.5", got)
	}
}

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name string
		date CalendarDate
		want float64
	}{
		{
			name: "J2000 epoch",
			date: CalendarDate{Year: 2000, Month: 1, Day: 1, Hour: 12},
			want: 2451545.0,
		},
		{
			name: "Unix epoch",
			date: CalendarDate{Year: 1970, Month: 1, Day: 1},
			want: 2440587.5,
		},
		{
			name: "Known date 2024-01-01 00:00 UTC",
			date: CalendarDate{Year: 2024, Month: 1, Day: 1},
			want: 2460310.5,
		},
		{
			name: "Leap year March",
			date: CalendarDate{Year: 2024, Month: 3, Day: 1},
			want: 2460370.5,
		},
		{
			name: "Day before epoch",
			date: CalendarDate{Year: 1999, Month: 12, Day: 31},
			want: 2451543.5,
		},
		{
			name: "East offset",
			date: CalendarDate{Year: 2000, Month: 1, Day: 1, Hour: 13, UTCOffset: 1},
			want: 2451545.0,
		},
		{
			name: "West offset",
			date: CalendarDate{Year: 2000, Month: 1, Day: 1, Hour: 7, UTCOffset: -5},
			want: 2451545.0,
		},
		{
			name: "Minutes and seconds",
			date: CalendarDate{Year: 2000, Month: 1, Day: 1, Hour: 18, Minute: 30, Second: 36},
			want: 2451545.0 + (6 + 30.0/60 + 36.0/3600) / 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.date)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("JulianDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJulianDate_IgnoresDST(t *testing.T) {
	d := CalendarDate{Year: 2024, Month: 7, Day: 1, Hour: 14, UTCOffset: 2}
	withDST := d
	withDST.DST = true

	if JulianDate(d) != JulianDate(withDST) {
		t.Errorf("DST flag changed JulianDate: %v vs %v", JulianDate(d), JulianDate(withDST))
	}
}

func TestJulianDate0_MatchesCalendarDayCount(t *testing.T) {
	// Consecutive days must be exactly one Julian day apart, including
	// across month, leap-day and century boundaries.
	start := time.Date(1899, 12, 25, 0, 0, 0, 0, time.UTC)
	prev := JulianDate0(CalendarDateFromTime(start))
	for i := 1; i < 2*366*3; i++ {
		day := start.AddDate(0, 0, i*37)
		got := JulianDate0(CalendarDateFromTime(day))
		want := prev + 37
		if got != want {
			t.Fatalf("JulianDate0(%s) = %v, want %v", day.Format("2006-01-02"), got, want)
		}
		prev = got
	}
}

func TestJ2000Date(t *testing.T) {
	d := CalendarDate{Year: 2000, Month: 1, Day: 1, Hour: 12}
	if got := J2000Date(d); got != 0 {
		t.Errorf("J2000Date(J2000) = %v, want 0", got)
	}

	d = CalendarDate{Year: 2000, Month: 1, Day: 2, Hour: 0}
	if got := J2000Date(d); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("J2000Date(2000-01-02) = %v, want 0.5", got)
	}
}

func TestDateFromJ2000_NotImplemented(t *testing.T) {
	want := CalendarDate{Year: 2017, Month: 12, Day: 16, Hour: 11, Minute: 58, Second: 35}

	for _, jd := range []float64{0, 2451545.0, -1e6} {
		got, err := DateFromJ2000(jd)
		if !errors.Is(err, ErrNotImplemented) {
			t.Errorf("DateFromJ2000(%v) error = %v, want ErrNotImplemented", jd, err)
		}
		if got != want {
			t.Errorf("DateFromJ2000(%v) = %+v, want fixed %+v", jd, got, want)
		}
	}
}

func TestCalendarDateFromTime(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*3600)
	tm := time.Date(2024, 6, 15, 22, 45, 10, 999, zone)

	got := CalendarDateFromTime(tm)
	want := CalendarDate{Year: 2024, Month: 6, Day: 15, Hour: 22, Minute: 45, Second: 10, UTCOffset: 2}
	if got != want {
		t.Errorf("CalendarDateFromTime() = %+v, want %+v", got, want)
	}

	// Same instant as UTC must give the same Julian date.
	if a, b := JulianDate(got), JulianDate(CalendarDateFromTime(tm.UTC())); math.Abs(a-b) > 1e-9 {
		t.Errorf("JulianDate differs between zones: %v vs %v", a, b)
	}
}

func TestCalendarDateIn(t *testing.T) {
	tests := []struct {
		name   string
		t      time.Time
		offset int
		want   CalendarDate
	}{
		{
			name:   "east of UTC",
			t:      time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			offset: 2,
			want:   CalendarDate{Year: 2000, Month: 1, Day: 1, Hour: 14, UTCOffset: 2},
		},
		{
			name:   "crosses midnight",
			t:      time.Date(2000, 1, 1, 23, 0, 0, 0, time.UTC),
			offset: 3,
			want:   CalendarDate{Year: 2000, Month: 1, Day: 2, Hour: 2, UTCOffset: 3},
		},
		{
			name:   "west of UTC",
			t:      time.Date(2000, 1, 1, 2, 0, 0, 0, time.UTC),
			offset: -5,
			want:   CalendarDate{Year: 1999, Month: 12, Day: 31, Hour: 21, UTCOffset: -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalendarDateIn(tt.t, tt.offset)
			if got != tt.want {
				t.Errorf("CalendarDateIn() = %+v, want %+v", got, tt.want)
			}

			utc := CalendarDateIn(tt.t, 0)
			if a, b := JulianDate(got), JulianDate(utc); math.Abs(a-b) > 1e-9 {
				t.Errorf("JulianDate in zone = %v, in UTC = %v", a, b)
			}
		})
	}
}
