// Package astro computes the sun and moon figures shown on the almanac page.
package astro

import (
	"errors"
	"math"
	"time"
)

// ErrNoEvent is returned when the sun does not rise or set on the day at
// the given latitude.
var ErrNoEvent = errors.New("sun does not rise or set on this date")

// zenith is the official sunrise/sunset zenith in degrees.
const zenith = 90.833

// Sunrise returns the sunrise time for the calendar day of day, in loc.
func Sunrise(day time.Time, lat, lon float64, loc *time.Location) (time.Time, error) {
	return sunEvent(day, lat, lon, loc, true)
}

// Sunset returns the sunset time for the calendar day of day, in loc.
func Sunset(day time.Time, lat, lon float64, loc *time.Location) (time.Time, error) {
	return sunEvent(day, lat, lon, loc, false)
}

// NOAA sunrise equation approximation.
func sunEvent(day time.Time, lat, lon float64, loc *time.Location, rising bool) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	day = day.In(loc)

	n := float64(day.YearDay())
	lngHour := lon / 15.0
	approx := 18.0
	if rising {
		approx = 6.0
	}
	t := n + (approx-lngHour)/24.0

	m := 0.9856*t - 3.289
	l := normalizeDeg(m + 1.916*math.Sin(deg2rad(m)) + 0.020*math.Sin(2*deg2rad(m)) + 282.634)

	ra := normalizeDeg(rad2deg(math.Atan(0.91764 * math.Tan(deg2rad(l)))))
	lQuadrant := math.Floor(l/90.0) * 90.0
	raQuadrant := math.Floor(ra/90.0) * 90.0
	ra = (ra + (lQuadrant - raQuadrant)) / 15.0

	sinDec := 0.39782 * math.Sin(deg2rad(l))
	cosDec := math.Cos(math.Asin(sinDec))
	cosH := (math.Cos(deg2rad(zenith)) - sinDec*math.Sin(deg2rad(lat))) / (cosDec * math.Cos(deg2rad(lat)))
	if cosH > 1 || cosH < -1 {
		return time.Time{}, ErrNoEvent
	}

	h := rad2deg(math.Acos(cosH)) / 15.0
	if rising {
		h = (360.0 - rad2deg(math.Acos(cosH))) / 15.0
	}
	localT := h + ra - 0.06571*t - 6.622
	ut := normalizeHour(localT - lngHour)

	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	event := date.Add(time.Duration(ut * float64(time.Hour))).In(loc)

	// The UTC clock time can land on the neighbouring local day.
	local := time.Date(event.Year(), event.Month(), event.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case local.Before(date):
		event = event.Add(24 * time.Hour)
	case local.After(date):
		event = event.Add(-24 * time.Hour)
	}
	return event, nil
}

func deg2rad(v float64) float64 { return v * math.Pi / 180.0 }
func rad2deg(v float64) float64 { return v * 180.0 / math.Pi }

func normalizeDeg(v float64) float64 {
	v = math.Mod(v, 360)
	if v < 0 {
		v += 360
	}
	return v
}

func normalizeHour(v float64) float64 {
	v = math.Mod(v, 24)
	if v < 0 {
		v += 24
	}
	return v
}

const synodicMonth = 29.530588853

// Reference new moon: 2000-01-06 18:14 UTC.
var knownNewMoon = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)

var phaseNames = [8]string{
	"New Moon",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full Moon",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// MoonAge returns the days since the last new moon.
func MoonAge(t time.Time) float64 {
	days := t.Sub(knownNewMoon).Hours() / 24
	age := math.Mod(days, synodicMonth)
	if age < 0 {
		age += synodicMonth
	}
	return age
}

// MoonPhase names the phase of the moon at t.
func MoonPhase(t time.Time) string {
	idx := int(math.Floor(MoonAge(t)/synodicMonth*8+0.5)) % 8
	return phaseNames[idx]
}

// Illumination is the lit fraction of the moon's disc at t, 0 to 1.
func Illumination(t time.Time) float64 {
	return (1 - math.Cos(2*math.Pi*MoonAge(t)/synodicMonth)) / 2
}
