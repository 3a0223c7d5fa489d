package plan

import (
	"fmt"
	"math"
)

// Pace computes a per-mile pace from a completed run's distance and elapsed
// time. It returns ("", false) when distance or total time is missing or
// non-positive. Seconds are rounded to the nearest whole second; a rounded
// value of 60 carries into the minutes so "7:60" can never be produced.
func Pace(distanceMiles float64, minutes, seconds int) (string, bool) {
	totalSec := minutes*60 + seconds
	if distanceMiles <= 0 || totalSec <= 0 {
		return "", false
	}
	secPerMile := float64(totalSec) / distanceMiles
	m := int(secPerMile) / 60
	s := int(math.Round(math.Mod(secPerMile, 60)))
	if s == 60 {
		m++
		s = 0
	}
	return fmt.Sprintf("%d:%02d", m, s), true
}

// DayPace derives the pace string for a logged day. Only completed days with
// both distance and time recorded have a pace.
func DayPace(d DailyWorkout) (string, bool) {
	if d.Status != StatusCompleted || d.DistanceMiles == nil {
		return "", false
	}
	min, sec := 0, 0
	if d.TimeMinutes != nil {
		min = *d.TimeMinutes
	}
	if d.TimeSeconds != nil {
		sec = *d.TimeSeconds
	}
	return Pace(*d.DistanceMiles, min, sec)
}
