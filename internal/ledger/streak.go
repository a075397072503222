// Package ledger holds the point, streak and badge rules. Everything here is
// pure: no I/O, no clock reads.
package ledger

import (
	"sort"
	"time"

	"github.com/fardannozami/ecoplay/internal/domain"
)

// DayOf maps t to its calendar day in loc, normalised to UTC midnight so that
// day arithmetic is immune to DST shifts.
func DayOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	return DayOf(a, loc).Equal(DayOf(b, loc))
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	return int(DayOf(b, loc).Sub(DayOf(a, loc)).Hours() / 24)
}

// ComputeStreak counts consecutive calendar days walking backward from the
// most recent record. Several records on one day count once.
func ComputeStreak(records []domain.WateringRecord, loc *time.Location) int {
	if len(records) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(records))
	for _, r := range records {
		days = append(days, DayOf(r.Timestamp, loc))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 1
	prev := days[0]
	for _, d := range days[1:] {
		gap := int(prev.Sub(d).Hours() / 24)
		if gap == 0 {
			continue
		}
		if gap != 1 {
			break
		}
		streak++
		prev = d
	}
	return streak
}

// StreakAlive reports whether a streak whose last day is last can still be
// extended today: last watering was today or yesterday.
func StreakAlive(last *time.Time, today time.Time, loc *time.Location) bool {
	if last == nil {
		return false
	}
	d := DaysBetween(*last, today, loc)
	return d == 0 || d == 1
}

// LiveStreak is ComputeStreak, except a streak that can no longer be extended
// reads as zero.
func LiveStreak(records []domain.WateringRecord, today time.Time, loc *time.Location) int {
	if len(records) == 0 {
		return 0
	}
	newest := records[0].Timestamp
	for _, r := range records[1:] {
		if r.Timestamp.After(newest) {
			newest = r.Timestamp
		}
	}
	if !StreakAlive(&newest, today, loc) {
		return 0
	}
	return ComputeStreak(records, loc)
}

// WateredOn reports whether any record falls on the calendar day of day.
func WateredOn(records []domain.WateringRecord, day time.Time, loc *time.Location) bool {
	for _, r := range records {
		if SameDay(r.Timestamp, day, loc) {
			return true
		}
	}
	return false
}
