package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateBucket groups records by calendar day relative to now
type DateBucket string

const (
	BucketAll       DateBucket = "all"
	BucketToday     DateBucket = "today"
	BucketYesterday DateBucket = "yesterday"
	BucketTomorrow  DateBucket = "tomorrow"
	BucketLast7Days DateBucket = "last_7_days"
	BucketUpcoming  DateBucket = "upcoming"
	BucketPast      DateBucket = "past"
)

// ParseDateBucket validates a raw bucket; blank means all
func ParseDateBucket(s string) (DateBucket, error) {
	switch b := DateBucket(strings.ToLower(s)); b {
	case "":
		return BucketAll, nil
	case BucketAll, BucketToday, BucketYesterday, BucketTomorrow, BucketLast7Days, BucketUpcoming, BucketPast:
		return b, nil
	}
	return "", fmt.Errorf("unknown date bucket %q", s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Contains reports whether day falls in the bucket, comparing calendar
// days in now's location. Last seven days includes today.
func (b DateBucket) Contains(day, now time.Time) bool {
	today := startOfDay(now)
	d := startOfDay(day.In(now.Location()))
	switch b {
	case BucketAll, "":
		return true
	case BucketToday:
		return d.Equal(today)
	case BucketYesterday:
		return d.Equal(today.AddDate(0, 0, -1))
	case BucketTomorrow:
		return d.Equal(today.AddDate(0, 0, 1))
	case BucketLast7Days:
		return !d.After(today) && d.After(today.AddDate(0, 0, -7))
	case BucketUpcoming:
		return d.After(today)
	case BucketPast:
		return d.Before(today)
	}
	return false
}

// TimeSlot is the service period a reservation time falls in
type TimeSlot string

const (
	SlotBreakfast TimeSlot = "Breakfast"
	SlotLunch     TimeSlot = "Lunch"
	SlotEvening   TimeSlot = "Evening"
	SlotDinner    TimeSlot = "Dinner"
	SlotLateNight TimeSlot = "Late Night"
	SlotUnknown   TimeSlot = "Unknown"
)

var clockTime = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s?(AM|PM)$`)

// ParseClockMinutes converts "07:30 PM" to minutes after midnight.
// It returns -1 when the value does not parse.
func ParseClockMinutes(s string) int {
	m := clockTime.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return -1
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if hh < 1 || hh > 12 || mm > 59 {
		return -1
	}
	switch strings.ToUpper(m[3]) {
	case "PM":
		if hh != 12 {
			hh += 12
		}
	case "AM":
		if hh == 12 {
			hh = 0
		}
	}
	return hh*60 + mm
}

// SlotOf buckets a reservation time into a service period
func SlotOf(clock string) TimeSlot {
	mins := ParseClockMinutes(clock)
	switch {
	case mins < 0:
		return SlotUnknown
	case mins >= 300 && mins < 720:
		return SlotBreakfast
	case mins >= 720 && mins < 1020:
		return SlotLunch
	case mins >= 1020 && mins < 1200:
		return SlotEvening
	case mins >= 1200 && mins < 1380:
		return SlotDinner
	}
	return SlotLateNight
}

// ParseTimeSlot validates a raw slot name, case-insensitively
func ParseTimeSlot(s string) (TimeSlot, error) {
	for _, slot := range []TimeSlot{SlotBreakfast, SlotLunch, SlotEvening, SlotDinner, SlotLateNight, SlotUnknown} {
		if strings.EqualFold(string(slot), s) || strings.EqualFold(strings.ReplaceAll(string(slot), " ", "_"), s) {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown time slot %q", s)
}
