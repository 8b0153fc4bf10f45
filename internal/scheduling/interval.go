package scheduling

import (
	"sort"
	"time"
)

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share an instant.
// Touching intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// NewWindow builds a window, rejecting start >= end with ErrInvalidWindow.
func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidWindow
	}

	return Window{Start: start, End: end}, nil
}

// ParseInstant parses one RFC 3339 instant, naming field in the error.
// Fractional seconds are dropped so stored instants match what responses render.
func ParseInstant(field, value string) (time.Time, error) {
	instant, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, NewError(KindInvalidWindow, field+" must be a valid RFC 3339 timestamp")
	}

	return instant.Truncate(time.Second), nil
}

// ParseWindow parses two RFC 3339 instants into a window.
func ParseWindow(start, end string) (Window, error) {
	startTime, err := ParseInstant("start_date_time", start)
	if err != nil {
		return Window{}, err
	}

	endTime, err := ParseInstant("end_date_time", end)
	if err != nil {
		return Window{}, err
	}

	return NewWindow(startTime, endTime)
}

func (w Window) Valid() bool {
	return w.Start.Before(w.End)
}

func (w Window) Overlaps(other Window) bool {
	return Overlaps(w.Start, w.End, other.Start, other.End)
}

// Contains reports whether other lies entirely inside w. Shared endpoints count.
func (w Window) Contains(other Window) bool {
	return !other.Start.Before(w.Start) && !other.End.After(w.End)
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// FreeWindows returns the parts of slot not covered by any booked window,
// ordered by start. Booked windows may be unsorted and may stick out of slot.
func FreeWindows(slot Window, booked []Window) []Window {
	clipped := make([]Window, 0, len(booked))

	for _, b := range booked {
		if !slot.Overlaps(b) {
			continue
		}

		if b.Start.Before(slot.Start) {
			b.Start = slot.Start
		}

		if b.End.After(slot.End) {
			b.End = slot.End
		}

		clipped = append(clipped, b)
	}

	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	free := []Window{}
	cursor := slot.Start

	for _, b := range clipped {
		if cursor.Before(b.Start) {
			free = append(free, Window{Start: cursor, End: b.Start})
		}

		if b.End.After(cursor) {
			cursor = b.End
		}
	}

	if cursor.Before(slot.End) {
		free = append(free, Window{Start: cursor, End: slot.End})
	}

	return free
}

// RemainingMinutes sums the free windows of a slot in whole minutes.
func RemainingMinutes(slot Window, booked []Window) int {
	var total time.Duration

	for _, w := range FreeWindows(slot, booked) {
		total += w.Duration()
	}

	return int(total / time.Minute)
}
