package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeFormat  = errors.New("start time must match YYYY-MM-DD HH:MM")
	ErrInvalidGranularity = errors.New("start time and duration must align to the booking granularity")
)

const (
	// GranularityMinutes is the unit both start times and durations must
	// align to. Misaligned input is rejected, never rounded.
	GranularityMinutes = 10

	TimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
	DateFormat = "2006-01-02"       // YYYY-MM-DD
)

// TimeSlot is a half-open interval [start, end) at minute resolution.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewTimeSlot parses rawStart under the canonical format and derives the
// interval end from durationMinutes. Pure function of its inputs.
func NewTimeSlot(rawStart string, durationMinutes int) (TimeSlot, error) {
	start, err := time.Parse(TimeFormat, rawStart)
	if err != nil {
		return TimeSlot{}, ErrInvalidTimeFormat
	}

	if start.Minute()%GranularityMinutes != 0 {
		return TimeSlot{}, ErrInvalidGranularity
	}
	if durationMinutes <= 0 || durationMinutes%GranularityMinutes != 0 {
		return TimeSlot{}, ErrInvalidGranularity
	}

	return TimeSlot{
		start: start,
		end:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

// SlotFromRange rebuilds a slot from stored endpoints. Storage rows are
// trusted; validation happened on the way in.
func SlotFromRange(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) DurationMinutes() int {
	return int(ts.end.Sub(ts.start) / time.Minute)
}

// Overlaps reports whether two half-open intervals intersect. Touching
// endpoints (one ending exactly when the other begins) do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(TimeFormat), ts.end.Format(TimeFormat))
}
