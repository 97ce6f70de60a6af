// Package clock provides game time: four times of day, a seven-day week,
// and a monotonic day counter.
package clock

import "fmt"

// DayOfWeek is a day of the seven-day week.
type DayOfWeek uint8

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday

	numDays
)

var dayNames = [numDays]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

func (d DayOfWeek) String() string {
	if d >= numDays {
		return fmt.Sprintf("day(%d)", uint8(d))
	}
	return dayNames[d]
}

// Offset returns the day of week a number of days later.
func (d DayOfWeek) Offset(days int) DayOfWeek {
	return DayOfWeek((int(d) + days) % int(numDays))
}

// Next returns the following day of the week.
func (d DayOfWeek) Next() DayOfWeek { return d.Offset(1) }

// MarshalText serializes the day as its name.
func (d DayOfWeek) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a day name.
func (d *DayOfWeek) UnmarshalText(text []byte) error {
	for i, n := range dayNames {
		if n == string(text) {
			*d = DayOfWeek(i)
			return nil
		}
	}
	return fmt.Errorf("unknown day of week %q", string(text))
}

// TimeOfDay is one of the four phases the game day moves through.
type TimeOfDay uint8

const (
	Dawn TimeOfDay = iota
	Midday
	Dusk
	Midnight

	numTimesOfDay
)

var timeOfDayNames = [numTimesOfDay]string{
	"Dawn", "Midday", "Dusk", "Midnight",
}

func (t TimeOfDay) String() string {
	if t >= numTimesOfDay {
		return fmt.Sprintf("time(%d)", uint8(t))
	}
	return timeOfDayNames[t]
}

// Next returns the following time of day, and whether the day rolled
// over.
func (t TimeOfDay) Next() (next TimeOfDay, wrap bool) {
	wrap = t+1 >= numTimesOfDay
	return TimeOfDay((t + 1) % numTimesOfDay), wrap
}

// MarshalText serializes the time of day as its name.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a time-of-day name.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	for i, n := range timeOfDayNames {
		if n == string(text) {
			*t = TimeOfDay(i)
			return nil
		}
	}
	return fmt.Errorf("unknown time of day %q", string(text))
}

// Time is the full game clock state.
type Time struct {
	TimeOfDay  TimeOfDay `json:"time_of_day"`
	DayOfWeek  DayOfWeek `json:"day_of_week"`
	DayOrdinal int       `json:"day_ordinal"`
}

// Seed returns the game's starting moment: dawn on a Friday, day zero.
func Seed() Time {
	return Time{
		TimeOfDay:  Dawn,
		DayOfWeek:  Friday,
		DayOrdinal: 0,
	}
}

// Advance moves the clock to the next time of day, rolling the date when
// midnight passes.
func (t *Time) Advance() {
	next, wrap := t.TimeOfDay.Next()
	t.TimeOfDay = next
	if wrap {
		t.DayOrdinal++
		t.DayOfWeek = t.DayOfWeek.Next()
	}
}

// AdvanceUntil advances at least once, stopping when the clock reaches
// the given time of day.
func (t *Time) AdvanceUntil(until TimeOfDay) {
	for {
		t.Advance()
		if t.TimeOfDay == until {
			return
		}
	}
}

// String renders the clock for logs and dashboards.
func (t Time) String() string {
	return fmt.Sprintf("%s, %s (day %d)", t.TimeOfDay, t.DayOfWeek, t.DayOrdinal)
}
