package worktime

import (
	"fmt"
	"regexp"
)

// ErrInvalidTimeFormat is returned when a clock value is not a valid 24-hour "HH:MM".
var ErrInvalidTimeFormat = fmt.Errorf("invalid time format, expected HH:MM")

const minutesPerDay = 24 * 60

var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Duration is an elapsed work duration split into whole hours and a 0-59 minute remainder.
type Duration struct {
	Hours        int
	Minutes      int
	TotalMinutes int
}

// ParseClock converts a 24-hour "HH:MM" value into its minute-of-day (0-1439).
func ParseClock(s string) (int, error) {
	if !clockRegex.MatchString(s) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour*60 + minute, nil
}

// FormatClock renders a minute-of-day back into "HH:MM".
func FormatClock(minuteOfDay int) string {
	minuteOfDay %= minutesPerDay
	if minuteOfDay < 0 {
		minuteOfDay += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}

// Elapsed computes the worked duration between two wall-clock "HH:MM" values.
// A check-out earlier than the check-in is treated as an overnight shift and
// rolled over to the next day, so 22:00 -> 06:30 yields 8h30m, never a negative
// value. If either value is empty, the duration is not yet computable and the
// zero Duration is returned without error.
func Elapsed(checkIn, checkOut string) (Duration, error) {
	if checkIn == "" || checkOut == "" {
		return Duration{}, nil
	}

	in, err := ParseClock(checkIn)
	if err != nil {
		return Duration{}, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return Duration{}, err
	}

	if out < in {
		out += minutesPerDay
	}

	total := out - in
	return Duration{
		Hours:        total / 60,
		Minutes:      total % 60,
		TotalMinutes: total,
	}, nil
}
