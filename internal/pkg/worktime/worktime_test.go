package worktime

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"09:00", 540, true},
		{"17:30", 1050, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:00", 0, false},
		{"09:60", 0, false},
		{"0900", 0, false},
		{"ab:cd", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := ParseClock(c.input)
		if c.ok {
			if err != nil {
				t.Errorf("ParseClock(%q) returned error %v, want %d", c.input, err, c.want)
				continue
			}
			if got != c.want {
				t.Errorf("ParseClock(%q) = %d, want %d", c.input, got, c.want)
			}
		} else {
			if err == nil {
				t.Errorf("ParseClock(%q) = %d, want error", c.input, got)
			} else if !errors.Is(err, ErrInvalidTimeFormat) {
				t.Errorf("ParseClock(%q) error = %v, want ErrInvalidTimeFormat", c.input, err)
			}
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		input int
		want  string
	}{
		{0, "00:00"},
		{540, "09:00"},
		{1050, "17:30"},
		{1439, "23:59"},
		{1440, "00:00"}, // wraps to next day
	}
	for _, c := range cases {
		if got := FormatClock(c.input); got != c.want {
			t.Errorf("FormatClock(%d) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestElapsed_SameDay(t *testing.T) {
	cases := []struct {
		in, out      string
		hours, mins  int
		totalMinutes int
	}{
		{"08:00", "17:00", 9, 0, 540},
		{"09:15", "17:00", 7, 45, 465},
		{"09:00", "09:00", 0, 0, 0},
		{"08:30", "16:45", 8, 15, 495},
	}
	for _, c := range cases {
		got, err := Elapsed(c.in, c.out)
		if err != nil {
			t.Fatalf("Elapsed(%q, %q) returned error: %v", c.in, c.out, err)
		}
		if got.Hours != c.hours || got.Minutes != c.mins || got.TotalMinutes != c.totalMinutes {
			t.Errorf("Elapsed(%q, %q) = %+v, want {%d %d %d}", c.in, c.out, got, c.hours, c.mins, c.totalMinutes)
		}
	}
}

func TestElapsed_Overnight(t *testing.T) {
	got, err := Elapsed("22:00", "06:30")
	if err != nil {
		t.Fatalf("Elapsed returned error: %v", err)
	}
	if got.Hours != 8 || got.Minutes != 30 || got.TotalMinutes != 510 {
		t.Errorf("Elapsed(22:00, 06:30) = %+v, want {8 30 510}", got)
	}

	// One minute before midnight to one minute after.
	got, err = Elapsed("23:59", "00:01")
	if err != nil {
		t.Fatalf("Elapsed returned error: %v", err)
	}
	if got.TotalMinutes != 2 {
		t.Errorf("Elapsed(23:59, 00:01).TotalMinutes = %d, want 2", got.TotalMinutes)
	}
}

func TestElapsed_MissingInput(t *testing.T) {
	for _, c := range [][2]string{{"", ""}, {"08:00", ""}, {"", "17:00"}} {
		got, err := Elapsed(c[0], c[1])
		if err != nil {
			t.Fatalf("Elapsed(%q, %q) returned error: %v", c[0], c[1], err)
		}
		if got != (Duration{}) {
			t.Errorf("Elapsed(%q, %q) = %+v, want zero Duration", c[0], c[1], got)
		}
	}
}

func TestElapsed_Malformed(t *testing.T) {
	if _, err := Elapsed("8am", "17:00"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("Elapsed with malformed check-in: err = %v, want ErrInvalidTimeFormat", err)
	}
	if _, err := Elapsed("08:00", "25:00"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("Elapsed with malformed check-out: err = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestElapsed_RoundTrip(t *testing.T) {
	// hours*60 + minutes must always equal TotalMinutes, and TotalMinutes is
	// never negative, for every representable pair.
	pairs := [][2]string{
		{"00:00", "23:59"},
		{"06:15", "14:45"},
		{"22:00", "06:30"},
		{"12:00", "11:59"},
		{"17:00", "09:00"},
	}
	for _, p := range pairs {
		got, err := Elapsed(p[0], p[1])
		if err != nil {
			t.Fatalf("Elapsed(%q, %q) returned error: %v", p[0], p[1], err)
		}
		if got.TotalMinutes < 0 {
			t.Errorf("Elapsed(%q, %q).TotalMinutes = %d, want >= 0", p[0], p[1], got.TotalMinutes)
		}
		if got.Hours*60+got.Minutes != got.TotalMinutes {
			t.Errorf("Elapsed(%q, %q): %d*60+%d != %d", p[0], p[1], got.Hours, got.Minutes, got.TotalMinutes)
		}
		if got.Minutes < 0 || got.Minutes > 59 {
			t.Errorf("Elapsed(%q, %q).Minutes = %d, want 0-59", p[0], p[1], got.Minutes)
		}
	}
}
