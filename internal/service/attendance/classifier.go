package attendance

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/worktime"
)

// Classifier derives a day's attendance status from clock times and
// configured thresholds. It is pure: the same inputs always produce the same
// status.
//
// Precedence is fixed: an external override (weekend, on-leave, mission)
// always wins; a check-in at or after the late threshold is late; a check-out
// before the standard end demotes a present day to early-leave. Demotion is
// governed by the latePrecedence policy: it only applies when the pre-check-out
// status is present, so a late day that also leaves early stays late.
type Classifier struct {
	lateThreshold int // minute-of-day, check-in at/after this is late
	standardEnd   int // minute-of-day, check-out before this is early-leave
}

// NewClassifier builds a Classifier from "HH:MM" threshold values.
func NewClassifier(lateThreshold, standardEnd string) (Classifier, error) {
	late, err := worktime.ParseClock(lateThreshold)
	if err != nil {
		return Classifier{}, fmt.Errorf("late threshold: %w", err)
	}
	end, err := worktime.ParseClock(standardEnd)
	if err != nil {
		return Classifier{}, fmt.Errorf("standard end: %w", err)
	}
	return Classifier{lateThreshold: late, standardEnd: end}, nil
}

// AtCheckIn classifies a day at the moment of check-in.
func (c Classifier) AtCheckIn(checkInMinute int) string {
	if checkInMinute >= c.lateThreshold {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

// AtCheckOut re-classifies a day at the moment of check-out. Only a present
// day can be demoted to early-leave; late stays late (latePrecedence).
func (c Classifier) AtCheckOut(current string, checkOutMinute int) string {
	if current == attendance.StatusPresent && checkOutMinute < c.standardEnd {
		return attendance.StatusEarlyLeave
	}
	return current
}

// Classify derives the status for a full (checkIn, checkOut, override) tuple.
// Overrides win unconditionally; a past day without a check-in is absent.
func (c Classifier) Classify(checkIn, checkOut *string, override string) (string, error) {
	if attendance.IsOverrideStatus(override) {
		return override, nil
	}
	if checkIn == nil {
		return attendance.StatusAbsent, nil
	}

	in, err := worktime.ParseClock(*checkIn)
	if err != nil {
		return "", err
	}
	status := c.AtCheckIn(in)

	if checkOut != nil {
		out, err := worktime.ParseClock(*checkOut)
		if err != nil {
			return "", err
		}
		status = c.AtCheckOut(status, out)
	}
	return status, nil
}
