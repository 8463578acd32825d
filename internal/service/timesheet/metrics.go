package timesheet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/workforcehq/hr-workflow-go/internal/config"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
)

// Calculator derives attendance metrics from punch times against the
// configured reference workday. It is pure and stateless; every method works
// on the clock-of-day only, so the calendar date of the input is irrelevant.
type Calculator struct {
	checkInMin    int
	checkOutMin   int
	shiftBoundary int
	windowStart   int
	windowEnd     int
	workdayMins   decimal.Decimal
}

func NewCalculator(cfg config.WorkdayConfig) *Calculator {
	return &Calculator{
		checkInMin:    clockMinutes(cfg.StandardCheckIn),
		checkOutMin:   clockMinutes(cfg.StandardCheckOut),
		shiftBoundary: clockMinutes(cfg.ShiftBoundary),
		windowStart:   clockMinutes(cfg.WindowStart),
		windowEnd:     clockMinutes(cfg.WindowEnd),
		workdayMins:   decimal.NewFromInt(int64(cfg.WorkdayMinutes)),
	}
}

// clockMinutes converts "HH:MM" to minutes from midnight. Config validation
// guarantees the format, so a parse failure here is a programming error.
func clockMinutes(clock string) int {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		panic("invalid clock value: " + clock)
	}
	return t.Hour()*60 + t.Minute()
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// LateMinutes is how far past the standard check-in the punch landed.
func (c *Calculator) LateMinutes(checkIn time.Time) int {
	return max(0, minutesOfDay(checkIn)-c.checkInMin)
}

// EarlyLeaveMinutes is how far before the standard check-out the punch landed.
func (c *Calculator) EarlyLeaveMinutes(checkOut time.Time) int {
	return max(0, c.checkOutMin-minutesOfDay(checkOut))
}

// OvertimeMinutes is how far past the standard check-out the punch landed.
func (c *Calculator) OvertimeMinutes(checkOut time.Time) int {
	return max(0, minutesOfDay(checkOut)-c.checkOutMin)
}

// WorkCredit is the fractional-day credit for the presence interval, rounded
// to 3 decimal places. A missing punch or a non-positive interval yields 0.
func (c *Calculator) WorkCredit(checkIn, checkOut *time.Time) decimal.Decimal {
	if checkIn == nil || checkOut == nil {
		return decimal.Zero
	}
	mins := minutesOfDay(*checkOut) - minutesOfDay(*checkIn)
	if mins <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(mins)).Div(c.workdayMins).Round(3)
}

// IsMorning reports whether the punch falls before the shift boundary.
func (c *Calculator) IsMorning(t time.Time) bool {
	return minutesOfDay(t) < c.shiftBoundary
}

func (c *Calculator) IsAfternoon(t time.Time) bool {
	return !c.IsMorning(t)
}

// PunchShift maps a punch time onto the half-day slot it affects.
func (c *Calculator) PunchShift(t time.Time) timesheet.Shift {
	if c.IsMorning(t) {
		return timesheet.ShiftMorning
	}
	return timesheet.ShiftAfternoon
}

// WithinWorkingWindow reports whether the punch lies inside the correctable
// working window.
func (c *Calculator) WithinWorkingWindow(t time.Time) bool {
	m := minutesOfDay(t)
	return m >= c.windowStart && m <= c.windowEnd
}

// StandardCheckInClock returns the configured standard check-in as "HH:MM",
// for user-facing validation messages.
func (c *Calculator) StandardCheckInClock() string {
	return clockString(c.checkInMin)
}

// StandardCheckOutClock returns the configured standard check-out as "HH:MM".
func (c *Calculator) StandardCheckOutClock() string {
	return clockString(c.checkOutMin)
}

func clockString(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// ShiftCredit is the flat credit for a leave-free WFH or presence shift:
// 1.0 for a full day, 0.5 per half day.
func (c *Calculator) ShiftCredit(shift timesheet.Shift) decimal.Decimal {
	return shift.Days()
}
