package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/workforcehq/hr-workflow-go/internal/config"
	"github.com/workforcehq/hr-workflow-go/internal/domain/timesheet"
)

func testWorkday() config.WorkdayConfig {
	return config.WorkdayConfig{
		StandardCheckIn:  "08:00",
		StandardCheckOut: "17:00",
		ShiftBoundary:    "12:00",
		WindowStart:      "06:00",
		WindowEnd:        "22:00",
		WorkdayMinutes:   540,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 16, hour, minute, 0, 0, time.UTC)
}

func TestCalculator_LateMinutes(t *testing.T) {
	calc := NewCalculator(testWorkday())

	assert.Equal(t, 0, calc.LateMinutes(at(8, 0)))
	assert.Equal(t, 0, calc.LateMinutes(at(7, 30)))
	assert.Equal(t, 90, calc.LateMinutes(at(9, 30)))
}

func TestCalculator_CheckOutBoundaries(t *testing.T) {
	calc := NewCalculator(testWorkday())

	assert.Equal(t, 0, calc.EarlyLeaveMinutes(at(17, 0)))
	assert.Equal(t, 0, calc.OvertimeMinutes(at(17, 0)))
	assert.Equal(t, 60, calc.EarlyLeaveMinutes(at(16, 0)))
	assert.Equal(t, 60, calc.OvertimeMinutes(at(18, 0)))
	assert.Equal(t, 0, calc.EarlyLeaveMinutes(at(18, 0)))
	assert.Equal(t, 0, calc.OvertimeMinutes(at(16, 0)))
}

func TestCalculator_WorkCredit(t *testing.T) {
	calc := NewCalculator(testWorkday())

	fullDayIn, fullDayOut := at(8, 0), at(17, 0)
	assert.Equal(t, "1", calc.WorkCredit(&fullDayIn, &fullDayOut).String())

	shortOut := at(16, 0)
	assert.Equal(t, "0.889", calc.WorkCredit(&fullDayIn, &shortOut).String())

	midIn, midOut := at(10, 0), at(14, 0)
	assert.Equal(t, "0.444", calc.WorkCredit(&midIn, &midOut).String())
}

func TestCalculator_WorkCredit_Degenerate(t *testing.T) {
	calc := NewCalculator(testWorkday())

	in, out := at(14, 0), at(10, 0)
	assert.True(t, calc.WorkCredit(&in, &out).IsZero(), "inverted interval floors at zero")
	assert.True(t, calc.WorkCredit(nil, &out).IsZero())
	assert.True(t, calc.WorkCredit(&in, nil).IsZero())

	same := at(9, 0)
	assert.True(t, calc.WorkCredit(&same, &same).IsZero())
}

func TestCalculator_ShiftSplit(t *testing.T) {
	calc := NewCalculator(testWorkday())

	assert.True(t, calc.IsMorning(at(11, 59)))
	assert.False(t, calc.IsMorning(at(12, 0)))
	assert.True(t, calc.IsAfternoon(at(12, 0)))
	assert.Equal(t, timesheet.ShiftMorning, calc.PunchShift(at(8, 15)))
	assert.Equal(t, timesheet.ShiftAfternoon, calc.PunchShift(at(13, 45)))
}

func TestCalculator_WithinWorkingWindow(t *testing.T) {
	calc := NewCalculator(testWorkday())

	assert.True(t, calc.WithinWorkingWindow(at(6, 0)))
	assert.True(t, calc.WithinWorkingWindow(at(22, 0)))
	assert.False(t, calc.WithinWorkingWindow(at(5, 59)))
	assert.False(t, calc.WithinWorkingWindow(at(22, 1)))
}

func TestCalculator_ShiftCredit(t *testing.T) {
	calc := NewCalculator(testWorkday())

	assert.Equal(t, "1", calc.ShiftCredit(timesheet.ShiftFullDay).String())
	assert.Equal(t, "0.5", calc.ShiftCredit(timesheet.ShiftMorning).String())
	assert.Equal(t, "0.5", calc.ShiftCredit(timesheet.ShiftAfternoon).String())
}
