package timesheet

// HasConflict reports whether writing desired into the given shift would
// contradict a slot that has already been resolved to a different status.
// Undetermined (nil) slots never conflict.
func HasConflict(t DailyTimesheet, shift Shift, desired ShiftStatus) bool {
	switch shift {
	case ShiftMorning:
		return t.MorningStatus != nil && *t.MorningStatus != desired
	case ShiftAfternoon:
		return t.AfternoonStatus != nil && *t.AfternoonStatus != desired
	default:
		if t.MorningStatus != nil && *t.MorningStatus != desired {
			return true
		}
		return t.AfternoonStatus != nil && *t.AfternoonStatus != desired
	}
}

// IsFullDayLeave reports whether both slots are resolved to leave.
func IsFullDayLeave(t DailyTimesheet) bool {
	return t.MorningStatus != nil && *t.MorningStatus == StatusLeave &&
		t.AfternoonStatus != nil && *t.AfternoonStatus == StatusLeave
}
