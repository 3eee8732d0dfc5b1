package facility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustShift(t *testing.T, day time.Weekday, start, end string) Shift {
	t.Helper()
	s, err := ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := ParseTimeOfDay(end)
	require.NoError(t, err)
	shift, err := NewShift(day, s, e)
	require.NoError(t, err)
	return shift
}

func TestNewShiftRejectsInvertedInterval(t *testing.T) {
	_, err := NewShift(time.Monday, NewTimeOfDay(16, 0), NewTimeOfDay(8, 0))
	assert.Error(t, err)

	_, err = NewShift(time.Monday, NewTimeOfDay(8, 0), NewTimeOfDay(8, 0))
	assert.Error(t, err, "zero-length shift should be rejected")
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(8, 30), tod)
	assert.Equal(t, "08:30", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("nonsense")
	assert.Error(t, err)
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("MONDAY")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	_, err = ParseWeekday("Someday")
	assert.Error(t, err)
}

func TestIsOnDutyBoundaries(t *testing.T) {
	r := newRoster()
	r.assignShift("N1", mustShift(t, time.Monday, "08:00", "16:00"))

	testCases := []struct {
		name string
		day  time.Weekday
		at   TimeOfDay
		want bool
	}{
		{"exactly at start", time.Monday, NewTimeOfDay(8, 0), true},
		{"exactly at end", time.Monday, NewTimeOfDay(16, 0), true},
		{"one minute before start", time.Monday, NewTimeOfDay(7, 59), false},
		{"one minute after end", time.Monday, NewTimeOfDay(16, 1), false},
		{"middle of shift", time.Monday, NewTimeOfDay(12, 0), true},
		{"same time wrong day", time.Tuesday, NewTimeOfDay(12, 0), false},
		{"unknown staff", time.Monday, NewTimeOfDay(12, 0), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			staffID := "N1"
			if tc.name == "unknown staff" {
				staffID = "ghost"
			}
			assert.Equal(t, tc.want, r.isOnDuty(staffID, tc.day, tc.at))
		})
	}
}

func TestLenientInsertStrictCheck(t *testing.T) {
	r := newRoster()
	// Overlapping shifts totalling 12 hours are accepted at insert time.
	r.assignShift("N1", mustShift(t, time.Monday, "08:00", "16:00"))
	r.assignShift("N1", mustShift(t, time.Monday, "14:00", "22:00"))
	assert.Len(t, r.shiftsFor("N1"), 2)

	err := r.checkCompliance()
	require.Error(t, err)
	var cerr *ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Description, "N1")
	assert.Contains(t, cerr.Description, "12 hours")
	assert.Contains(t, cerr.Description, "Monday")
}

func TestHourCapAllowsExactEightHours(t *testing.T) {
	r := newRoster()
	r.assignShift("N1", mustShift(t, time.Monday, "08:00", "16:00"))

	err := r.checkCompliance()
	// The hour cap passes at exactly 8 hours; the first failure must be
	// a coverage violation, not an hour-cap one.
	require.Error(t, err)
	var cerr *ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.NotContains(t, cerr.Description, "daily cap")
}

func TestCoverageRuleProgression(t *testing.T) {
	r := newRoster()

	// Empty roster: Monday morning coverage is the first violation.
	err := r.checkCompliance()
	require.Error(t, err)
	var cerr *ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Description, "morning window on Monday")

	// Morning covered, evening still missing.
	r.assignShift("N1", mustShift(t, time.Monday, "08:00", "16:00"))
	err = r.checkCompliance()
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Description, "evening window on Monday")

	// Both windows covered, doctor still absent.
	r.assignShift("N2", mustShift(t, time.Monday, "14:00", "22:00"))
	err = r.checkCompliance()
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Description, "doctor is present on Monday")

	// Monday fully satisfied: the check moves on to Tuesday.
	r.setDoctorPresent(time.Monday, true)
	err = r.checkCompliance()
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Description, "morning window on Tuesday")
}

func TestHourCapCheckedBeforeCoverage(t *testing.T) {
	r := newRoster()
	// Sunday overload must still be reported before Monday's missing
	// coverage: staff violations precede day violations.
	r.assignShift("N1", mustShift(t, time.Sunday, "08:00", "18:00"))

	err := r.checkCompliance()
	var cerr *ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Description, "Sunday")
	assert.Contains(t, cerr.Description, "daily cap")
}

func TestDoctorPresenceDefaultsFalse(t *testing.T) {
	r := newRoster()
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.False(t, r.isDoctorPresent(d))
	}
	r.setDoctorPresent(time.Wednesday, true)
	assert.True(t, r.isDoctorPresent(time.Wednesday))
	r.setDoctorPresent(time.Wednesday, false)
	assert.False(t, r.isDoctorPresent(time.Wednesday))
}

func TestScheduleViewOrdering(t *testing.T) {
	r := newRoster()
	r.assignShift("N2", mustShift(t, time.Tuesday, "08:00", "16:00"))
	r.assignShift("N1", mustShift(t, time.Monday, "08:00", "16:00"))
	r.assignShift("N2", mustShift(t, time.Wednesday, "08:00", "16:00"))

	v := r.view()
	require.Len(t, v.Staff, 2)
	assert.Equal(t, "N2", v.Staff[0].StaffID, "staff keep first-assignment order")
	assert.Equal(t, "N1", v.Staff[1].StaffID)
	assert.Len(t, v.Staff[0].Shifts, 2)

	require.Len(t, v.DoctorPresence, 7)
	assert.Equal(t, time.Monday, v.DoctorPresence[0].Day, "days listed Monday first")
	assert.Equal(t, time.Sunday, v.DoctorPresence[6].Day)
}
