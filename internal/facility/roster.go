package facility

import (
	"fmt"
	"time"
)

// Canonical coverage windows checked by the compliance engine.
var (
	morningStart = NewTimeOfDay(8, 0)
	morningEnd   = NewTimeOfDay(16, 0)
	eveningStart = NewTimeOfDay(14, 0)
	eveningEnd   = NewTimeOfDay(22, 0)
)

const maxDailyHours = 8

// weekOrder fixes the day iteration order for compliance checks and
// schedule views, Monday first.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Roster holds per-staff shift lists and the per-day doctor-presence
// flags. Inserts are lenient: overlapping or excessive shifts are
// accepted and only surface when the compliance rules are evaluated,
// so a tentative schedule can be recorded and fixed before it takes
// effect. The roster is not safe for concurrent use on its own; the
// care home serializes access.
type Roster struct {
	staffOrder    []string
	shifts        map[string][]Shift
	doctorPresent map[time.Weekday]bool
}

func newRoster() *Roster {
	return &Roster{
		shifts:        make(map[string][]Shift),
		doctorPresent: make(map[time.Weekday]bool),
	}
}

// assignShift appends a shift for the staff member unconditionally.
func (r *Roster) assignShift(staffID string, s Shift) {
	if _, seen := r.shifts[staffID]; !seen {
		r.staffOrder = append(r.staffOrder, staffID)
	}
	r.shifts[staffID] = append(r.shifts[staffID], s)
}

// shiftsFor returns the shifts assigned to the staff member, in
// assignment order.
func (r *Roster) shiftsFor(staffID string) []Shift {
	out := make([]Shift, len(r.shifts[staffID]))
	copy(out, r.shifts[staffID])
	return out
}

// isOnDuty reports whether any of the staff member's shifts on the
// given day contains the time, inclusive at both boundaries.
func (r *Roster) isOnDuty(staffID string, day time.Weekday, t TimeOfDay) bool {
	for _, s := range r.shifts[staffID] {
		if s.Day == day && s.Start <= t && t <= s.End {
			return true
		}
	}
	return false
}

func (r *Roster) setDoctorPresent(day time.Weekday, present bool) {
	r.doctorPresent[day] = present
}

func (r *Roster) isDoctorPresent(day time.Weekday) bool {
	return r.doctorPresent[day]
}

// checkCompliance evaluates the hour-cap rule for every staff member,
// then the coverage rule for every day, and stops at the first
// violation found. Staff are visited in first-assignment order, days
// Monday first.
func (r *Roster) checkCompliance() error {
	for _, staffID := range r.staffOrder {
		for _, day := range weekOrder {
			hours := 0
			for _, s := range r.shifts[staffID] {
				if s.Day == day {
					hours += s.Hours()
				}
			}
			if hours > maxDailyHours {
				return &ComplianceError{Description: fmt.Sprintf(
					"staff %s is scheduled %d hours on %s, exceeding the %d-hour daily cap",
					staffID, hours, day, maxDailyHours)}
			}
		}
	}

	for _, day := range weekOrder {
		if !r.dayCovered(day, morningStart, morningEnd) {
			return &ComplianceError{Description: fmt.Sprintf(
				"no shift covers the %s-%s morning window on %s", morningStart, morningEnd, day)}
		}
		if !r.dayCovered(day, eveningStart, eveningEnd) {
			return &ComplianceError{Description: fmt.Sprintf(
				"no shift covers the %s-%s evening window on %s", eveningStart, eveningEnd, day)}
		}
		if !r.doctorPresent[day] {
			return &ComplianceError{Description: fmt.Sprintf("no doctor is present on %s", day)}
		}
	}
	return nil
}

// dayCovered reports whether any assigned shift on the day fully
// contains the window, across all staff.
func (r *Roster) dayCovered(day time.Weekday, start, end TimeOfDay) bool {
	for _, staffID := range r.staffOrder {
		for _, s := range r.shifts[staffID] {
			if s.Day == day && s.covers(start, end) {
				return true
			}
		}
	}
	return false
}

// StaffShifts pairs a staff identity with its assigned shifts for
// schedule views.
type StaffShifts struct {
	StaffID string  `json:"staff_id"`
	Shifts  []Shift `json:"shifts"`
}

// DayPresence reports the doctor-presence flag for one day.
type DayPresence struct {
	Day     time.Weekday `json:"day"`
	Present bool         `json:"present"`
}

// ScheduleView is the read-only projection of the roster.
type ScheduleView struct {
	Staff          []StaffShifts `json:"staff"`
	DoctorPresence []DayPresence `json:"doctor_presence"`
}

func (r *Roster) view() ScheduleView {
	v := ScheduleView{Staff: make([]StaffShifts, 0, len(r.staffOrder))}
	for _, staffID := range r.staffOrder {
		v.Staff = append(v.Staff, StaffShifts{StaffID: staffID, Shifts: r.shiftsFor(staffID)})
	}
	for _, day := range weekOrder {
		v.DoctorPresence = append(v.DoctorPresence, DayPresence{Day: day, Present: r.doctorPresent[day]})
	}
	return v
}
