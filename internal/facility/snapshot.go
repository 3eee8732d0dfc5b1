package facility

import (
	"fmt"
	"time"
)

// State is a complete, self-contained representation of the facility:
// identity directory, occupancy graph, duty roster, prescriptions and
// audit log. Restore(Snapshot()) yields an observationally identical
// care home. The store layer maps State to and from database rows.

type BedState struct {
	ID         string `json:"id"`
	ResidentID string `json:"resident_id,omitempty"`
}

type RoomState struct {
	ID   string     `json:"id"`
	Beds []BedState `json:"beds"`
}

type WardState struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Rooms []RoomState `json:"rooms"`
}

// ShiftState is one roster assignment; the slice keeps global
// assignment order so staff iteration order survives a round trip.
type ShiftState struct {
	StaffID string       `json:"staff_id"`
	Day     time.Weekday `json:"day"`
	Start   TimeOfDay    `json:"start"`
	End     TimeOfDay    `json:"end"`
}

type PrescriptionState struct {
	ResidentID string             `json:"resident_id"`
	Items      []PrescriptionItem `json:"items"`
}

type State struct {
	Wards          []WardState           `json:"wards"`
	Staff          []Staff               `json:"staff"`
	Residents      []Resident            `json:"residents"`
	Shifts         []ShiftState          `json:"shifts"`
	DoctorPresence map[time.Weekday]bool `json:"doctor_presence"`
	Prescriptions  []PrescriptionState   `json:"prescriptions"`
	Logs           []AuditEntry          `json:"logs"`
}

// Snapshot produces a deep copy of the current state.
func (c *CareHome) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{DoctorPresence: make(map[time.Weekday]bool)}

	for _, w := range c.wards {
		ws := WardState{ID: w.id, Name: w.name}
		for _, r := range w.rooms {
			rs := RoomState{ID: r.id}
			for _, b := range r.beds {
				bs := BedState{ID: b.id}
				if b.resident != nil {
					bs.ResidentID = b.resident.ID
				}
				rs.Beds = append(rs.Beds, bs)
			}
			ws.Rooms = append(ws.Rooms, rs)
		}
		st.Wards = append(st.Wards, ws)
	}

	for _, s := range c.staff {
		st.Staff = append(st.Staff, *s)
	}
	for _, r := range c.residents {
		st.Residents = append(st.Residents, *r)
	}

	for _, staffID := range c.roster.staffOrder {
		for _, s := range c.roster.shifts[staffID] {
			st.Shifts = append(st.Shifts, ShiftState{StaffID: staffID, Day: s.Day, Start: s.Start, End: s.End})
		}
	}
	for day, present := range c.roster.doctorPresent {
		if present {
			st.DoctorPresence[day] = true
		}
	}

	// Prescriptions keyed by resident registration order for
	// deterministic output.
	for _, r := range c.residents {
		if p, ok := c.prescriptions[r.ID]; ok {
			pv := p.view()
			st.Prescriptions = append(st.Prescriptions, PrescriptionState{ResidentID: pv.ResidentID, Items: pv.Items})
		}
	}

	st.Logs = make([]AuditEntry, len(c.logs))
	copy(st.Logs, c.logs)
	return st
}

// Restore replaces the care home's entire state with the snapshot. It
// validates referential integrity first: a bed naming a resident that
// is absent from the directory, or one resident occupying two beds, is
// reported as ErrIllegalState and leaves the current state untouched.
func (c *CareHome) Restore(st State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	residents := make(map[string]*Resident, len(st.Residents))
	for i := range st.Residents {
		r := st.Residents[i]
		residents[r.ID] = &r
	}

	seenInBed := make(map[string]string)
	for _, w := range st.Wards {
		for _, room := range w.Rooms {
			for _, b := range room.Beds {
				if b.ResidentID == "" {
					continue
				}
				if _, ok := residents[b.ResidentID]; !ok {
					return fmt.Errorf("bed %s references unknown resident %s: %w", b.ID, b.ResidentID, ErrIllegalState)
				}
				if other, dup := seenInBed[b.ResidentID]; dup {
					return fmt.Errorf("resident %s occupies beds %s and %s: %w", b.ResidentID, other, b.ID, ErrIllegalState)
				}
				seenInBed[b.ResidentID] = b.ID
			}
		}
	}

	wards := make([]*Ward, 0, len(st.Wards))
	for _, ws := range st.Wards {
		w := NewWard(ws.ID, ws.Name)
		for _, rs := range ws.Rooms {
			room := NewRoom(rs.ID)
			for _, bs := range rs.Beds {
				bed := NewBed(bs.ID)
				if bs.ResidentID != "" {
					bed.resident = residents[bs.ResidentID]
				}
				room.AddBed(bed)
			}
			w.AddRoom(room)
		}
		wards = append(wards, w)
	}

	staff := make([]*Staff, 0, len(st.Staff))
	for i := range st.Staff {
		s := st.Staff[i]
		staff = append(staff, &s)
	}
	residentList := make([]*Resident, 0, len(st.Residents))
	for i := range st.Residents {
		residentList = append(residentList, residents[st.Residents[i].ID])
	}

	roster := newRoster()
	for _, ss := range st.Shifts {
		roster.assignShift(ss.StaffID, Shift{Day: ss.Day, Start: ss.Start, End: ss.End})
	}
	for day, present := range st.DoctorPresence {
		roster.setDoctorPresent(day, present)
	}

	prescriptions := make(map[string]*Prescription, len(st.Prescriptions))
	for _, ps := range st.Prescriptions {
		prescriptions[ps.ResidentID] = newPrescription(ps.ResidentID, ps.Items)
	}

	logs := make([]AuditEntry, len(st.Logs))
	copy(logs, st.Logs)

	c.wards = wards
	c.staff = staff
	c.residents = residentList
	c.roster = roster
	c.prescriptions = prescriptions
	c.logs = logs
	return nil
}

// Empty reports whether the facility has no wards and no staff, i.e.
// it was never bootstrapped.
func (c *CareHome) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.wards) == 0 && len(c.staff) == 0
}
