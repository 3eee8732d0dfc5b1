package facility

import (
	"fmt"
	"sync"
	"time"
)

// CareHome is the facility operations core. It composes the identity
// directory, the occupancy graph, the duty roster and the audit log,
// and gates every mutating operation behind role authorization and,
// where required, a duty-presence check.
//
// A single mutex serializes all operations for their whole duration:
// multi-step mutations (notably MoveResident) commit fully or not at
// all, and two concurrent assigns to one bed can never both succeed.
// The caller owns the lifecycle; there is no process-wide instance.
type CareHome struct {
	mu    sync.Mutex
	clock Clock

	wards         []*Ward
	staff         []*Staff
	residents     []*Resident
	roster        *Roster
	prescriptions map[string]*Prescription
	logs          []AuditEntry
}

// New creates an empty care home reading time from the given clock.
func New(clock Clock) *CareHome {
	return &CareHome{
		clock:         clock,
		roster:        newRoster(),
		prescriptions: make(map[string]*Prescription),
	}
}

// ---------- Setup ----------

// AddWard appends a ward to the occupancy graph.
func (c *CareHome) AddWard(w *Ward) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wards = append(c.wards, w)
}

// AddStaff registers a staff member. Duplicate IDs are a caller error
// and are not rejected here.
func (c *CareHome) AddStaff(s Staff) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staff = append(c.staff, &s)
}

// AddResident registers a resident.
func (c *CareHome) AddResident(r Resident) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.residents = append(c.residents, &r)
}

// ---------- Identity directory ----------

func (c *CareHome) staffByID(id string) (*Staff, error) {
	for _, s := range c.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("staff %s: %w", id, ErrNotFound)
}

func (c *CareHome) residentByID(id string) (*Resident, error) {
	for _, r := range c.residents {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("resident %s: %w", id, ErrNotFound)
}

// ---------- Authorization gate ----------

// authorize fails closed: any role outside the allowed set is
// rejected, including values that are not a known Role at all.
func authorize(s *Staff, allowed ...Role) error {
	for _, role := range allowed {
		if s.Role == role {
			return nil
		}
	}
	return fmt.Errorf("staff %s (%s): %w", s.ID, s.Role, ErrUnauthorized)
}

// requireOnDuty checks the roster against the clock's current day and
// time.
func (c *CareHome) requireOnDuty(s *Staff) error {
	now := c.clock.Now()
	if !c.roster.isOnDuty(s.ID, now.Weekday(), timeOfDayFrom(now)) {
		return fmt.Errorf("staff %s: %w", s.ID, ErrNotOnDuty)
	}
	return nil
}

// appendLog records one audit entry. Callers hold the lock and invoke
// it only after the mutation has fully committed.
func (c *CareHome) appendLog(staffID, action string) {
	c.logs = append(c.logs, AuditEntry{StaffID: staffID, Action: action, At: c.clock.Now()})
}

// ---------- Resident & bed operations ----------

// AssignResidentToBed places a resident in a vacant bed. Managers and
// nurses only. Authorization and lookup failures leave the occupancy
// graph untouched.
func (c *CareHome) AssignResidentToBed(actorID, residentID, bedID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, err := c.staffByID(actorID)
	if err != nil {
		return err
	}
	resident, err := c.residentByID(residentID)
	if err != nil {
		return err
	}
	if err := authorize(actor, RoleManager, RoleNurse); err != nil {
		return err
	}
	bed, err := findBed(c.wards, bedID)
	if err != nil {
		return err
	}
	if err := bed.assign(resident); err != nil {
		return err
	}
	c.appendLog(actorID, fmt.Sprintf("Assigned resident %s to bed %s", residentID, bedID))
	return nil
}

// MoveResident transfers the occupant of one bed to another as a
// single atomic transaction: both preconditions are validated inside
// the same critical section that performs the vacate/assign pair, so a
// failure can never strand the resident between beds.
func (c *CareHome) MoveResident(actorID, fromBedID, toBedID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, err := c.staffByID(actorID)
	if err != nil {
		return err
	}
	if err := authorize(actor, RoleManager, RoleNurse); err != nil {
		return err
	}
	from, err := findBed(c.wards, fromBedID)
	if err != nil {
		return err
	}
	to, err := findBed(c.wards, toBedID)
	if err != nil {
		return err
	}
	if from.resident == nil {
		return fmt.Errorf("bed %s: %w", fromBedID, ErrNotOccupied)
	}
	if to.resident != nil {
		return fmt.Errorf("bed %s: %w", toBedID, ErrAlreadyOccupied)
	}

	resident, err := from.vacate()
	if err != nil {
		return err
	}
	if err := to.assign(resident); err != nil {
		// Unreachable: the destination was checked vacant under this
		// lock. Roll back and report the invariant breach.
		from.resident = resident
		return fmt.Errorf("move %s -> %s: %v: %w", fromBedID, toBedID, err, ErrIllegalState)
	}
	c.appendLog(actorID, fmt.Sprintf("Moved resident %s from %s to %s", resident.ID, fromBedID, toBedID))
	return nil
}

// ViewResidentDetails returns the occupant of a bed. All roles may
// view; the access itself is audited.
func (c *CareHome) ViewResidentDetails(actorID, bedID string) (Resident, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, err := c.staffByID(actorID)
	if err != nil {
		return Resident{}, err
	}
	if err := authorize(actor, RoleManager, RoleNurse, RoleDoctor); err != nil {
		return Resident{}, err
	}
	bed, err := findBed(c.wards, bedID)
	if err != nil {
		return Resident{}, err
	}
	if bed.resident == nil {
		return Resident{}, fmt.Errorf("bed %s: %w", bedID, ErrNotOccupied)
	}
	c.appendLog(actorID, fmt.Sprintf("Viewed resident details for bed %s", bedID))
	return *bed.resident, nil
}

// ---------- Prescription operations ----------

// AttachPrescription creates a prescription for the occupant of a bed.
// Doctors only, and only while on duty. Re-attaching replaces any
// existing prescription for the resident.
func (c *CareHome) AttachPrescription(actorID, bedID string, items []PrescriptionItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, err := c.staffByID(actorID)
	if err != nil {
		return err
	}
	if err := authorize(actor, RoleDoctor); err != nil {
		return err
	}
	if err := c.requireOnDuty(actor); err != nil {
		return err
	}
	bed, err := findBed(c.wards, bedID)
	if err != nil {
		return err
	}
	if bed.resident == nil {
		return fmt.Errorf("bed %s: %w", bedID, ErrNotOccupied)
	}

	residentID := bed.resident.ID
	c.prescriptions[residentID] = newPrescription(residentID, items)
	c.appendLog(actorID, fmt.Sprintf("Attached prescription for resident %s", residentID))
	return nil
}

// UpdatePrescription adds or replaces one medicine annotation on an
// existing prescription. Doctors only, on duty.
func (c *CareHome) UpdatePrescription(actorID, residentID string, item PrescriptionItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, err := c.staffByID(actorID)
	if err != nil {
		return err
	}
	if err := authorize(actor, RoleDoctor); err != nil {
		return err
	}
	if err := c.requireOnDuty(actor); err != nil {
		return err
	}
	p, ok := c.prescriptions[residentID]
	if !ok {
		return fmt.Errorf("prescription for resident %s: %w", residentID, ErrNotFound)
	}
	p.upsert(item)
	c.appendLog(actorID, fmt.Sprintf("Updated prescription for resident %s with %s", residentID, item.Medicine))
	return nil
}

// AdministerPrescription records that a dose of a prescribed medicine
// was given. Nurses and doctors, on duty. The administration itself
// only produces an audit entry; it does not mutate the prescription.
func (c *CareHome) AdministerPrescription(actorID, residentID, medicine, dose string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, err := c.staffByID(actorID)
	if err != nil {
		return err
	}
	if err := authorize(actor, RoleNurse, RoleDoctor); err != nil {
		return err
	}
	if err := c.requireOnDuty(actor); err != nil {
		return err
	}
	p, ok := c.prescriptions[residentID]
	if !ok {
		return fmt.Errorf("prescription for resident %s: %w", residentID, ErrNotFound)
	}
	if !p.contains(medicine) {
		return fmt.Errorf("medicine %s for resident %s: %w", medicine, residentID, ErrNotFound)
	}
	now := timeOfDayFrom(c.clock.Now())
	c.appendLog(actorID, fmt.Sprintf("Administered %s of %s to resident %s at %s", dose, medicine, residentID, now))
	return nil
}

// ---------- Roster operations ----------

// AssignShift appends a shift to a staff member's roster. Managers
// only. The insert is lenient; overlapping or excessive shifts only
// surface from CheckCompliance.
func (c *CareHome) AssignShift(actorID, staffID string, shift Shift) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, err := c.staffByID(actorID)
	if err != nil {
		return err
	}
	if err := authorize(actor, RoleManager); err != nil {
		return err
	}
	if _, err := c.staffByID(staffID); err != nil {
		return err
	}
	c.roster.assignShift(staffID, shift)
	c.appendLog(actorID, fmt.Sprintf("Assigned shift to staff %s: %s", staffID, shift))
	return nil
}

// SetDoctorPresent flags whether a doctor is present on the given day.
// Managers only.
func (c *CareHome) SetDoctorPresent(actorID string, day time.Weekday, present bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	actor, err := c.staffByID(actorID)
	if err != nil {
		return err
	}
	if err := authorize(actor, RoleManager); err != nil {
		return err
	}
	c.roster.setDoctorPresent(day, present)
	label := "NOT PRESENT"
	if present {
		label = "PRESENT"
	}
	c.appendLog(actorID, fmt.Sprintf("Set doctor availability for %s: %s", day, label))
	return nil
}

// IsOnDuty reports whether the staff member has a shift containing the
// given day and time, inclusive at both boundaries.
func (c *CareHome) IsOnDuty(staffID string, day time.Weekday, t TimeOfDay) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.isOnDuty(staffID, day, t)
}

// IsDoctorPresent reports the doctor-presence flag for the day.
func (c *CareHome) IsDoctorPresent(day time.Weekday) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.isDoctorPresent(day)
}

// CheckCompliance evaluates the roster rules. Read-only: no audit
// entry is produced, and the first violation found is returned
// unchanged.
func (c *CareHome) CheckCompliance() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.checkCompliance()
}

// ---------- Queries ----------

// Wards returns the occupancy graph as a read-only projection.
func (c *CareHome) Wards() []WardView {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]WardView, 0, len(c.wards))
	for _, w := range c.wards {
		out = append(out, w.view())
	}
	return out
}

// Residents lists all registered residents.
func (c *CareHome) Residents() []Resident {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Resident, 0, len(c.residents))
	for _, r := range c.residents {
		out = append(out, *r)
	}
	return out
}

// StaffMembers lists all registered staff.
func (c *CareHome) StaffMembers() []Staff {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Staff, 0, len(c.staff))
	for _, s := range c.staff {
		out = append(out, *s)
	}
	return out
}

// Schedule returns the roster as a read-only projection.
func (c *CareHome) Schedule() ScheduleView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roster.view()
}

// PrescriptionFor returns the resident's prescription.
func (c *CareHome) PrescriptionFor(residentID string) (PrescriptionView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.prescriptions[residentID]
	if !ok {
		return PrescriptionView{}, fmt.Errorf("prescription for resident %s: %w", residentID, ErrNotFound)
	}
	return p.view(), nil
}

// Logs returns a copy of the audit log in append order.
func (c *CareHome) Logs() []AuditEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]AuditEntry, len(c.logs))
	copy(out, c.logs)
	return out
}
