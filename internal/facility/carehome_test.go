package facility

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins the core's notion of "now" for deterministic duty
// checks.
type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time { return f.t }

// mondayMorning is a Monday at 10:00.
var mondayMorning = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

// newTestHome builds a small facility: one ward with two rooms and
// four beds, one staff member per role, two residents, and a Monday
// 08:00-16:00 shift for both the nurse and the doctor.
func newTestHome(t *testing.T, clock Clock) *CareHome {
	t.Helper()
	ch := New(clock)

	ward := NewWard("W1", "General Ward")
	room1 := NewRoom("R1")
	room1.AddBed(NewBed("B1"))
	room1.AddBed(NewBed("B2"))
	room2 := NewRoom("R2")
	room2.AddBed(NewBed("B3"))
	room2.AddBed(NewBed("B4"))
	ward.AddRoom(room1)
	ward.AddRoom(room2)
	ch.AddWard(ward)

	ch.AddStaff(Staff{ID: "M1", Name: "Rhea", Gender: GenderFemale, Username: "rhea", Password: "pass", Role: RoleManager})
	ch.AddStaff(Staff{ID: "N1", Name: "Cathy", Gender: GenderMale, Username: "cathy", Password: "pass", Role: RoleNurse})
	ch.AddStaff(Staff{ID: "D1", Name: "Jax", Gender: GenderMale, Username: "jax", Password: "pass", Role: RoleDoctor})

	ch.AddResident(Resident{ID: "R1", Name: "Peter Patel", Gender: GenderMale, MedicalCondition: "Hypertension"})
	ch.AddResident(Resident{ID: "R2", Name: "Naman Patel", Gender: GenderFemale, MedicalCondition: "Diabetes"})

	require.NoError(t, ch.AssignShift("M1", "N1", mustShift(t, time.Monday, "08:00", "16:00")))
	require.NoError(t, ch.AssignShift("M1", "D1", mustShift(t, time.Monday, "08:00", "16:00")))
	return ch
}

func bedView(t *testing.T, ch *CareHome, bedID string) BedView {
	t.Helper()
	for _, w := range ch.Wards() {
		for _, r := range w.Rooms {
			for _, b := range r.Beds {
				if b.ID == bedID {
					return b
				}
			}
		}
	}
	t.Fatalf("bed %s not in ward listing", bedID)
	return BedView{}
}

func TestAssignResidentToBed(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	logsBefore := len(ch.Logs())

	require.NoError(t, ch.AssignResidentToBed("N1", "R1", "B1"))

	bv := bedView(t, ch, "B1")
	require.NotNil(t, bv.Resident)
	assert.Equal(t, "R1", bv.Resident.ID)
	assert.False(t, bv.Vacant)

	logs := ch.Logs()
	require.Len(t, logs, logsBefore+1)
	last := logs[len(logs)-1]
	assert.Equal(t, "N1", last.StaffID)
	assert.Equal(t, "Assigned resident R1 to bed B1", last.Action)
	assert.Equal(t, mondayMorning, last.At)
}

func TestAssignToOccupiedBedFailsWithoutSideEffects(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	require.NoError(t, ch.AssignResidentToBed("M1", "R1", "B1"))
	logsBefore := len(ch.Logs())

	err := ch.AssignResidentToBed("M1", "R2", "B1")
	assert.ErrorIs(t, err, ErrAlreadyOccupied)

	bv := bedView(t, ch, "B1")
	require.NotNil(t, bv.Resident)
	assert.Equal(t, "R1", bv.Resident.ID, "existing occupant must be unchanged")
	assert.Len(t, ch.Logs(), logsBefore, "failed operations must not log")
}

func TestAssignAuthorization(t *testing.T) {
	testCases := []struct {
		name    string
		actorID string
		wantErr error
	}{
		{"manager allowed", "M1", nil},
		{"nurse allowed", "N1", nil},
		{"doctor denied", "D1", ErrUnauthorized},
		{"unknown staff", "ghost", ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ch := newTestHome(t, fixedClock{mondayMorning})
			err := ch.AssignResidentToBed(tc.actorID, "R1", "B1")
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.True(t, bedView(t, ch, "B1").Vacant, "denied operation must not touch the bed")
			}
		})
	}
}

func TestAuthorizationFailsClosedForUnknownRole(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	ch.AddStaff(Staff{ID: "X1", Name: "Intern", Gender: GenderFemale, Role: Role("INTERN")})

	err := ch.AssignResidentToBed("X1", "R1", "B1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAssignLookupFailures(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})

	logsBefore := len(ch.Logs())
	assert.ErrorIs(t, ch.AssignResidentToBed("M1", "nope", "B1"), ErrNotFound)
	assert.ErrorIs(t, ch.AssignResidentToBed("M1", "R1", "nope"), ErrNotFound)
	assert.Len(t, ch.Logs(), logsBefore, "lookup failures must not log")
}

func TestMoveResident(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	require.NoError(t, ch.AssignResidentToBed("N1", "R1", "B1"))
	logsBefore := len(ch.Logs())

	require.NoError(t, ch.MoveResident("N1", "B1", "B3"))

	assert.True(t, bedView(t, ch, "B1").Vacant)
	to := bedView(t, ch, "B3")
	require.NotNil(t, to.Resident)
	assert.Equal(t, "R1", to.Resident.ID)

	logs := ch.Logs()
	require.Len(t, logs, logsBefore+1, "exactly one audit entry per successful move")
	assert.Equal(t, "Moved resident R1 from B1 to B3", logs[len(logs)-1].Action)
}

func TestMoveResidentPreconditions(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	require.NoError(t, ch.AssignResidentToBed("N1", "R1", "B1"))
	require.NoError(t, ch.AssignResidentToBed("N1", "R2", "B2"))
	logsBefore := len(ch.Logs())

	testCases := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"source vacant", "B3", "B4", ErrNotOccupied},
		{"destination occupied", "B1", "B2", ErrAlreadyOccupied},
		{"source missing", "nope", "B3", ErrNotFound},
		{"destination missing", "B1", "nope", ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ch.MoveResident("N1", tc.from, tc.to)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// Failed moves leave both occupants and the log unchanged.
	assert.Equal(t, "R1", bedView(t, ch, "B1").Resident.ID)
	assert.Equal(t, "R2", bedView(t, ch, "B2").Resident.ID)
	assert.Len(t, ch.Logs(), logsBefore)
}

func TestViewResidentDetails(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	require.NoError(t, ch.AssignResidentToBed("N1", "R1", "B1"))

	for _, actor := range []string{"M1", "N1", "D1"} {
		r, err := ch.ViewResidentDetails(actor, "B1")
		require.NoError(t, err)
		assert.Equal(t, "Peter Patel", r.Name)
	}

	logs := ch.Logs()
	assert.Equal(t, "Viewed resident details for bed B1", logs[len(logs)-1].Action)

	_, err := ch.ViewResidentDetails("M1", "B2")
	assert.ErrorIs(t, err, ErrNotOccupied)
}

func TestPrescriptionLifecycle(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	require.NoError(t, ch.AssignResidentToBed("N1", "R1", "B1"))

	item := PrescriptionItem{Medicine: "Paracetamol", Dose: "500mg", At: NewTimeOfDay(9, 0)}
	require.NoError(t, ch.AttachPrescription("D1", "B1", []PrescriptionItem{item}))

	logs := ch.Logs()
	assert.Equal(t, "Attached prescription for resident R1", logs[len(logs)-1].Action)

	require.NoError(t, ch.UpdatePrescription("D1", "R1", PrescriptionItem{Medicine: "Ibuprofen", Dose: "200mg", At: NewTimeOfDay(21, 0)}))
	p, err := ch.PrescriptionFor("R1")
	require.NoError(t, err)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "Paracetamol", p.Items[0].Medicine)
	assert.Equal(t, "Ibuprofen", p.Items[1].Medicine)

	// Updating an existing medicine replaces its annotation in place.
	require.NoError(t, ch.UpdatePrescription("D1", "R1", PrescriptionItem{Medicine: "Paracetamol", Dose: "250mg", At: NewTimeOfDay(9, 0)}))
	p, err = ch.PrescriptionFor("R1")
	require.NoError(t, err)
	require.Len(t, p.Items, 2)
	assert.Equal(t, "250mg", p.Items[0].Dose)

	require.NoError(t, ch.AdministerPrescription("N1", "R1", "Paracetamol", "250mg"))
	logs = ch.Logs()
	assert.Equal(t, "Administered 250mg of Paracetamol to resident R1 at 10:00", logs[len(logs)-1].Action)
}

func TestPrescriptionAuthorizationAndDuty(t *testing.T) {
	// Tuesday: nobody has a shift, so on-duty checks fail.
	tuesday := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)

	ch := newTestHome(t, fixedClock{mondayMorning})
	require.NoError(t, ch.AssignResidentToBed("N1", "R1", "B1"))
	item := []PrescriptionItem{{Medicine: "Paracetamol", Dose: "500mg", At: NewTimeOfDay(9, 0)}}

	// Nurses may not attach prescriptions at all.
	assert.ErrorIs(t, ch.AttachPrescription("N1", "B1", item), ErrUnauthorized)

	// An off-duty doctor is authorized by role but still rejected.
	chOff := newTestHome(t, fixedClock{tuesday})
	require.NoError(t, chOff.AssignResidentToBed("N1", "R1", "B1"))
	assert.ErrorIs(t, chOff.AttachPrescription("D1", "B1", item), ErrNotOnDuty)

	// Attach on-duty, then administer off-duty is rejected too.
	require.NoError(t, ch.AttachPrescription("D1", "B1", item))
	require.NoError(t, chOff.Restore(ch.Snapshot()))
	assert.ErrorIs(t, chOff.AdministerPrescription("N1", "R1", "Paracetamol", "500mg"), ErrNotOnDuty)
}

func TestAttachReplacesExistingPrescription(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	require.NoError(t, ch.AssignResidentToBed("N1", "R1", "B1"))

	require.NoError(t, ch.AttachPrescription("D1", "B1", []PrescriptionItem{{Medicine: "Paracetamol", Dose: "500mg", At: NewTimeOfDay(9, 0)}}))
	require.NoError(t, ch.AttachPrescription("D1", "B1", []PrescriptionItem{{Medicine: "Aspirin", Dose: "100mg", At: NewTimeOfDay(8, 0)}}))

	p, err := ch.PrescriptionFor("R1")
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "Aspirin", p.Items[0].Medicine)
}

func TestAdministerRequiresListedMedicine(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	require.NoError(t, ch.AssignResidentToBed("N1", "R1", "B1"))
	require.NoError(t, ch.AttachPrescription("D1", "B1", []PrescriptionItem{{Medicine: "Paracetamol", Dose: "500mg", At: NewTimeOfDay(9, 0)}}))

	assert.ErrorIs(t, ch.AdministerPrescription("N1", "R1", "Morphine", "10mg"), ErrNotFound)
	assert.ErrorIs(t, ch.AdministerPrescription("N1", "R2", "Paracetamol", "500mg"), ErrNotFound)
}

func TestRosterOperationsAreManagerGated(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	shift := mustShift(t, time.Friday, "08:00", "16:00")

	assert.ErrorIs(t, ch.AssignShift("N1", "N1", shift), ErrUnauthorized)
	assert.ErrorIs(t, ch.AssignShift("M1", "ghost", shift), ErrNotFound)
	assert.ErrorIs(t, ch.SetDoctorPresent("D1", time.Friday, true), ErrUnauthorized)

	require.NoError(t, ch.AssignShift("M1", "N1", shift))
	require.NoError(t, ch.SetDoctorPresent("M1", time.Friday, true))
	assert.True(t, ch.IsDoctorPresent(time.Friday))
	assert.False(t, ch.IsDoctorPresent(time.Saturday))

	logs := ch.Logs()
	assert.Equal(t, "Set doctor availability for Friday: PRESENT", logs[len(logs)-1].Action)
	assert.Equal(t, "Assigned shift to staff N1: Friday 08:00-16:00", logs[len(logs)-2].Action)
}

func TestCheckComplianceDoesNotLog(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})
	logsBefore := len(ch.Logs())

	err := ch.CheckCompliance()
	var cerr *ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.Len(t, ch.Logs(), logsBefore, "compliance checks are read-only queries")
}

func TestAuditLogAppendOnly(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})

	prev := len(ch.Logs())
	steps := []struct {
		op      func() error
		success bool
	}{
		{func() error { return ch.AssignResidentToBed("N1", "R1", "B1") }, true},
		{func() error { return ch.AssignResidentToBed("N1", "R2", "B1") }, false},
		{func() error { return ch.MoveResident("N1", "B1", "B2") }, true},
		{func() error { return ch.MoveResident("N1", "B1", "B2") }, false},
		{func() error { return ch.AttachPrescription("D1", "B2", nil) }, true},
	}

	for _, step := range steps {
		err := step.op()
		n := len(ch.Logs())
		if step.success {
			assert.NoError(t, err)
			assert.Equal(t, prev+1, n, "each successful mutation appends exactly one entry")
		} else {
			assert.Error(t, err)
			assert.Equal(t, prev, n, "failed operations leave the log unchanged")
		}
		prev = n
	}
}

func TestConcurrentAssignsToOneBed(t *testing.T) {
	ch := newTestHome(t, fixedClock{mondayMorning})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, residentID := range []string{"R1", "R2"} {
		wg.Add(1)
		go func(i int, rid string) {
			defer wg.Done()
			errs[i] = ch.AssignResidentToBed("N1", rid, "B1")
		}(i, residentID)
	}
	wg.Wait()

	var failures int
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrAlreadyOccupied)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of two concurrent assigns must fail")
	assert.NotNil(t, bedView(t, ch, "B1").Resident)
}
