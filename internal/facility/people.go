package facility

import "fmt"

// Role classifies a staff member for authorization decisions.
type Role string

const (
	RoleManager Role = "MANAGER"
	RoleNurse   Role = "NURSE"
	RoleDoctor  Role = "DOCTOR"
)

// ParseRole maps a stored role string back to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleManager, RoleNurse, RoleDoctor:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Gender of a staff member or resident.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Staff is a member of the care-home workforce. Identity and role are
// fixed at creation; only the credentials may change. The core never
// verifies credentials, it only stores them.
type Staff struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Gender   Gender `json:"gender"`
	Username string `json:"-"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// Resident is a person living in the facility. Immutable once created;
// bed association is owned by the bed, not the resident.
type Resident struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Gender           Gender `json:"gender"`
	MedicalCondition string `json:"medical_condition,omitempty"`
}
