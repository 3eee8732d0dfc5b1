package facility

import "time"

// AuditEntry records who did what, when. Entries are append-only and
// never mutated or removed.
type AuditEntry struct {
	StaffID string    `json:"staff_id"`
	Action  string    `json:"action"`
	At      time.Time `json:"at"`
}
