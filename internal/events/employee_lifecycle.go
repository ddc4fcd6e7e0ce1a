package events

import "time"

const EmployeeLifecycleTopic = "resto.employee.lifecycle.v1"

const (
	EmployeeCreated  = "employee_created"
	EmployeeArchived = "employee_archived"
	EmployeeTrashed  = "employee_trashed"
	EmployeeRestored = "employee_restored"
	EmployeePurged   = "employee_purged"
)

// EmployeeLifecycleEvent is published through the outbox for every roster
// transition. Consumers use it to drop stale per-restaurant caches.
type EmployeeLifecycleEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	RestaurantID string    `json:"restaurant_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
