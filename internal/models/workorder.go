package models

import "time"

// Work order statuses.
const (
	WorkOrderOpen      = "open"
	WorkOrderCompleted = "completed"
	WorkOrderCancelled = "cancelled"
)

// WorkOrder is a generated maintenance task. The engine only creates these
// (one per fired cycle) and stores the returned ID in the cycle ledger;
// everything after creation belongs to the work-order workflow, not here.
type WorkOrder struct {
	ID         int       `json:"id"`
	ScheduleID int       `json:"schedule_id"`
	AssetID    int       `json:"asset_id"`
	Title      string    `json:"title"`
	Reason     string    `json:"reason"` // trigger condition that fired: time, mileage, hours
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
