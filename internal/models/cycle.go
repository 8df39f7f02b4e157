package models

import "time"

// CycleRecord is one row of the idempotency ledger: proof that a given
// (schedule, cycle) pair has already generated a work order. At most one
// record exists per (ScheduleID, CycleKey); the database enforces this.
type CycleRecord struct {
	ID          int       `json:"id"`
	ScheduleID  int       `json:"schedule_id"`
	CycleKey    string    `json:"cycle_key"`
	WorkOrderID int       `json:"work_order_id"`
	CreatedAt   time.Time `json:"created_at"`
}
