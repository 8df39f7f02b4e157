package notify

import (
	"context"
	"log/slog"

	"github.com/crucial707/fleet-pm/internal/models"
	"github.com/crucial707/fleet-pm/internal/trigger"
)

// LogNotifier announces fired cycles through the structured log. It stands
// in for a real delivery channel (email, chat webhook); the runner treats
// every notifier as best-effort, so swapping this out cannot affect
// engine correctness.
type LogNotifier struct{}

// CycleFired logs the fired cycle.
func (LogNotifier) CycleFired(_ context.Context, s *models.MaintenanceSchedule, f trigger.Firing, workOrderID int) error {
	slog.Info("maintenance cycle fired",
		"schedule_id", s.ID,
		"asset_id", s.AssetID,
		"schedule", s.Name,
		"condition", string(f.Condition),
		"cycle_key", f.CycleKey,
		"work_order_id", workOrderID)
	return nil
}
