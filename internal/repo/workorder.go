package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crucial707/fleet-pm/internal/models"
	"github.com/crucial707/fleet-pm/internal/trigger"
)

// WorkOrderRepo creates and lists generated work orders. It is the
// generation collaborator the runner calls when a cycle fires.
type WorkOrderRepo struct {
	DB *sql.DB
}

// NewWorkOrderRepo returns a new WorkOrderRepo.
func NewWorkOrderRepo(db *sql.DB) *WorkOrderRepo {
	return &WorkOrderRepo{DB: db}
}

// CreateFromSchedule inserts an open work order for the fired cycle and
// returns its id.
func (r *WorkOrderRepo) CreateFromSchedule(ctx context.Context, s *models.MaintenanceSchedule, f trigger.Firing) (int, error) {
	title := s.Name
	if f.Condition != trigger.ConditionTime {
		title = fmt.Sprintf("%s (%s %g)", s.Name, f.Condition, f.Threshold)
	}

	var id int
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO work_orders (schedule_id, asset_id, title, reason, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		s.ID, s.AssetID, title, string(f.Condition), f.DueDate, models.WorkOrderOpen,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// List returns work orders, newest first. limit/offset for pagination.
func (r *WorkOrderRepo) List(ctx context.Context, limit, offset int) ([]models.WorkOrder, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, schedule_id, asset_id, title, reason, due_date, status, created_at
		FROM work_orders
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.WorkOrder
	for rows.Next() {
		var w models.WorkOrder
		if err := rows.Scan(&w.ID, &w.ScheduleID, &w.AssetID, &w.Title, &w.Reason, &w.DueDate, &w.Status, &w.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

// GetByID returns one work order by id, or nil when absent.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id int) (*models.WorkOrder, error) {
	w := &models.WorkOrder{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, schedule_id, asset_id, title, reason, due_date, status, created_at
		FROM work_orders
		WHERE id = $1`,
		id,
	).Scan(&w.ID, &w.ScheduleID, &w.AssetID, &w.Title, &w.Reason, &w.DueDate, &w.Status, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}
