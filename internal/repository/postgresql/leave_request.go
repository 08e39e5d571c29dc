package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffly/hr-backend-go/internal/domain/leave"
	"github.com/staffly/hr-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveColumns = `
	l.id, l.employee_id, l.leave_type, l.start_date, l.end_date, l.reason,
	l.status, l.approved_by, l.applied_at, l.created_at, l.updated_at,
	e.name AS employee_name
`

const leaveFrom = ` FROM leave_requests l LEFT JOIN employees e ON e.id = l.employee_id`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.Reason,
		&l.Status, &l.ApprovedBy, &l.AppliedAt, &l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeName,
	)
	return l, err
}

func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO leave_requests (
				employee_id, leave_type, start_date, end_date, reason, status, applied_at
			) VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING *
		)
		SELECT ` + leaveColumns + `
		FROM inserted l LEFT JOIN employees e ON e.id = l.employee_id
	`

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveType, request.StartDate, request.EndDate,
		request.Reason, request.Status,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + leaveFrom + ` WHERE l.id = $1`

	l, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return l, nil
}

func (r *leaveRequestRepository) GetByEmployeeID(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + leaveFrom + `
		WHERE l.employee_id = $1
		ORDER BY l.applied_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepository) List(ctx context.Context, search string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + leaveFrom
	args := []interface{}{}

	if search != "" {
		query += ` WHERE l.employee_id::text ILIKE $1 OR e.name ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY l.applied_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, l)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepository) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			leave_type = $2, start_date = $3, end_date = $4, reason = $5,
			status = $6, approved_by = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		request.ID, request.LeaveType, request.StartDate, request.EndDate,
		request.Reason, request.Status, request.ApprovedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

func (r *leaveRequestRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}

	return nil
}

func (r *leaveRequestRepository) FindApprovedOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID string) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	// Inclusive bounds on both spans
	query := `SELECT ` + leaveColumns + leaveFrom + `
		WHERE l.employee_id = $1
		  AND l.status = 'Approved'
		  AND l.start_date <= $3
		  AND l.end_date >= $2
		  AND ($4 = '' OR l.id::text <> $4)
		LIMIT 1`

	l, err := scanLeaveRequest(q.QueryRow(ctx, query, employeeID, startDate, endDate, excludeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find overlapping leave: %w", err)
	}

	return &l, nil
}

func (r *leaveRequestRepository) FindApprovedCovering(ctx context.Context, employeeID string, day time.Time) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + leaveFrom + `
		WHERE l.employee_id = $1
		  AND l.status = 'Approved'
		  AND l.start_date <= $2
		  AND l.end_date >= $2
		LIMIT 1`

	l, err := scanLeaveRequest(q.QueryRow(ctx, query, employeeID, day))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find covering leave: %w", err)
	}

	return &l, nil
}

func (r *leaveRequestRepository) CountApprovedDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	// Clamp each approved span to the month before counting days
	query := `
		SELECT COALESCE(SUM(
			(LEAST(end_date, $3::date) - GREATEST(start_date, $2::date)) + 1
		), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'Approved'
		  AND start_date <= $3
		  AND end_date >= $2
	`

	var days int
	err := q.QueryRow(ctx, query, employeeID, monthStart, monthEnd).Scan(&days)
	if err != nil {
		return 0, fmt.Errorf("failed to count approved leave days: %w", err)
	}

	return days, nil
}
