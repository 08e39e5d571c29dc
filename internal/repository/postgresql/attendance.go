package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
	"github.com/staffly/hr-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, employee, date, status, check_in_status, check_in, check_out,
	break_span, leave_info, locked, reason, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID, &a.Employee, &a.Date, &a.Status, &a.CheckInStatus, &a.CheckIn, &a.CheckOut,
		&a.Break, &a.LeaveInfo, &a.Locked, &a.Reason, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee, date, status, check_in_status, check_in, check_out,
			break_span, leave_info, locked, reason
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		att.Employee, att.Date, att.Status, att.CheckInStatus, att.CheckIn, att.CheckOut,
		att.Break, att.LeaveInfo, att.Locked, att.Reason,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances WHERE id = $1`

	a, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee->>'employee_id' = $1 AND date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, attendance.DayKey(date)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by date: %w", err)
	}

	return &a, nil
}

func (r *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances SET
			status = $2, check_in_status = $3, check_in = $4, check_out = $5,
			break_span = $6, leave_info = $7, locked = $8, reason = $9, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.Status, att.CheckInStatus, att.CheckIn, att.CheckOut,
		att.Break, att.LeaveInfo, att.Locked, att.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

func (r *attendanceRepository) List(ctx context.Context, search string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances`
	args := []interface{}{}

	if search != "" {
		query += ` WHERE employee->>'employee_id' ILIKE $1 OR employee->>'name' ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY date DESC, created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, rows.Err()
}

func (r *attendanceRepository) CountByStatusOnDate(ctx context.Context, date time.Time) (map[attendance.Status]int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*)
		FROM attendances
		WHERE date = $1
		GROUP BY status
	`

	rows, err := q.Query(ctx, query, attendance.DayKey(date))
	if err != nil {
		return nil, fmt.Errorf("failed to count attendances by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[attendance.Status]int)
	for rows.Next() {
		var status attendance.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *attendanceRepository) CountByStatusInMonth(ctx context.Context, year int, month time.Month, status attendance.Status) (int, error) {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM attendances
		WHERE date >= $1 AND date < $2 AND status = $3
	`, monthStart, monthEnd, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count monthly attendances: %w", err)
	}

	return count, nil
}

func (r *attendanceRepository) CountPresentDaysInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var count int
	err := q.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM attendances
		WHERE employee->>'employee_id' = $1
		  AND date >= $2 AND date < $3
		  AND status IN ('Present', 'Late')
	`, employeeID, monthStart, monthEnd).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count present days: %w", err)
	}

	return count, nil
}

func (r *attendanceRepository) LockByEmployeeAndMonth(ctx context.Context, employeeID string, year int, month time.Month) error {
	q := GetQuerier(ctx, r.db)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	_, err := q.Exec(ctx, `
		UPDATE attendances
		SET locked = true, updated_at = NOW()
		WHERE employee->>'employee_id' = $1
		  AND date >= $2 AND date < $3
	`, employeeID, monthStart, monthEnd)
	if err != nil {
		return fmt.Errorf("failed to lock attendances: %w", err)
	}

	return nil
}
