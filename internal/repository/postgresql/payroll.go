package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffly/hr-backend-go/internal/domain/payroll"
	"github.com/staffly/hr-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.employee_id, p.month, p.year, p.basic_salary, p.allowances, p.deductions,
	p.present_days, p.approved_leave_days, p.total_working_days,
	p.gross_salary, p.net_pay, p.status, p.approved_by, p.is_locked,
	p.salary_slip_url, p.processed_at, p.created_at, p.updated_at,
	e.name AS employee_name, e.employee_code
`

const payrollFrom = ` FROM payrolls p LEFT JOIN employees e ON e.id = p.employee_id`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Month, &p.Year, &p.BasicSalary, &p.Allowances, &p.Deductions,
		&p.PresentDays, &p.ApprovedLeaveDays, &p.TotalWorkingDays,
		&p.GrossSalary, &p.NetPay, &p.Status, &p.ApprovedBy, &p.IsLocked,
		&p.SalarySlipURL, &p.ProcessedAt, &p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName, &p.EmployeeCode,
	)
	return p, err
}

func (r *payrollRepository) Create(ctx context.Context, pr payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO payrolls (
				employee_id, month, year, basic_salary, allowances, deductions,
				present_days, approved_leave_days, total_working_days,
				gross_salary, net_pay, status, is_locked, processed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
			RETURNING *
		)
		SELECT ` + payrollColumns + `
		FROM inserted p LEFT JOIN employees e ON e.id = p.employee_id
	`

	created, err := scanPayroll(q.QueryRow(ctx, query,
		pr.EmployeeID, pr.Month, pr.Year, pr.BasicSalary, pr.Allowances, pr.Deductions,
		pr.PresentDays, pr.ApprovedLeaveDays, pr.TotalWorkingDays,
		pr.GrossSalary, pr.NetPay, pr.Status, pr.IsLocked,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if isUniqueViolation(err, &pgErr) {
			return payroll.Payroll{}, payroll.ErrPayrollExists
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + ` WHERE p.id = $1`

	p, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetByEmployeeAndPeriod(ctx context.Context, employeeID, month string, year int) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + `
		WHERE p.employee_id = $1 AND p.month = $2 AND p.year = $3`

	p, err := scanPayroll(q.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll by period: %w", err)
	}

	return &p, nil
}

func (r *payrollRepository) GetByEmployeeID(ctx context.Context, employeeID string) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom + `
		WHERE p.employee_id = $1
		ORDER BY p.year DESC, p.processed_at DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	return collectPayrolls(rows)
}

func (r *payrollRepository) List(ctx context.Context, search string) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + payrollFrom
	args := []interface{}{}

	if search != "" {
		query += ` WHERE e.name ILIKE $1 OR e.employee_code ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY p.year DESC, p.processed_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	return collectPayrolls(rows)
}

func collectPayrolls(rows pgx.Rows) ([]payroll.Payroll, error) {
	var payrolls []payroll.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll: %w", err)
		}
		payrolls = append(payrolls, p)
	}
	return payrolls, rows.Err()
}

func (r *payrollRepository) Update(ctx context.Context, pr payroll.Payroll) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls SET
			basic_salary = $2, allowances = $3, deductions = $4,
			present_days = $5, approved_leave_days = $6, total_working_days = $7,
			gross_salary = $8, net_pay = $9, status = $10, approved_by = $11,
			is_locked = $12, salary_slip_url = $13, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		pr.ID, pr.BasicSalary, pr.Allowances, pr.Deductions,
		pr.PresentDays, pr.ApprovedLeaveDays, pr.TotalWorkingDays,
		pr.GrossSalary, pr.NetPay, pr.Status, pr.ApprovedBy,
		pr.IsLocked, pr.SalarySlipURL,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM payrolls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payroll: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}
