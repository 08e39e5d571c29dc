package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/staffly/hr-backend-go/internal/domain/attendance"
	"github.com/staffly/hr-backend-go/internal/pkg/database"
)

type companyTimingRepository struct {
	db *database.DB
}

func NewCompanyTimingRepository(db *database.DB) attendance.CompanyTimingRepository {
	return &companyTimingRepository{db: db}
}

// company_timings holds a single row keyed by id = 1.

func (r *companyTimingRepository) Get(ctx context.Context) (*attendance.CompanyTiming, error) {
	q := GetQuerier(ctx, r.db)

	var t attendance.CompanyTiming
	err := q.QueryRow(ctx, `
		SELECT start_time, end_time, late_after_minutes, updated_at
		FROM company_timings
		WHERE id = 1
	`).Scan(&t.StartTime, &t.EndTime, &t.LateAfterMinutes, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company timing: %w", err)
	}

	return &t, nil
}

func (r *companyTimingRepository) Upsert(ctx context.Context, timing attendance.CompanyTiming) (attendance.CompanyTiming, error) {
	q := GetQuerier(ctx, r.db)

	var t attendance.CompanyTiming
	err := q.QueryRow(ctx, `
		INSERT INTO company_timings (id, start_time, end_time, late_after_minutes)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			late_after_minutes = EXCLUDED.late_after_minutes,
			updated_at = NOW()
		RETURNING start_time, end_time, late_after_minutes, updated_at
	`, timing.StartTime, timing.EndTime, timing.LateAfterMinutes).Scan(
		&t.StartTime, &t.EndTime, &t.LateAfterMinutes, &t.UpdatedAt,
	)
	if err != nil {
		return attendance.CompanyTiming{}, fmt.Errorf("failed to upsert company timing: %w", err)
	}

	return t, nil
}
