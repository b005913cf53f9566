package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mhollis/footprint/internal/domain"
)

// calculationRepo implements domain.CalculationRepository using SQLite.
type calculationRepo struct {
	db *sql.DB
}

const calculationColumns = `id, user_id, electric_bill, gas_bill, oil_bill, car_mileage,
	short_flights, long_flights, recycle_newspaper, recycle_aluminum, total_footprint, created_at`

func (r *calculationRepo) Create(ctx context.Context, calc *domain.Calculation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	id := calc.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := calc.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	in := calc.Input
	_, err = tx.ExecContext(ctx,
		`INSERT INTO calculations (id, user_id, electric_bill, gas_bill, oil_bill, car_mileage,
		 short_flights, long_flights, recycle_newspaper, recycle_aluminum, total_footprint, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, calc.UserID, in.ElectricBill, in.GasBill, in.OilBill, in.CarMileage,
		in.ShortFlights, in.LongFlights, in.RecycleNewspaper, in.RecycleAluminum,
		calc.TotalFootprint, now,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert calculation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	calc.ID = id
	calc.CreatedAt = now
	return nil
}

func (r *calculationRepo) GetByID(ctx context.Context, id string) (*domain.Calculation, error) {
	calc := &domain.Calculation{}
	err := scanCalculation(r.db.QueryRowContext(ctx,
		`SELECT `+calculationColumns+` FROM calculations WHERE id = ?`, id,
	), calc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query calculation by id: %w", err)
	}
	return calc, nil
}

func (r *calculationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Calculation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+calculationColumns+` FROM calculations
		 WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	defer rows.Close()

	var calcs []domain.Calculation
	for rows.Next() {
		var c domain.Calculation
		if err := scanCalculation(rows, &c); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		calcs = append(calcs, c)
	}
	return calcs, rows.Err()
}

func scanCalculation(row rowScanner, calc *domain.Calculation) error {
	return row.Scan(&calc.ID, &calc.UserID,
		&calc.Input.ElectricBill, &calc.Input.GasBill, &calc.Input.OilBill, &calc.Input.CarMileage,
		&calc.Input.ShortFlights, &calc.Input.LongFlights,
		&calc.Input.RecycleNewspaper, &calc.Input.RecycleAluminum,
		&calc.TotalFootprint, &calc.CreatedAt)
}
