package service

import (
	"context"
	"fmt"

	"github.com/mhollis/footprint/internal/domain"
)

// CalculationService creates and retrieves persisted footprint calculations.
type CalculationService struct {
	calcs domain.CalculationRepository
	users domain.UserRepository
}

// NewCalculationService creates a new CalculationService.
func NewCalculationService(calcs domain.CalculationRepository, users domain.UserRepository) *CalculationService {
	return &CalculationService{calcs: calcs, users: users}
}

// ValidateInput checks the full record. Numeric fields must be
// non-negative; booleans cannot fail. Returns FieldErrors naming every
// failing field.
func ValidateInput(in domain.CalculationInput) error {
	errs := domain.FieldErrors{}
	if in.ElectricBill < 0 {
		errs["electricBill"] = "must not be negative"
	}
	if in.GasBill < 0 {
		errs["gasBill"] = "must not be negative"
	}
	if in.OilBill < 0 {
		errs["oilBill"] = "must not be negative"
	}
	if in.CarMileage < 0 {
		errs["carMileage"] = "must not be negative"
	}
	if in.ShortFlights < 0 {
		errs["shortFlights"] = "must not be negative"
	}
	if in.LongFlights < 0 {
		errs["longFlights"] = "must not be negative"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Create validates the input, verifies the owning user exists, computes
// the footprint total once and persists the record atomically.
func (s *CalculationService) Create(ctx context.Context, userID string, in domain.CalculationInput) (*domain.Calculation, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	calc := &domain.Calculation{
		UserID:         userID,
		Input:          in,
		TotalFootprint: EstimateFootprint(in),
	}
	if err := s.calcs.Create(ctx, calc); err != nil {
		return nil, fmt.Errorf("create calculation: %w", err)
	}
	return calc, nil
}

// GetByID returns a calculation by ID.
func (s *CalculationService) GetByID(ctx context.Context, id string) (*domain.Calculation, error) {
	return s.calcs.GetByID(ctx, id)
}

// ListByUser returns the user's calculations, most recent first.
func (s *CalculationService) ListByUser(ctx context.Context, userID string) ([]domain.Calculation, error) {
	return s.calcs.ListByUser(ctx, userID)
}
