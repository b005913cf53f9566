package domain

import (
	"context"
	"time"
)

// CalculationInput holds the answers of one questionnaire submission.
// All numeric fields are non-negative; flight counts are whole numbers.
type CalculationInput struct {
	ElectricBill     float64 `json:"electricBill"`
	GasBill          float64 `json:"gasBill"`
	OilBill          float64 `json:"oilBill"`
	CarMileage       float64 `json:"carMileage"`
	ShortFlights     int     `json:"shortFlights"`
	LongFlights      int     `json:"longFlights"`
	RecycleNewspaper bool    `json:"recycleNewspaper"`
	RecycleAluminum  bool    `json:"recycleAluminum"`
}

// Calculation is a persisted footprint estimate. TotalFootprint is
// computed once at creation time and stored immutably; it is never
// recomputed on read.
type Calculation struct {
	ID             string
	UserID         string
	Input          CalculationInput
	TotalFootprint float64
	CreatedAt      time.Time
}

// CalculationRepository defines persistence operations for calculations.
type CalculationRepository interface {
	// Create inserts the calculation in a single transaction. Returns
	// ErrNotFound if the owning user does not exist; in that case no row
	// is persisted.
	Create(ctx context.Context, calc *Calculation) error

	GetByID(ctx context.Context, id string) (*Calculation, error)

	// ListByUser returns the user's calculations ordered by CreatedAt
	// descending (most recent first). Empty slice if none.
	ListByUser(ctx context.Context, userID string) ([]Calculation, error)
}
