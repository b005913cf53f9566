package handler

import (
	"time"

	"github.com/mhollis/footprint/internal/domain"
	"github.com/mhollis/footprint/internal/service"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	CreatedAt       string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ProfileImageURL: u.ProfileImageURL,
		CreatedAt:       u.CreatedAt.Format(time.RFC3339),
	}
}

// CalculationDTO is the JSON representation of a calculation. Category
// is derived for presentation; it is not stored.
type CalculationDTO struct {
	ID               string  `json:"id"`
	UserID           string  `json:"userId"`
	ElectricBill     float64 `json:"electricBill"`
	GasBill          float64 `json:"gasBill"`
	OilBill          float64 `json:"oilBill"`
	CarMileage       float64 `json:"carMileage"`
	ShortFlights     int     `json:"shortFlights"`
	LongFlights      int     `json:"longFlights"`
	RecycleNewspaper bool    `json:"recycleNewspaper"`
	RecycleAluminum  bool    `json:"recycleAluminum"`
	TotalFootprint   float64 `json:"totalFootprint"`
	Category         string  `json:"category"`
	CreatedAt        string  `json:"createdAt"`
}

func toCalculationDTO(c *domain.Calculation) CalculationDTO {
	return CalculationDTO{
		ID:               c.ID,
		UserID:           c.UserID,
		ElectricBill:     c.Input.ElectricBill,
		GasBill:          c.Input.GasBill,
		OilBill:          c.Input.OilBill,
		CarMileage:       c.Input.CarMileage,
		ShortFlights:     c.Input.ShortFlights,
		LongFlights:      c.Input.LongFlights,
		RecycleNewspaper: c.Input.RecycleNewspaper,
		RecycleAluminum:  c.Input.RecycleAluminum,
		TotalFootprint:   c.TotalFootprint,
		Category:         string(service.Categorize(c.TotalFootprint)),
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
}

func toCalculationDTOs(calcs []domain.Calculation) []CalculationDTO {
	dtos := make([]CalculationDTO, len(calcs))
	for i := range calcs {
		dtos[i] = toCalculationDTO(&calcs[i])
	}
	return dtos
}

// calculationRequest is the create-calculation request body. Pointer
// fields distinguish "missing" from zero so required-field validation
// can name each absent field.
type calculationRequest struct {
	ElectricBill     *float64 `json:"electricBill"`
	GasBill          *float64 `json:"gasBill"`
	OilBill          *float64 `json:"oilBill"`
	CarMileage       *float64 `json:"carMileage"`
	ShortFlights     *int     `json:"shortFlights"`
	LongFlights      *int     `json:"longFlights"`
	RecycleNewspaper *bool    `json:"recycleNewspaper"`
	RecycleAluminum  *bool    `json:"recycleAluminum"`
}

// validate reports every missing required field.
func (req *calculationRequest) validate() domain.FieldErrors {
	errs := domain.FieldErrors{}
	check := func(name string, present bool) {
		if !present {
			errs[name] = "is required"
		}
	}
	check("electricBill", req.ElectricBill != nil)
	check("gasBill", req.GasBill != nil)
	check("oilBill", req.OilBill != nil)
	check("carMileage", req.CarMileage != nil)
	check("shortFlights", req.ShortFlights != nil)
	check("longFlights", req.LongFlights != nil)
	check("recycleNewspaper", req.RecycleNewspaper != nil)
	check("recycleAluminum", req.RecycleAluminum != nil)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (req *calculationRequest) toInput() domain.CalculationInput {
	return domain.CalculationInput{
		ElectricBill:     *req.ElectricBill,
		GasBill:          *req.GasBill,
		OilBill:          *req.OilBill,
		CarMileage:       *req.CarMileage,
		ShortFlights:     *req.ShortFlights,
		LongFlights:      *req.LongFlights,
		RecycleNewspaper: *req.RecycleNewspaper,
		RecycleAluminum:  *req.RecycleAluminum,
	}
}
