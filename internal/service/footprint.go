package service

import "github.com/mhollis/footprint/internal/domain"

// Per-unit emission weights, in pounds of CO₂-equivalent per year.
const (
	electricBillWeight = 105  // per dollar of monthly bill
	gasBillWeight      = 105  // per dollar of monthly bill
	oilBillWeight      = 113  // per dollar of monthly bill
	carMileageWeight   = 0.79 // per mile driven per year
	shortFlightWeight  = 1100 // per flight of 4 hours or less
	longFlightWeight   = 4400 // per flight over 4 hours

	// Flat penalties applied when a recycling habit is absent.
	newspaperPenalty = 184
	aluminumPenalty  = 166
)

// EstimateFootprint computes the annual footprint for the given input as
// a weighted sum. It is pure and total over non-negative input.
func EstimateFootprint(in domain.CalculationInput) float64 {
	total := in.ElectricBill*electricBillWeight +
		in.GasBill*gasBillWeight +
		in.OilBill*oilBillWeight +
		in.CarMileage*carMileageWeight +
		float64(in.ShortFlights)*shortFlightWeight +
		float64(in.LongFlights)*longFlightWeight

	if !in.RecycleNewspaper {
		total += newspaperPenalty
	}
	if !in.RecycleAluminum {
		total += aluminumPenalty
	}
	return total
}

// Category is the qualitative classification of a footprint total.
type Category string

const (
	CategoryVeryLow Category = "Very Low"
	CategoryIdeal   Category = "Ideal"
	CategoryAverage Category = "Average"
	CategoryHigh    Category = "High"
)

// Categorize maps a footprint total onto its category. Each threshold is
// a strict upper bound: a total of exactly 6000 is "Ideal", not "Very Low".
func Categorize(total float64) Category {
	switch {
	case total < 6000:
		return CategoryVeryLow
	case total < 16000:
		return CategoryIdeal
	case total < 22000:
		return CategoryAverage
	default:
		return CategoryHigh
	}
}

// BreakdownItem is one presentation bucket of the footprint total.
type BreakdownItem struct {
	Label string
	Value float64
}

// Breakdown recomputes each input category's contribution using the same
// weights as EstimateFootprint. The two recycling penalties are reported
// as a single combined bucket, and zero-valued buckets are omitted.
func Breakdown(in domain.CalculationInput) []BreakdownItem {
	recycling := 0.0
	if !in.RecycleNewspaper {
		recycling += newspaperPenalty
	}
	if !in.RecycleAluminum {
		recycling += aluminumPenalty
	}

	all := []BreakdownItem{
		{Label: "Electricity", Value: in.ElectricBill * electricBillWeight},
		{Label: "Gas", Value: in.GasBill * gasBillWeight},
		{Label: "Oil", Value: in.OilBill * oilBillWeight},
		{Label: "Car", Value: in.CarMileage * carMileageWeight},
		{Label: "Short Flights", Value: float64(in.ShortFlights) * shortFlightWeight},
		{Label: "Long Flights", Value: float64(in.LongFlights) * longFlightWeight},
		{Label: "Not Recycling", Value: recycling},
	}

	items := make([]BreakdownItem, 0, len(all))
	for _, item := range all {
		if item.Value > 0 {
			items = append(items, item)
		}
	}
	return items
}
