package domain

import (
	"time"

	"github.com/google/uuid"
)

// VehicleProfile describes the vehicle the fuel math runs against.
// TankLitres and LitresPer100Km drive the fuel-stop cadence; PricePerLitre
// feeds segment fuel cost estimates when the routing source supplies none.
type VehicleProfile struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	FuelType       string    `json:"fuel_type"` // free-form: gasoline, diesel, electric
	TankLitres     float64   `json:"tank_litres"`
	LitresPer100Km float64   `json:"litres_per_100km"`
	PricePerLitre  float64   `json:"price_per_litre"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RangeKm returns the full-tank range, or 0 when consumption is unset.
func (v VehicleProfile) RangeKm() float64 {
	if v.LitresPer100Km <= 0 {
		return 0
	}
	return v.TankLitres / v.LitresPer100Km * 100
}

// UsableRangeKm returns the range before the tank drops to the reserve
// fraction. reserve is clamped to [0,1].
func (v VehicleProfile) UsableRangeKm(reserve float64) float64 {
	if reserve < 0 {
		reserve = 0
	}
	if reserve > 1 {
		reserve = 1
	}
	return v.RangeKm() * (1 - reserve)
}
