package service

import "github.com/rocketscienceinc/workshop-backend/internal/apperror"

const (
	litersPerGallon = 3.78541
	pintsPerLitre   = 1.75975
)

// Measurement is a milk volume in exactly one unit.
type Measurement struct {
	Gallons *float32 `json:"gallons,omitempty"`
	Liters  *float32 `json:"liters,omitempty"`
	Litres  *float32 `json:"litres,omitempty"`
	Pints   *float32 `json:"pints,omitempty"`
}

// ConvertMeasurement swaps a volume into its paired unit: gallons and liters
// convert into each other, as do litres and (imperial) pints.
func ConvertMeasurement(m Measurement) (Measurement, error) {
	set := 0
	for _, v := range []*float32{m.Gallons, m.Liters, m.Litres, m.Pints} {
		if v != nil {
			set++
		}
	}
	if set != 1 {
		return Measurement{}, apperror.ErrInvalidMeasurement
	}

	switch {
	case m.Gallons != nil:
		liters := *m.Gallons * litersPerGallon
		return Measurement{Liters: &liters}, nil
	case m.Liters != nil:
		gallons := *m.Liters / litersPerGallon
		return Measurement{Gallons: &gallons}, nil
	case m.Litres != nil:
		pints := *m.Litres * pintsPerLitre
		return Measurement{Pints: &pints}, nil
	default:
		litres := *m.Pints / pintsPerLitre
		return Measurement{Litres: &litres}, nil
	}
}
