package models

// EncodedFeatures is the numeric input row for the expense model.
type EncodedFeatures struct {
	Age            float64
	Income         float64
	OccupationCode float64
	CityTierCode   float64
	Dependents     float64
}

// Vector returns the features in training order. The order is part of the
// contract with the trained model and must match its feature list exactly.
func (f EncodedFeatures) Vector() []float64 {
	return []float64{f.Age, f.Income, f.OccupationCode, f.CityTierCode, f.Dependents}
}
