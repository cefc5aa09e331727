package models

import "fmt"

// Risk appetite values accepted from the form. Anything else falls through
// to the recommender's standard branch.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// UserProfile represents the financial profile submitted for analysis.
// It is built once per request and never mutated afterwards.
type UserProfile struct {
	Age           int     `json:"age"`
	MonthlyIncome float64 `json:"monthly_income"`
	Occupation    string  `json:"occupation"`
	CityTier      string  `json:"city_tier"`
	Dependents    int     `json:"dependents"`
	RiskAppetite  string  `json:"risk_appetite"`
}

// InvalidProfileError reports a profile field outside its allowed domain.
type InvalidProfileError struct {
	Field  string
	Reason string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile: %s %s", e.Field, e.Reason)
}

// Validate checks field domains and applies the risk appetite default.
// Income must be strictly positive so the expense ratio is always
// well-defined downstream.
func (p *UserProfile) Validate() error {
	if p.Age < 18 || p.Age > 65 {
		return &InvalidProfileError{Field: "age", Reason: "must be between 18 and 65"}
	}
	if p.MonthlyIncome <= 0 {
		return &InvalidProfileError{Field: "monthly_income", Reason: "must be positive"}
	}
	if p.Dependents < 0 || p.Dependents > 5 {
		return &InvalidProfileError{Field: "dependents", Reason: "must be between 0 and 5"}
	}
	if p.RiskAppetite == "" {
		p.RiskAppetite = RiskMedium
	}
	return nil
}
