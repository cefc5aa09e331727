package models

// SavingsOpportunity pairs a suggested monthly savings amount with its
// display note. The amount stays numeric so charts never re-parse text.
type SavingsOpportunity struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note"`
}

// BudgetPlan is the recommendation produced for one analysis. It is
// assembled once by the recommender and never mutated afterwards.
type BudgetPlan struct {
	PredictedExpenses     float64              `json:"predicted_expenses"`
	ExpenseRatio          float64              `json:"expense_ratio"`
	RatioStatus           string               `json:"ratio_status"`
	SavingsTarget         float64              `json:"savings_target"`
	InvestmentRecommended float64              `json:"investment_recommended"`
	Strategy              string               `json:"strategy"`
	SavingsOpportunities  []SavingsOpportunity `json:"savings_opportunities"`
}
