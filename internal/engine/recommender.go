package engine

import (
	"fmt"

	"github.com/finadvisor/advisor-service/internal/models"
)

// Expense ratio above which recommended targets are scaled down.
const distressRatio = 0.8

// distressMarker is appended to the strategy when the ratio is in distress.
const distressMarker = " | High expense alert"

// Ratio status labels exposed for display.
const (
	RatioHealthy  = "healthy"
	RatioModerate = "moderate, optimize"
	RatioHigh     = "high, immediate optimization needed"
)

// allocation is one row of the risk strategy table: savings and investment
// shares of income plus the strategy wording.
type allocation struct {
	savingsShare    float64
	investmentShare float64
	strategy        string
}

var riskAllocations = map[string]allocation{
	models.RiskLow:    {0.15, 0.10, "Conservative – Focus on safety and long-term holdings"},
	models.RiskMedium: {0.20, 0.15, "Balanced – Growth via diversified recurring investments"},
	models.RiskHigh:   {0.25, 0.20, "Aggressive – Maximum growth (higher-risk instruments)"},
}

var standardAllocation = allocation{0.20, 0.15, "Standard – Balanced approach (prefer secure instruments)"}

// savingsCategory is one fixed savings opportunity: share of income plus
// the tip shown with the amount.
type savingsCategory struct {
	name  string
	share float64
	tip   string
}

var savingsCategories = []savingsCategory{
	{"Groceries", 0.03, "smart shopping"},
	{"Entertainment", 0.02, "budget planning"},
	{"Eating Out", 0.04, "cooking at home"},
	{"Transport", 0.02, "carpooling"},
}

// Recommend derives a budget plan from the validated profile and the
// predicted monthly expenses. Pure function: same inputs, same plan.
func Recommend(profile models.UserProfile, predictedExpenses float64) models.BudgetPlan {
	income := profile.MonthlyIncome
	ratio := predictedExpenses / income

	alloc, ok := riskAllocations[profile.RiskAppetite]
	if !ok {
		alloc = standardAllocation
	}

	savings := income * alloc.savingsShare
	investment := income * alloc.investmentShare
	strategy := alloc.strategy

	// When predicted spending already consumes most of income, a fixed
	// target would be infeasible advice. Scale both targets down.
	if ratio > distressRatio {
		savings *= 0.8
		investment *= 0.8
		strategy += distressMarker
	}

	opportunities := make([]models.SavingsOpportunity, 0, len(savingsCategories))
	for _, c := range savingsCategories {
		amount := income * c.share
		opportunities = append(opportunities, models.SavingsOpportunity{
			Category: c.name,
			Amount:   amount,
			Note:     fmt.Sprintf("Save %.0f with %s", amount, c.tip),
		})
	}

	return models.BudgetPlan{
		PredictedExpenses:     predictedExpenses,
		ExpenseRatio:          ratio,
		RatioStatus:           ClassifyRatio(ratio),
		SavingsTarget:         savings,
		InvestmentRecommended: investment,
		Strategy:              strategy,
		SavingsOpportunities:  opportunities,
	}
}

// ClassifyRatio maps an expense ratio to its display status.
func ClassifyRatio(ratio float64) string {
	switch {
	case ratio < 0.5:
		return RatioHealthy
	case ratio < 0.7:
		return RatioModerate
	default:
		return RatioHigh
	}
}
