package models

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is one stored advisory run: the submitted profile together
// with the plan it produced.
type Analysis struct {
	ID        uuid.UUID   `json:"id"`
	UserID    int64       `json:"user_id"`
	Profile   UserProfile `json:"profile"`
	Plan      BudgetPlan  `json:"plan"`
	CreatedAt time.Time   `json:"created_at"`
}
