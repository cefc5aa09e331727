package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/finadvisor/advisor-service/internal/config"
	"github.com/finadvisor/advisor-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBudgetSummary sends a user their latest budget plan
func (s *Sender) SendBudgetSummary(to, username string, plan models.BudgetPlan) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Your Budget Plan Summary"

	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	body += fmt.Sprintf(
		"Predicted monthly expenses: %.2f (%.1f%% of income, %s)\n"+
			"Recommended savings: %.2f\n"+
			"Recommended investment: %.2f\n"+
			"Strategy: %s\n",
		plan.PredictedExpenses, plan.ExpenseRatio*100, plan.RatioStatus,
		plan.SavingsTarget, plan.InvestmentRecommended, plan.Strategy,
	)
	body += "\nSavings opportunities:\n"
	for _, opp := range plan.SavingsOpportunities {
		body += fmt.Sprintf("  %s: %.2f (%s)\n", opp.Category, opp.Amount, opp.Note)
	}
	body += "\nBest regards,\nFinancial Advisor Service"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
