package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/finadvisor/advisor-service/internal/config"
	"github.com/finadvisor/advisor-service/internal/engine"
	"github.com/finadvisor/advisor-service/internal/mlmodel"
	"github.com/finadvisor/advisor-service/internal/models"
	"github.com/finadvisor/advisor-service/internal/repository"
)

// ErrPredictionUnavailable means the expense model call failed or timed out
// for this request. The process and its loaded artifacts stay healthy.
var ErrPredictionUnavailable = errors.New("prediction unavailable")

// Store is the persistence surface the service needs.
type Store interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
	SaveAnalysis(analysis *models.Analysis) error
	ListAnalyses(userID int64, limit int) ([]models.Analysis, error)
	ListDailySummaries() ([]repository.DailySummary, error)
}

// Mailer sends budget summary emails.
type Mailer interface {
	SendBudgetSummary(to, username string, plan models.BudgetPlan) error
}

// Service handles business logic
type Service struct {
	store    Store
	registry *mlmodel.Registry
	encoder  *engine.Encoder
	mailer   Mailer
	log      *logrus.Logger
	config   *config.Config
}

// NewService initializes a new service
func NewService(store Store, registry *mlmodel.Registry, mailer Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:    store,
		registry: registry,
		encoder:  engine.NewEncoder(log),
		mailer:   mailer,
		log:      log,
		config:   cfg,
	}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// Analyze runs the full advisory pipeline for one profile: validate,
// encode, predict, recommend, persist. A failed prediction returns an
// error for this request only; a failed save still returns the plan.
func (s *Service) Analyze(ctx context.Context, userID int64, profile models.UserProfile) (*models.BudgetPlan, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	features, err := s.encoder.Encode(profile, s.registry.OccupationCodec, s.registry.CityTierCodec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	predicted, err := s.predictWithTimeout(ctx, features)
	if err != nil {
		return nil, err
	}

	plan := engine.Recommend(profile, predicted)

	analysis := &models.Analysis{
		ID:      uuid.New(),
		UserID:  userID,
		Profile: profile,
		Plan:    plan,
	}
	if err := s.store.SaveAnalysis(analysis); err != nil {
		// History is supplementary; the advice is still valid.
		s.log.Errorf("Failed to save analysis for user %d: %v", userID, err)
	}

	s.log.Infof("Analysis %s for user %d: predicted %.2f, ratio %.2f", analysis.ID, userID, predicted, plan.ExpenseRatio)
	return &plan, nil
}

// predictWithTimeout treats the model as a black-box call that must not
// hang the request past the configured deadline.
func (s *Service) predictWithTimeout(ctx context.Context, features models.EncodedFeatures) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.PredictTimeout)
	defer cancel()

	type result struct {
		value float64
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		value, err := s.registry.Model.Predict(ctx, features)
		ch <- result{value, err}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %v", ErrPredictionUnavailable, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return 0, fmt.Errorf("%w: %v", ErrPredictionUnavailable, res.err)
		}
		return res.value, nil
	}
}

// History returns a user's recent analyses
func (s *Service) History(userID int64, limit int) ([]models.Analysis, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListAnalyses(userID, limit)
}

// SendDailySummaries emails each user their latest plan from the past day.
// Run from the cron schedule.
func (s *Service) SendDailySummaries() {
	summaries, err := s.store.ListDailySummaries()
	if err != nil {
		s.log.Errorf("Failed to collect daily summaries: %v", err)
		return
	}

	for _, summary := range summaries {
		if err := s.mailer.SendBudgetSummary(summary.Email, summary.Username, summary.Analysis.Plan); err != nil {
			s.log.Errorf("Failed to send summary to %s: %v", summary.Email, err)
			continue
		}
	}
	s.log.Infof("Sent %d daily budget summaries", len(summaries))
}
