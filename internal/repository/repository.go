package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/finadvisor/advisor-service/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO advisor.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM advisor.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveAnalysis stores one advisory run for a user
func (r *Repository) SaveAnalysis(analysis *models.Analysis) error {
	profile, err := json.Marshal(analysis.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	plan, err := json.Marshal(analysis.Plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	query := `
		INSERT INTO advisor.analyses (id, user_id, profile, plan, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING created_at`
	err = r.db.QueryRow(query, analysis.ID, analysis.UserID, profile, plan).
		Scan(&analysis.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// ListAnalyses retrieves a user's analysis history, newest first
func (r *Repository) ListAnalyses(userID int64, limit int) ([]models.Analysis, error) {
	query := `
		SELECT id, user_id, profile, plan, created_at
		FROM advisor.analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []models.Analysis
	for rows.Next() {
		var a models.Analysis
		var profile, plan []byte
		if err := rows.Scan(&a.ID, &a.UserID, &profile, &plan, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		if err := json.Unmarshal(profile, &a.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		if err := json.Unmarshal(plan, &a.Plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// DailySummary pairs a user with their most recent analysis of the last day
type DailySummary struct {
	Email    string
	Username string
	Analysis models.Analysis
}

// ListDailySummaries returns each user's latest analysis from the past 24 hours
func (r *Repository) ListDailySummaries() ([]DailySummary, error) {
	query := `
		SELECT DISTINCT ON (u.id) u.email, u.username, a.id, a.user_id, a.profile, a.plan, a.created_at
		FROM advisor.analyses a
		JOIN advisor.users u ON u.id = a.user_id
		WHERE a.created_at > CURRENT_TIMESTAMP - INTERVAL '24 hours'
		ORDER BY u.id, a.created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily summaries: %w", err)
	}
	defer rows.Close()

	var summaries []DailySummary
	for rows.Next() {
		var s DailySummary
		var profile, plan []byte
		if err := rows.Scan(&s.Email, &s.Username, &s.Analysis.ID, &s.Analysis.UserID, &profile, &plan, &s.Analysis.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		if err := json.Unmarshal(profile, &s.Analysis.Profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		if err := json.Unmarshal(plan, &s.Analysis.Plan); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
