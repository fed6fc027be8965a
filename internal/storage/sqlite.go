package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shuv1824/packlist/internal/outfit"
	"github.com/shuv1824/packlist/internal/types"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrNotFound is returned when no plan exists for the requested ID.
var ErrNotFound = errors.New("plan not found")

// timeLayout keeps a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStorage persists trip plans in a SQLite database.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the database at dbPath and migrates it.
func NewSQLiteStorage(ctx context.Context, dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{db: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SavePlan inserts or replaces a plan.
func (s *SQLiteStorage) SavePlan(ctx context.Context, plan types.Plan) error {
	if plan.ID == "" {
		return fmt.Errorf("plan id is required")
	}

	forecast, err := json.Marshal(plan.Forecast)
	if err != nil {
		return fmt.Errorf("failed to encode forecast: %w", err)
	}
	rec, err := json.Marshal(plan.Recommendation)
	if err != nil {
		return fmt.Errorf("failed to encode recommendation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO plans (id, name, destination, duration, forecast, recommendation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		plan.ID, plan.Name, plan.Destination, plan.Duration,
		string(forecast), string(rec), plan.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}

	return nil
}

// GetPlan loads a plan by ID.
func (s *SQLiteStorage) GetPlan(ctx context.Context, id string) (types.Plan, error) {
	var (
		plan           types.Plan
		forecast, rec  string
		createdAtValue string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, destination, duration, forecast, recommendation, created_at
		FROM plans WHERE id = ?`, id).
		Scan(&plan.ID, &plan.Name, &plan.Destination, &plan.Duration, &forecast, &rec, &createdAtValue)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Plan{}, ErrNotFound
	}
	if err != nil {
		return types.Plan{}, fmt.Errorf("failed to load plan: %w", err)
	}

	if err := json.Unmarshal([]byte(forecast), &plan.Forecast); err != nil {
		return types.Plan{}, fmt.Errorf("failed to decode forecast: %w", err)
	}
	if err := json.Unmarshal([]byte(rec), &plan.Recommendation); err != nil {
		return types.Plan{}, fmt.Errorf("failed to decode recommendation: %w", err)
	}
	if plan.Recommendation.Clothing == nil {
		plan.Recommendation.Clothing = outfit.NewItemSet()
	}
	if plan.Recommendation.Accessories == nil {
		plan.Recommendation.Accessories = outfit.NewItemSet()
	}
	plan.CreatedAt = parseTime(createdAtValue)

	return plan, nil
}

// ListPlans returns saved plans, newest first. limit <= 0 means 50.
func (s *SQLiteStorage) ListPlans(ctx context.Context, limit int) ([]types.PlanSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, destination, duration, created_at
		FROM plans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	out := make([]types.PlanSummary, 0)
	for rows.Next() {
		var (
			p  types.PlanSummary
			ts string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Destination, &p.Duration, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		p.CreatedAt = parseTime(ts)
		out = append(out, p)
	}

	return out, rows.Err()
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
