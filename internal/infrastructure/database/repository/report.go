package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/internal/infrastructure/database"
)

// ErrReportNotFound is returned when no archived report matches
var ErrReportNotFound = errors.New("report not found")

// ReportRepository archives finalized intelligence reports in PostgreSQL.
// The intelligence record is stored as JSONB so the schema survives
// pattern-library evolution.
type ReportRepository struct {
	db *database.PostgresDB
}

// NewReportRepository creates a report repository
func NewReportRepository(db *database.PostgresDB) *ReportRepository {
	return &ReportRepository{db: db}
}

// EnsureSchema creates the reports table if it does not exist
func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS intelligence_reports (
			id                 UUID PRIMARY KEY,
			session_id         TEXT NOT NULL,
			scam_detected      BOOLEAN NOT NULL,
			messages_exchanged INTEGER NOT NULL,
			intelligence       JSONB NOT NULL,
			agent_notes        TEXT NOT NULL DEFAULT '',
			risk_score         INTEGER NOT NULL,
			risk_level         TEXT NOT NULL,
			created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_intelligence_reports_session
			ON intelligence_reports (session_id, created_at DESC);`

	if err := r.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to ensure reports schema: %w", err)
	}
	return nil
}

// Create archives a report. The report id is assigned here.
func (r *ReportRepository) Create(ctx context.Context, report *models.IntelligenceReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	intelligence, err := json.Marshal(report.Intelligence)
	if err != nil {
		return fmt.Errorf("failed to marshal intelligence: %w", err)
	}

	const query = `
		INSERT INTO intelligence_reports
			(id, session_id, scam_detected, messages_exchanged, intelligence,
			 agent_notes, risk_score, risk_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if err := r.db.Exec(ctx, query,
		report.ID, report.SessionID, report.ScamDetected, report.MessagesExchanged,
		intelligence, report.AgentNotes, report.RiskScore, string(report.RiskLevel),
		report.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// GetLatestBySession returns the most recent archived report for a session
func (r *ReportRepository) GetLatestBySession(ctx context.Context, sessionID string) (*models.IntelligenceReport, error) {
	const query = `
		SELECT id, session_id, scam_detected, messages_exchanged, intelligence,
		       agent_notes, risk_score, risk_level, created_at
		FROM intelligence_reports
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	report, err := scanReport(r.db.QueryRow(ctx, query, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load report for session %s: %w", sessionID, err)
	}
	return report, nil
}

// ListRecent returns the newest archived reports, most recent first
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]*models.IntelligenceReport, error) {
	const query = `
		SELECT id, session_id, scam_detected, messages_exchanged, intelligence,
		       agent_notes, risk_score, risk_level, created_at
		FROM intelligence_reports
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []*models.IntelligenceReport{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func scanReport(row pgx.Row) (*models.IntelligenceReport, error) {
	var (
		report       models.IntelligenceReport
		intelligence []byte
		riskLevel    string
	)
	if err := row.Scan(
		&report.ID, &report.SessionID, &report.ScamDetected, &report.MessagesExchanged,
		&intelligence, &report.AgentNotes, &report.RiskScore, &riskLevel,
		&report.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(intelligence, &report.Intelligence); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intelligence: %w", err)
	}
	report.RiskLevel = models.RiskLevel(riskLevel)
	return &report, nil
}
