package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines moderation data access interface
type Repository interface {
	CreateReport(ctx context.Context, report *Report) error
	GetReport(ctx context.Context, id uuid.UUID) (*Report, error)
	ListReports(ctx context.Context, status ReportStatus) ([]*Report, error)
	ResolveReport(ctx context.Context, id uuid.UUID, action ResolutionAction) error

	CreateWarning(ctx context.Context, warning *UserWarning) error
	ListWarnings(ctx context.Context, userID uuid.UUID) ([]*UserWarning, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new moderation repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReport(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (id, post_id, reported_user_id, reporter_id, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID, report.PostID, report.ReportedUserID, report.ReporterID,
		report.Reason, report.Status, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("moderation repository create report: %w", err)
	}
	return nil
}

func (r *repository) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT * FROM reports WHERE id = $1`
	var report Report
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("moderation repository get report: %w", err)
	}
	return &report, nil
}

func (r *repository) ListReports(ctx context.Context, status ReportStatus) ([]*Report, error) {
	var reports []*Report
	var err error
	if status == "" {
		err = r.db.SelectContext(ctx, &reports, `SELECT * FROM reports ORDER BY created_at DESC`)
	} else {
		err = r.db.SelectContext(ctx, &reports, `SELECT * FROM reports WHERE status = $1 ORDER BY created_at DESC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("moderation repository list reports: %w", err)
	}
	return reports, nil
}

func (r *repository) ResolveReport(ctx context.Context, id uuid.UUID, action ResolutionAction) error {
	query := `
		UPDATE reports
		SET status = 'resolved', resolution_action = $2, resolved_at = NOW()
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, string(action)); err != nil {
		return fmt.Errorf("moderation repository resolve report: %w", err)
	}
	return nil
}

func (r *repository) CreateWarning(ctx context.Context, warning *UserWarning) error {
	query := `
		INSERT INTO user_warnings (id, user_id, reason, warned_by, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		warning.ID, warning.UserID, warning.Reason, warning.WarnedBy, warning.CreatedAt)
	if err != nil {
		return fmt.Errorf("moderation repository create warning: %w", err)
	}
	return nil
}

func (r *repository) ListWarnings(ctx context.Context, userID uuid.UUID) ([]*UserWarning, error) {
	query := `SELECT * FROM user_warnings WHERE user_id = $1 ORDER BY created_at DESC`
	var warnings []*UserWarning
	if err := r.db.SelectContext(ctx, &warnings, query, userID); err != nil {
		return nil, fmt.Errorf("moderation repository list warnings: %w", err)
	}
	return warnings, nil
}
