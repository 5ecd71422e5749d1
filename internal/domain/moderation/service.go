package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostRemover removes a post as a moderation action.
type PostRemover interface {
	RemovePost(ctx context.Context, postID uuid.UUID) error
}

// Service handles moderation business logic
type Service struct {
	repo    Repository
	remover PostRemover
}

// NewService creates moderation service
func NewService(repo Repository, remover PostRemover) *Service {
	return &Service{repo: repo, remover: remover}
}

// CreateReport files a report against a post or a user
func (s *Service) CreateReport(ctx context.Context, reporterID uuid.UUID, postID, reportedUserID *uuid.UUID, reason string) (*Report, error) {
	if postID == nil && reportedUserID == nil {
		return nil, ErrReportTargetMissing
	}
	if reportedUserID != nil && *reportedUserID == reporterID {
		return nil, ErrCannotReportSelf
	}

	report := &Report{
		ID:         uuid.New(),
		ReporterID: reporterID,
		Reason:     reason,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}
	if postID != nil {
		report.PostID = uuid.NullUUID{UUID: *postID, Valid: true}
	}
	if reportedUserID != nil {
		report.ReportedUserID = uuid.NullUUID{UUID: *reportedUserID, Valid: true}
	}

	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports lists reports, optionally filtered by status
func (s *Service) ListReports(ctx context.Context, status ReportStatus) ([]*Report, error) {
	return s.repo.ListReports(ctx, status)
}

// ResolveReport resolves a pending report with the given action.
// remove_post deletes the reported post; warn_user issues a warning to
// the reported user.
func (s *Service) ResolveReport(ctx context.Context, adminID, reportID uuid.UUID, action ResolutionAction, note string) error {
	report, err := s.repo.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if report == nil {
		return ErrReportNotFound
	}
	if report.Status == StatusResolved {
		return ErrReportAlreadyResolved
	}

	switch action {
	case ActionDismiss:
		// No side effect.
	case ActionRemovePost:
		if !report.PostID.Valid {
			return ErrInvalidAction
		}
		if err := s.remover.RemovePost(ctx, report.PostID.UUID); err != nil {
			return err
		}
	case ActionWarnUser:
		if !report.ReportedUserID.Valid {
			return ErrInvalidAction
		}
		reason := note
		if reason == "" {
			reason = report.Reason
		}
		if err := s.WarnUser(ctx, adminID, report.ReportedUserID.UUID, reason); err != nil {
			return err
		}
	default:
		return ErrInvalidAction
	}

	return s.repo.ResolveReport(ctx, reportID, action)
}

// WarnUser issues an official warning to a user
func (s *Service) WarnUser(ctx context.Context, adminID, userID uuid.UUID, reason string) error {
	warning := &UserWarning{
		ID:        uuid.New(),
		UserID:    userID,
		Reason:    reason,
		WarnedBy:  adminID,
		CreatedAt: time.Now(),
	}
	return s.repo.CreateWarning(ctx, warning)
}

// ListWarnings lists warnings issued to a user
func (s *Service) ListWarnings(ctx context.Context, userID uuid.UUID) ([]*UserWarning, error) {
	return s.repo.ListWarnings(ctx, userID)
}
