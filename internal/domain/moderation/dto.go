package moderation

import (
	"time"

	"github.com/google/uuid"
)

// CreateReportRequest for POST /moderation/reports
type CreateReportRequest struct {
	PostID         *uuid.UUID `json:"post_id"`
	ReportedUserID *uuid.UUID `json:"reported_user_id"`
	Reason         string     `json:"reason" validate:"required,min=3,max=2000"`
}

// ResolveReportRequest for POST /moderation/reports/{id}/resolve
type ResolveReportRequest struct {
	Action string `json:"action" validate:"required,oneof=dismiss remove_post warn_user"`
	Note   string `json:"note" validate:"max=2000"`
}

// WarnUserRequest for POST /moderation/warnings
type WarnUserRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Reason string    `json:"reason" validate:"required,min=3,max=2000"`
}

// ReportResponse represents a report in API responses
type ReportResponse struct {
	ID               uuid.UUID  `json:"id"`
	PostID           *uuid.UUID `json:"post_id,omitempty"`
	ReportedUserID   *uuid.UUID `json:"reported_user_id,omitempty"`
	ReporterID       uuid.UUID  `json:"reporter_id"`
	Reason           string     `json:"reason"`
	Status           string     `json:"status"`
	ResolutionAction string     `json:"resolution_action,omitempty"`
	CreatedAt        string     `json:"created_at"`
	ResolvedAt       string     `json:"resolved_at,omitempty"`
}

// ReportFromEntity converts entity to response
func ReportFromEntity(r *Report) *ReportResponse {
	resp := &ReportResponse{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		Reason:     r.Reason,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
	if r.PostID.Valid {
		id := r.PostID.UUID
		resp.PostID = &id
	}
	if r.ReportedUserID.Valid {
		id := r.ReportedUserID.UUID
		resp.ReportedUserID = &id
	}
	if r.ResolutionAction.Valid {
		resp.ResolutionAction = r.ResolutionAction.String
	}
	if r.ResolvedAt.Valid {
		resp.ResolvedAt = r.ResolvedAt.Time.Format(time.RFC3339)
	}
	return resp
}

// WarningResponse represents a warning in API responses
type WarningResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Reason    string    `json:"reason"`
	WarnedBy  uuid.UUID `json:"warned_by"`
	CreatedAt string    `json:"created_at"`
}

// WarningFromEntity converts entity to response
func WarningFromEntity(w *UserWarning) *WarningResponse {
	return &WarningResponse{
		ID:        w.ID,
		UserID:    w.UserID,
		Reason:    w.Reason,
		WarnedBy:  w.WarnedBy,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
	}
}
