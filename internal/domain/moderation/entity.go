package moderation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ReportStatus represents report lifecycle status
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusResolved ReportStatus = "resolved"
)

// ResolutionAction is what was done to resolve a report
type ResolutionAction string

const (
	ActionDismiss    ResolutionAction = "dismiss"
	ActionRemovePost ResolutionAction = "remove_post"
	ActionWarnUser   ResolutionAction = "warn_user"
)

// Report represents reported content (a post) or a reported user
type Report struct {
	ID               uuid.UUID      `db:"id"`
	PostID           uuid.NullUUID  `db:"post_id"`
	ReportedUserID   uuid.NullUUID  `db:"reported_user_id"`
	ReporterID       uuid.UUID      `db:"reporter_id"`
	Reason           string         `db:"reason"`
	Status           ReportStatus   `db:"status"`
	ResolutionAction sql.NullString `db:"resolution_action"`
	CreatedAt        time.Time      `db:"created_at"`
	ResolvedAt       sql.NullTime   `db:"resolved_at"`
}

// UserWarning represents an official warning issued to a user
type UserWarning struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Reason    string    `db:"reason"`
	WarnedBy  uuid.UUID `db:"warned_by"`
	CreatedAt time.Time `db:"created_at"`
}
