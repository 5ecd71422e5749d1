package moderation

import "errors"

var (
	ErrCannotReportSelf      = errors.New("cannot report yourself")
	ErrReportNotFound        = errors.New("report not found")
	ErrReportAlreadyResolved = errors.New("report already resolved")
	ErrInvalidAction         = errors.New("invalid resolution action")
	ErrReportTargetMissing   = errors.New("report must name a post or a user")
)
