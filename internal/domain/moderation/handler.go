package moderation

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pulseapp/pulse-api/internal/middleware"
	"github.com/pulseapp/pulse-api/internal/pkg/response"
	"github.com/pulseapp/pulse-api/internal/pkg/validator"
)

// Handler handles moderation HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates moderation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateReport handles POST /moderation/reports
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	report, err := h.service.CreateReport(r.Context(), userID, req.PostID, req.ReportedUserID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrReportTargetMissing):
			response.BadRequest(w, "Report must name a post or a user")
		case errors.Is(err, ErrCannotReportSelf):
			response.BadRequest(w, "Cannot report yourself")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ReportFromEntity(report))
}

// ListReports handles GET /moderation/reports (admin)
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	status := ReportStatus(r.URL.Query().Get("status"))
	if status != "" && status != StatusPending && status != StatusResolved {
		response.BadRequest(w, "status must be 'pending' or 'resolved'")
		return
	}

	reports, err := h.service.ListReports(r.Context(), status)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*ReportResponse, 0, len(reports))
	for _, report := range reports {
		items = append(items, ReportFromEntity(report))
	}
	response.OK(w, items)
}

// ResolveReport handles POST /moderation/reports/{id}/resolve (admin)
func (h *Handler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())

	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req ResolveReportRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.ResolveReport(r.Context(), adminID, reportID, ResolutionAction(req.Action), req.Note); err != nil {
		switch {
		case errors.Is(err, ErrReportNotFound):
			response.NotFound(w, "Report not found")
		case errors.Is(err, ErrReportAlreadyResolved):
			response.BadRequest(w, "Report already resolved")
		case errors.Is(err, ErrInvalidAction):
			response.BadRequest(w, "Resolution action does not match the report target")
		default:
			response.InternalError(w)
		}
		return
	}

	response.OK(w, map[string]string{"message": "Report resolved"})
}

// WarnUser handles POST /moderation/warnings (admin)
func (h *Handler) WarnUser(w http.ResponseWriter, r *http.Request) {
	adminID := middleware.GetUserID(r.Context())

	var req WarnUserRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.WarnUser(r.Context(), adminID, req.UserID, req.Reason); err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"message": "User warned"})
}

// ListWarnings handles GET /moderation/warnings/{userID} (admin)
func (h *Handler) ListWarnings(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	warnings, err := h.service.ListWarnings(r.Context(), userID)
	if err != nil {
		response.InternalError(w)
		return
	}

	items := make([]*WarningResponse, 0, len(warnings))
	for _, warning := range warnings {
		items = append(items, WarningFromEntity(warning))
	}
	response.OK(w, items)
}
