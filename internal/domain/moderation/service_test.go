package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type fakeModerationRepo struct {
	reports  map[uuid.UUID]*Report
	warnings []*UserWarning
}

func newFakeModerationRepo() *fakeModerationRepo {
	return &fakeModerationRepo{reports: map[uuid.UUID]*Report{}}
}

func (f *fakeModerationRepo) CreateReport(ctx context.Context, report *Report) error {
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

func (f *fakeModerationRepo) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	r, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	copied := *r
	return &copied, nil
}

func (f *fakeModerationRepo) ListReports(ctx context.Context, status ReportStatus) ([]*Report, error) {
	var out []*Report
	for _, r := range f.reports {
		if status == "" || r.Status == status {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeModerationRepo) ResolveReport(ctx context.Context, id uuid.UUID, action ResolutionAction) error {
	r, ok := f.reports[id]
	if !ok {
		return ErrReportNotFound
	}
	r.Status = StatusResolved
	return nil
}

func (f *fakeModerationRepo) CreateWarning(ctx context.Context, warning *UserWarning) error {
	copied := *warning
	f.warnings = append(f.warnings, &copied)
	return nil
}

func (f *fakeModerationRepo) ListWarnings(ctx context.Context, userID uuid.UUID) ([]*UserWarning, error) {
	var out []*UserWarning
	for _, w := range f.warnings {
		if w.UserID == userID {
			copied := *w
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeRemover struct {
	removed []uuid.UUID
	err     error
}

func (f *fakeRemover) RemovePost(ctx context.Context, postID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.removed = append(f.removed, postID)
	return nil
}

func TestCreateReportRequiresTarget(t *testing.T) {
	svc := NewService(newFakeModerationRepo(), &fakeRemover{})

	_, err := svc.CreateReport(context.Background(), uuid.New(), nil, nil, "spam")
	if !errors.Is(err, ErrReportTargetMissing) {
		t.Fatalf("expected ErrReportTargetMissing, got %v", err)
	}
}

func TestCreateReportSelf(t *testing.T) {
	svc := NewService(newFakeModerationRepo(), &fakeRemover{})
	reporter := uuid.New()

	_, err := svc.CreateReport(context.Background(), reporter, nil, &reporter, "spam")
	if !errors.Is(err, ErrCannotReportSelf) {
		t.Fatalf("expected ErrCannotReportSelf, got %v", err)
	}
}

func TestResolveReportDismiss(t *testing.T) {
	ctx := context.Background()
	repo := newFakeModerationRepo()
	remover := &fakeRemover{}
	svc := NewService(repo, remover)

	postID := uuid.New()
	report, err := svc.CreateReport(ctx, uuid.New(), &postID, nil, "spam")
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	if err := svc.ResolveReport(ctx, uuid.New(), report.ID, ActionDismiss, ""); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(remover.removed) != 0 {
		t.Fatal("dismiss must not remove the post")
	}

	stored, _ := repo.GetReport(ctx, report.ID)
	if stored.Status != StatusResolved {
		t.Fatalf("expected resolved status, got %s", stored.Status)
	}
}

func TestResolveReportRemovePost(t *testing.T) {
	ctx := context.Background()
	repo := newFakeModerationRepo()
	remover := &fakeRemover{}
	svc := NewService(repo, remover)

	postID := uuid.New()
	report, err := svc.CreateReport(ctx, uuid.New(), &postID, nil, "abuse")
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	if err := svc.ResolveReport(ctx, uuid.New(), report.ID, ActionRemovePost, ""); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(remover.removed) != 1 || remover.removed[0] != postID {
		t.Fatalf("reported post was not removed: %v", remover.removed)
	}
}

func TestResolveReportRemovePostRequiresPostTarget(t *testing.T) {
	ctx := context.Background()
	repo := newFakeModerationRepo()
	svc := NewService(repo, &fakeRemover{})

	reported := uuid.New()
	report, err := svc.CreateReport(ctx, uuid.New(), nil, &reported, "abuse")
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	if err := svc.ResolveReport(ctx, uuid.New(), report.ID, ActionRemovePost, ""); !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestResolveReportWarnUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeModerationRepo()
	svc := NewService(repo, &fakeRemover{})
	admin, reported := uuid.New(), uuid.New()

	report, err := svc.CreateReport(ctx, uuid.New(), nil, &reported, "harassment")
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	if err := svc.ResolveReport(ctx, admin, report.ID, ActionWarnUser, "tone it down"); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	warnings, _ := svc.ListWarnings(ctx, reported)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d", len(warnings))
	}
	if warnings[0].Reason != "tone it down" {
		t.Fatalf("unexpected warning reason: %q", warnings[0].Reason)
	}
	if warnings[0].WarnedBy != admin {
		t.Fatal("warning not attributed to the resolving admin")
	}
}

func TestResolveReportTwice(t *testing.T) {
	ctx := context.Background()
	repo := newFakeModerationRepo()
	svc := NewService(repo, &fakeRemover{})

	postID := uuid.New()
	report, err := svc.CreateReport(ctx, uuid.New(), &postID, nil, "spam")
	if err != nil {
		t.Fatalf("create report failed: %v", err)
	}

	if err := svc.ResolveReport(ctx, uuid.New(), report.ID, ActionDismiss, ""); err != nil {
		t.Fatalf("first resolve failed: %v", err)
	}
	if err := svc.ResolveReport(ctx, uuid.New(), report.ID, ActionDismiss, ""); !errors.Is(err, ErrReportAlreadyResolved) {
		t.Fatalf("expected ErrReportAlreadyResolved, got %v", err)
	}
}

func TestResolveUnknownReport(t *testing.T) {
	svc := NewService(newFakeModerationRepo(), &fakeRemover{})

	if err := svc.ResolveReport(context.Background(), uuid.New(), uuid.New(), ActionDismiss, ""); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
