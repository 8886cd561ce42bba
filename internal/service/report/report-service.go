package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"FiberTrack/bot/form"
	"FiberTrack/entity"
	"FiberTrack/internal/lib/sl"
	"FiberTrack/internal/lib/validate"
	"FiberTrack/internal/rowstore"
)

// Notifier pushes submission events to the dashboard. Optional.
type Notifier interface {
	BroadcastReportSubmitted(role string, report entity.Report)
	BroadcastSiteStatus(siteID, status string)
}

// ReportService is the submission handler: it persists a completed form
// to the report category matching the worker's role and applies the
// derived status transition to the site record.
//
// The two writes are not atomic across the two sheets. The report id is
// pinned into the conversation state before the first attempt, and the
// insert is skipped when a row with that id already exists, so retrying
// after a failed status update does not duplicate the report. A crash
// between the two writes still leaves a report with no status change
// until the user retries - known limitation.
type ReportService struct {
	store    rowstore.Store
	log      *slog.Logger
	notifier Notifier
}

func NewReportService(store rowstore.Store, log *slog.Logger) *ReportService {
	return &ReportService{
		store: store,
		log:   log.With(sl.Module("service.report")),
	}
}

func (s *ReportService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *ReportService) Submit(ctx context.Context, state *form.FormState) error {
	category, ok := categoryForRole(state.Role)
	if !ok {
		return fmt.Errorf("no report category for role %s", state.Role)
	}

	if err := checkSchema(state); err != nil {
		return err
	}

	rep := entity.Report{
		ReportID: state.ReportID,
		SiteID:   state.SiteID,
		UserID:   state.UserID,
		Date:     time.Now().UTC().Format(time.RFC3339),
		Fields:   state.Fields,
		PhotoRef: state.Get(form.FieldPhoto),
		Comments: state.Get(form.FieldComments),
	}
	if err := validate.Struct(&rep); err != nil {
		return fmt.Errorf("invalid report: %w", err)
	}

	existing, err := s.store.GetRows(ctx, category, map[string]string{"report_id": rep.ReportID})
	if err != nil {
		return fmt.Errorf("checking for existing report: %w", err)
	}

	if len(existing) == 0 {
		if _, err := s.store.AddRow(ctx, category, rowFromReport(rep)); err != nil {
			return fmt.Errorf("inserting report: %w", err)
		}
	} else {
		s.log.Warn("report already persisted, retrying status update",
			slog.String("report_id", rep.ReportID),
			slog.String("site_id", rep.SiteID),
		)
	}

	status := form.DeriveSiteStatus(state.Role, state.Fields)
	updated, err := s.store.UpdateRow(ctx, rowstore.CategorySites, "site_id", state.SiteID, map[string]string{
		"status": status,
	})
	if err != nil {
		return fmt.Errorf("updating site status: %w", err)
	}
	if !updated {
		return fmt.Errorf("site %s not found", state.SiteID)
	}

	s.log.Info("report submitted",
		slog.String("report_id", rep.ReportID),
		slog.String("site_id", rep.SiteID),
		slog.String("role", state.Role),
		slog.String("status", status),
	)

	if s.notifier != nil {
		s.notifier.BroadcastReportSubmitted(state.Role, rep)
		s.notifier.BroadcastSiteStatus(rep.SiteID, status)
	}
	return nil
}

// ListByRole returns all reports of one category.
func (s *ReportService) ListByRole(ctx context.Context, role string) ([]entity.Report, error) {
	category, ok := categoryForRole(role)
	if !ok {
		return nil, fmt.Errorf("no report category for role %s", role)
	}

	rows, err := s.store.GetRows(ctx, category, nil)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}

	reports := make([]entity.Report, 0, len(rows))
	for _, row := range rows {
		reports = append(reports, reportFromRow(row))
	}
	return reports, nil
}

// checkSchema verifies every question of the role's form was answered.
// Photo and comments are skippable and stay unchecked.
func checkSchema(state *form.FormState) error {
	def, ok := form.Forms()[state.Role]
	if !ok {
		return fmt.Errorf("no form for role %s", state.Role)
	}
	for _, step := range def.Steps {
		if step.Kind == form.KindPhoto || step.Kind == form.KindComments {
			continue
		}
		if state.Get(step.Field) == "" {
			return fmt.Errorf("incomplete form: missing %s", step.Field)
		}
	}
	return nil
}

func categoryForRole(role string) (string, bool) {
	switch role {
	case entity.RoleAutopsy:
		return rowstore.CategoryAutopsyReports, true
	case entity.RoleConstruction:
		return rowstore.CategoryConstructionReports, true
	case entity.RoleDigging:
		return rowstore.CategoryDiggingReports, true
	case entity.RoleOptical:
		return rowstore.CategoryOpticalReports, true
	}
	return "", false
}

func rowFromReport(rep entity.Report) map[string]string {
	fields := map[string]string{
		"report_id": rep.ReportID,
		"site_id":   rep.SiteID,
		"user_id":   rep.UserID,
		"date":      rep.Date,
	}
	for k, v := range rep.Fields {
		fields[k] = v
	}
	// Skipped photo and comments persist as empty cells.
	fields[form.FieldPhoto] = rep.PhotoRef
	fields[form.FieldComments] = rep.Comments
	return fields
}

func reportFromRow(row rowstore.Row) entity.Report {
	fields := make(map[string]string, len(row.Values))
	for k, v := range row.Values {
		switch k {
		case "report_id", "site_id", "user_id", "date", form.FieldPhoto, form.FieldComments:
			continue
		}
		fields[k] = v
	}
	return entity.Report{
		ReportID: row.Get("report_id"),
		SiteID:   row.Get("site_id"),
		UserID:   row.Get("user_id"),
		Date:     row.Get("date"),
		Fields:   fields,
		PhotoRef: row.Get(form.FieldPhoto),
		Comments: row.Get(form.FieldComments),
	}
}
