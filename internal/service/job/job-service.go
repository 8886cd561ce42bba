package job

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"FiberTrack/entity"
	"FiberTrack/internal/lib/sl"
	"FiberTrack/internal/rowstore"
)

// Column titles of the master jobs sheet. The workbook predates this
// system, so some headers carry embedded newlines.
const (
	colSrID             = "SR ID"
	colAssignmentDate   = "ΗΜΕΡΟΜΗΝΙΑ\nΑΝΑΘΕΣΗΣ"
	colAddress          = "ΔΙΕΥΘΥΝΣΗ"
	colArea             = "ΠΕΡΙΟΧΗ"
	colPostalCode       = "ΤΚ"
	colCustomer         = "ΠΕΛΑΤΗΣ"
	colCustomerPhone    = "ΤΗΛ. ΕΠΙΚΟΙΝΩΝΙΑΣ ΠΕΛΑΤΗ"
	colAppointmentDate  = "ΗΜΕΡΟΜΗΝΙΑ ΡΑΝΤΕΒΟΥ"
	colAppointmentTime  = "Ώρα ραντεβού"
	colStatus           = "STATUS\nΕΡΓΑΣΙΩΝ"
	colCab              = "CAB"
	colWaiting          = "ΑΝΑΜΟΝΗ"
	colPhase            = "ΠΕΡΙΓΡΑΦΗ ΕΡΓΑΣΙΩΝ - ΦΑΣΗ"
	colLineRecording    = "ΓΡΑΜΜΟΓΡΑΦΗΣΗ"
	colObservations     = "ΠΑΡΑΤΗΡΗΣΕΙΣ"
	colAutopsyDate      = "Ημερομηνία ολοκλήρωσης αυτοψίας"
	colDiggingDate      = "Ημερομηνία\nΧωματουργικών"
	colConstructionDate = "Ημερομηνία\nΚάθετου"
	colOpticalDate      = "Ημερομηνία Οπτικού"
)

var datePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// IsDateQuery reports whether a message looks like a DD/MM/YYYY date.
func IsDateQuery(text string) bool {
	return datePattern.MatchString(text)
}

// JobService reads and maintains the master jobs sheet.
type JobService struct {
	store rowstore.Store
	sheet string
	log   *slog.Logger
}

func NewJobService(store rowstore.Store, sheet string, log *slog.Logger) *JobService {
	return &JobService{
		store: store,
		sheet: sheet,
		log:   log.With(sl.Module("service.job")),
	}
}

// ParseDate parses user input in DD/MM/YYYY form.
func ParseDate(text string) (time.Time, error) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, fmt.Errorf("invalid date format, use DD/MM/YYYY")
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("invalid date %s", text)
	}
	return t, nil
}

// sheetDate renders a date the way the workbook stores it: M/D/YYYY.
func sheetDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// AppointmentsByDate returns the jobs with an appointment on the given
// day, restricted to those the worker's role may act on. The workflow is
// sequential: autopsy first, then digging, construction, optical, and
// activation; each role only sees jobs the previous phase has signed off.
func (s *JobService) AppointmentsByDate(ctx context.Context, dateStr, role string) ([]entity.Job, error) {
	target, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	wanted := sheetDate(target)

	rows, err := s.store.GetRows(ctx, s.sheet, nil)
	if err != nil {
		return nil, fmt.Errorf("reading jobs sheet: %w", err)
	}

	var jobs []entity.Job
	for _, row := range rows {
		if row.Get(colAppointmentDate) != wanted {
			continue
		}
		if !roleSeesJob(role, row) {
			continue
		}
		jobs = append(jobs, jobFromRow(row))
	}
	return jobs, nil
}

func roleSeesJob(role string, row rowstore.Row) bool {
	switch role {
	case entity.RoleAutopsy:
		// Autopsy is the first phase and sees everything.
		return true
	case entity.RoleDigging:
		return row.Get(colAutopsyDate) != ""
	case entity.RoleConstruction:
		return row.Get(colDiggingDate) != ""
	case entity.RoleOptical:
		return row.Get(colConstructionDate) != ""
	case entity.RoleActivation:
		return row.Get(colOpticalDate) != ""
	}
	return false
}

// Filters narrows List results; empty values match everything.
type Filters struct {
	Area   string
	Status string
	Date   string
}

// List returns jobs matching the filters.
func (s *JobService) List(ctx context.Context, f Filters) ([]entity.Job, error) {
	rows, err := s.store.GetRows(ctx, s.sheet, nil)
	if err != nil {
		return nil, fmt.Errorf("reading jobs sheet: %w", err)
	}

	jobs := make([]entity.Job, 0, len(rows))
	for _, row := range rows {
		j := jobFromRow(row)
		if f.Area != "" && j.Area != f.Area {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.Date != "" && j.AppointmentDate != f.Date {
			continue
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// Get returns one job by SR id, or nil when absent.
func (s *JobService) Get(ctx context.Context, srID string) (*entity.Job, error) {
	rows, err := s.store.GetRows(ctx, s.sheet, map[string]string{colSrID: srID})
	if err != nil {
		return nil, fmt.Errorf("reading jobs sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	j := jobFromRow(rows[0])
	return &j, nil
}

// Create appends a new job row.
func (s *JobService) Create(ctx context.Context, j entity.Job) error {
	if j.SrID == "" {
		return fmt.Errorf("sr_id is required")
	}
	existing, err := s.Get(ctx, j.SrID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("job %s already exists", j.SrID)
	}

	_, err = s.store.AddRow(ctx, s.sheet, rowFromJob(j))
	if err != nil {
		return fmt.Errorf("creating job: %w", err)
	}
	s.log.Info("job created", slog.String("sr_id", j.SrID))
	return nil
}

// Update merges the given job columns into an existing row.
func (s *JobService) Update(ctx context.Context, srID string, fields map[string]string) error {
	updated, err := s.store.UpdateRow(ctx, s.sheet, colSrID, srID, fields)
	if err != nil {
		return fmt.Errorf("updating job %s: %w", srID, err)
	}
	if !updated {
		return fmt.Errorf("job %s not found", srID)
	}
	return nil
}

// Delete removes a job row.
func (s *JobService) Delete(ctx context.Context, srID string) error {
	rows, err := s.store.GetRows(ctx, s.sheet, map[string]string{colSrID: srID})
	if err != nil {
		return fmt.Errorf("reading jobs sheet: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("job %s not found", srID)
	}
	for _, row := range rows {
		if err := s.store.DeleteRow(ctx, row); err != nil {
			return fmt.Errorf("deleting job %s: %w", srID, err)
		}
	}
	s.log.Info("job deleted", slog.String("sr_id", srID))
	return nil
}

func jobFromRow(row rowstore.Row) entity.Job {
	return entity.Job{
		SrID:             row.Get(colSrID),
		AssignmentDate:   row.Get(colAssignmentDate),
		Address:          row.Get(colAddress),
		Area:             row.Get(colArea),
		PostalCode:       row.Get(colPostalCode),
		Customer:         row.Get(colCustomer),
		CustomerPhone:    row.Get(colCustomerPhone),
		AppointmentDate:  row.Get(colAppointmentDate),
		AppointmentTime:  row.Get(colAppointmentTime),
		Status:           row.Get(colStatus),
		Cab:              row.Get(colCab),
		Waiting:          row.Get(colWaiting),
		Phase:            row.Get(colPhase),
		LineRecording:    row.Get(colLineRecording),
		Observations:     row.Get(colObservations),
		AutopsyDate:      row.Get(colAutopsyDate),
		DiggingDate:      row.Get(colDiggingDate),
		ConstructionDate: row.Get(colConstructionDate),
		OpticalDate:      row.Get(colOpticalDate),
	}
}

func rowFromJob(j entity.Job) map[string]string {
	return map[string]string{
		colSrID:             j.SrID,
		colAssignmentDate:   j.AssignmentDate,
		colAddress:          j.Address,
		colArea:             j.Area,
		colPostalCode:       j.PostalCode,
		colCustomer:         j.Customer,
		colCustomerPhone:    j.CustomerPhone,
		colAppointmentDate:  j.AppointmentDate,
		colAppointmentTime:  j.AppointmentTime,
		colStatus:           j.Status,
		colCab:              j.Cab,
		colWaiting:          j.Waiting,
		colPhase:            j.Phase,
		colLineRecording:    j.LineRecording,
		colObservations:     j.Observations,
		colAutopsyDate:      j.AutopsyDate,
		colDiggingDate:      j.DiggingDate,
		colConstructionDate: j.ConstructionDate,
		colOpticalDate:      j.OpticalDate,
	}
}
