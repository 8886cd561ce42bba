package entity

import (
	"fmt"
	"time"
)

// NewReportID mints a report identifier for the category matching a worker
// role, e.g. R-C-1736951040123 for construction. Millisecond timestamps
// keep collisions negligible at field-crew write rates.
func NewReportID(role string) string {
	prefix := "X"
	switch role {
	case RoleAutopsy:
		prefix = "A"
	case RoleConstruction:
		prefix = "C"
	case RoleDigging:
		prefix = "D"
	case RoleOptical:
		prefix = "O"
	}
	return fmt.Sprintf("R-%s-%d", prefix, time.Now().UnixMilli())
}

// Report is one completed form submission, written exactly once to the
// report category matching the worker's role. Fields holds the role-specific
// answers keyed by field name; PhotoRef and Comments stay empty when skipped.
type Report struct {
	ReportID string            `json:"report_id" validate:"required"`
	SiteID   string            `json:"site_id" validate:"required"`
	UserID   string            `json:"user_id" validate:"required"`
	Date     string            `json:"date" validate:"required"`
	Fields   map[string]string `json:"fields"`
	PhotoRef string            `json:"photo_ref"`
	Comments string            `json:"comments"`
}
