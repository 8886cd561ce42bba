package rowstore

import "context"

// Sheet categories. The jobs sheet keeps its original workbook title and is
// passed through config instead.
const (
	CategoryUsers               = "Users"
	CategorySites               = "Sites"
	CategoryTeams               = "Teams"
	CategoryFormState           = "FormState"
	CategoryAutopsyReports      = "Autopsy_Reports"
	CategoryConstructionReports = "Construction_Reports"
	CategoryDiggingReports      = "Digging_Reports"
	CategoryOpticalReports      = "Optical_Reports"
)

// Row is one record of a category. Index is the physical row number inside
// the backing sheet (header row is 1, data starts at 2) and is only
// meaningful to the store that produced the row.
type Row struct {
	Category string
	Index    int
	Values   map[string]string
}

// Get returns the value of a column, or "" when the column is absent.
func (r Row) Get(col string) string {
	return r.Values[col]
}

// Store is the generic tabular persistence contract. Rows are matched by
// column equality; there are no typed queries.
type Store interface {
	// GetRows returns all rows of a category, or only the rows where every
	// column of match equals the given value.
	GetRows(ctx context.Context, category string, match map[string]string) ([]Row, error)

	// AddRow appends a record and returns it with its assigned index.
	AddRow(ctx context.Context, category string, fields map[string]string) (Row, error)

	// UpdateRow merges fields into the first row where lookupCol equals
	// lookupVal. Returns false when no row matched.
	UpdateRow(ctx context.Context, category, lookupCol, lookupVal string, fields map[string]string) (bool, error)

	// DeleteRow removes a row obtained from a prior GetRows call.
	DeleteRow(ctx context.Context, row Row) error
}

func matches(values map[string]string, match map[string]string) bool {
	for col, want := range match {
		if values[col] != want {
			return false
		}
	}
	return true
}
