package rowstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"FiberTrack/internal/config"
	"FiberTrack/internal/lib/sl"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// SheetsStore backs the row store with one Google Sheets workbook, one
// sheet per category. Authentication uses a service-account key file.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	log           *slog.Logger

	mu       sync.Mutex
	sheetIDs map[string]int64
}

func NewSheetsStore(ctx context.Context, conf *config.Config, log *slog.Logger) (*SheetsStore, error) {
	creds, err := os.ReadFile(conf.Sheets.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading sheets credentials: %w", err)
	}

	jwtConf, err := google.JWTConfigFromJSON(creds, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing sheets credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	store := &SheetsStore{
		svc:           svc,
		spreadsheetID: conf.Sheets.SpreadsheetID,
		log:           log.With(sl.Module("rowstore.sheets")),
		sheetIDs:      make(map[string]int64),
	}

	store.log.Info("sheets store initialized", slog.String("spreadsheet_id", conf.Sheets.SpreadsheetID))
	return store, nil
}

// fetch reads a whole category: its header row and every data row.
func (s *SheetsStore) fetch(ctx context.Context, category string) ([]string, []Row, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, quoteRange(category)).Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("reading sheet %s: %w", category, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil, fmt.Errorf("sheet %s has no header row", category)
	}

	headers := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		headers[i] = fmt.Sprint(cell)
	}

	rows := make([]Row, 0, len(resp.Values)-1)
	for i, raw := range resp.Values[1:] {
		values := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(raw) {
				values[header] = fmt.Sprint(raw[j])
			} else {
				values[header] = ""
			}
		}
		rows = append(rows, Row{
			Category: category,
			Index:    i + 2,
			Values:   values,
		})
	}

	return headers, rows, nil
}

func (s *SheetsStore) GetRows(ctx context.Context, category string, match map[string]string) ([]Row, error) {
	_, rows, err := s.fetch(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(match) == 0 {
		return rows, nil
	}

	filtered := rows[:0]
	for _, row := range rows {
		if matches(row.Values, match) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

func (s *SheetsStore) AddRow(ctx context.Context, category string, fields map[string]string) (Row, error) {
	headers, rows, err := s.fetch(ctx, category)
	if err != nil {
		return Row{}, err
	}

	cells := make([]interface{}, len(headers))
	values := make(map[string]string, len(headers))
	for i, header := range headers {
		cells[i] = fields[header]
		values[header] = fields[header]
	}

	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, quoteRange(category), &sheets.ValueRange{
		Values: [][]interface{}{cells},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return Row{}, fmt.Errorf("appending to sheet %s: %w", category, err)
	}

	return Row{
		Category: category,
		Index:    len(rows) + 2,
		Values:   values,
	}, nil
}

func (s *SheetsStore) UpdateRow(ctx context.Context, category, lookupCol, lookupVal string, fields map[string]string) (bool, error) {
	headers, rows, err := s.fetch(ctx, category)
	if err != nil {
		return false, err
	}

	for _, row := range rows {
		if row.Get(lookupCol) != lookupVal {
			continue
		}

		for col, val := range fields {
			row.Values[col] = val
		}

		cells := make([]interface{}, len(headers))
		for i, header := range headers {
			cells[i] = row.Values[header]
		}

		writeRange := fmt.Sprintf("'%s'!A%d", category, row.Index)
		_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, &sheets.ValueRange{
			Values: [][]interface{}{cells},
		}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return false, fmt.Errorf("updating sheet %s row %d: %w", category, row.Index, err)
		}
		return true, nil
	}

	return false, nil
}

func (s *SheetsStore) DeleteRow(ctx context.Context, row Row) error {
	sheetID, err := s.sheetID(ctx, row.Category)
	if err != nil {
		return err
	}

	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row.Index - 1),
					EndIndex:   int64(row.Index),
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("deleting row %d from sheet %s: %w", row.Index, row.Category, err)
	}
	return nil
}

// sheetID resolves and caches the numeric sheet id for a category title.
func (s *SheetsStore) sheetID(ctx context.Context, category string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.sheetIDs[category]; ok {
		return id, nil
	}

	doc, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("reading spreadsheet metadata: %w", err)
	}

	for _, sheet := range doc.Sheets {
		if sheet.Properties != nil {
			s.sheetIDs[sheet.Properties.Title] = sheet.Properties.SheetId
		}
	}

	id, ok := s.sheetIDs[category]
	if !ok {
		return 0, fmt.Errorf("sheet %s not found in spreadsheet", category)
	}
	return id, nil
}

func quoteRange(category string) string {
	return "'" + category + "'"
}
