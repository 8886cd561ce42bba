package form

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FiberTrack/internal/rowstore"
)

// RowStoreStorage keeps conversation state in the FormState sheet, one
// row per chat, with the field bag serialized into the form_data column.
type RowStoreStorage struct {
	store rowstore.Store
}

func NewRowStoreStorage(store rowstore.Store) *RowStoreStorage {
	return &RowStoreStorage{store: store}
}

func (s *RowStoreStorage) Save(ctx context.Context, state *FormState) error {
	data, err := json.Marshal(state.Fields)
	if err != nil {
		return fmt.Errorf("encoding form data: %w", err)
	}

	fields := map[string]string{
		"chat_id":      state.ConversationID,
		"site_id":      state.SiteID,
		"user_id":      state.UserID,
		"role":         state.Role,
		"step":         string(state.Step),
		"report_id":    state.ReportID,
		"form_data":    string(data),
		"last_updated": time.Now().UTC().Format(time.RFC3339),
	}

	updated, err := s.store.UpdateRow(ctx, rowstore.CategoryFormState, "chat_id", state.ConversationID, fields)
	if err != nil {
		return fmt.Errorf("updating form state: %w", err)
	}
	if !updated {
		if _, err := s.store.AddRow(ctx, rowstore.CategoryFormState, fields); err != nil {
			return fmt.Errorf("inserting form state: %w", err)
		}
	}
	return nil
}

func (s *RowStoreStorage) Load(ctx context.Context, conversationID string) (*FormState, error) {
	rows, err := s.store.GetRows(ctx, rowstore.CategoryFormState, map[string]string{"chat_id": conversationID})
	if err != nil {
		return nil, fmt.Errorf("loading form state: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	state := &FormState{
		ConversationID: row.Get("chat_id"),
		SiteID:         row.Get("site_id"),
		UserID:         row.Get("user_id"),
		Role:           row.Get("role"),
		Step:           StepID(row.Get("step")),
		ReportID:       row.Get("report_id"),
		Fields:         make(map[string]string),
	}

	if raw := row.Get("form_data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state.Fields); err != nil {
			return nil, fmt.Errorf("decoding form data: %w", err)
		}
	}
	return state, nil
}

func (s *RowStoreStorage) Clear(ctx context.Context, conversationID string) error {
	rows, err := s.store.GetRows(ctx, rowstore.CategoryFormState, map[string]string{"chat_id": conversationID})
	if err != nil {
		return fmt.Errorf("loading form state: %w", err)
	}
	for _, row := range rows {
		if err := s.store.DeleteRow(ctx, row); err != nil {
			return fmt.Errorf("deleting form state: %w", err)
		}
	}
	return nil
}

// FormStateRepository defines the database operations for form state.
type FormStateRepository interface {
	SaveFormState(ctx context.Context, state *FormState) error
	LoadFormState(ctx context.Context, conversationID string) (*FormState, error)
	ClearFormState(ctx context.Context, conversationID string) error
}

// MongoStorage adapts the database repository to the StateStorage
// interface for deployments that keep conversation state out of the
// spreadsheet.
type MongoStorage struct {
	repo FormStateRepository
}

func NewMongoStorage(repo FormStateRepository) *MongoStorage {
	return &MongoStorage{repo: repo}
}

func (s *MongoStorage) Save(ctx context.Context, state *FormState) error {
	return s.repo.SaveFormState(ctx, state)
}

func (s *MongoStorage) Load(ctx context.Context, conversationID string) (*FormState, error) {
	return s.repo.LoadFormState(ctx, conversationID)
}

func (s *MongoStorage) Clear(ctx context.Context, conversationID string) error {
	return s.repo.ClearFormState(ctx, conversationID)
}
