package form

import "time"

// Field-bag keys shared by every role's form. The photo key is only ever
// written when a photo actually arrives; skipping leaves it absent.
const (
	FieldPhoto    = "photo_url"
	FieldComments = "comments"
)

// FormState is the durable record of one in-progress conversation,
// keyed by the Telegram chat id. It survives process restarts; the
// in-memory copy held during a single update is never authoritative.
type FormState struct {
	ConversationID string            `json:"conversation_id" bson:"conversation_id"`
	SiteID         string            `json:"site_id" bson:"site_id"`
	UserID         string            `json:"user_id" bson:"user_id"`
	Role           string            `json:"role" bson:"role"`
	Step           StepID            `json:"step" bson:"step"`
	ReportID       string            `json:"report_id" bson:"report_id"`
	Fields         map[string]string `json:"fields" bson:"fields"`
	UpdatedAt      time.Time         `json:"updated_at" bson:"updated_at"`
}

func NewFormState(conversationID, siteID, userID, role string, initial StepID) *FormState {
	return &FormState{
		ConversationID: conversationID,
		SiteID:         siteID,
		UserID:         userID,
		Role:           role,
		Step:           initial,
		Fields:         make(map[string]string),
		UpdatedAt:      time.Now(),
	}
}

// Set stores a collected answer under its field name.
func (s *FormState) Set(field, value string) {
	if s.Fields == nil {
		s.Fields = make(map[string]string)
	}
	s.Fields[field] = value
}

// Get returns a collected answer, or "" when the field was never filled.
func (s *FormState) Get(field string) string {
	return s.Fields[field]
}
