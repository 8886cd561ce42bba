package form

import "context"

// StepID identifies a step inside a role's form definition.
type StepID string

// StepKind is the answer shape a step expects. Explicit kinds replace the
// step-name prefix conventions of earlier revisions.
type StepKind string

const (
	KindText     StepKind = "text"
	KindChoice   StepKind = "choice"
	KindPhoto    StepKind = "photo"
	KindComments StepKind = "comments"
)

// CallbackAnswer prefixes the callback data of fixed-choice answer buttons.
const CallbackAnswer = "ANSWER:"

// InlineButton is one inline-keyboard button with callback data.
type InlineButton struct {
	Text string
	Data string
}

// Messenger is the chat transport seen by the engine: send a plain message
// or a message with inline answer buttons.
type Messenger interface {
	SendText(chatID, text string) error
	SendInlineOptions(chatID, text string, buttons []InlineButton) error
}

// StateStorage persists conversation state between updates and across
// restarts. Load returns (nil, nil) when no state exists for the id.
// Save has upsert semantics: at most one record per conversation id.
type StateStorage interface {
	Save(ctx context.Context, state *FormState) error
	Load(ctx context.Context, conversationID string) (*FormState, error)
	Clear(ctx context.Context, conversationID string) error
}

// ReportSubmitter consumes a completed form: it persists the report and
// applies the derived site status. Implementations must be safe to retry
// with the same state after a partial failure.
type ReportSubmitter interface {
	Submit(ctx context.Context, state *FormState) error
}
