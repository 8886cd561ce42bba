package form

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"FiberTrack/entity"
	"FiberTrack/internal/lib/sl"
)

// User-facing messages shared across handlers.
const (
	msgNoWorkerRole  = "You do not have a worker role assigned."
	msgNoActiveForm  = "No active form. Use /today to start a task."
	msgNothingToRes  = "No incomplete form found. Use /today to start a new task."
	msgPhotoExpected = "Please send a photo (or send /skip to skip)"
	msgNoPhotoStep   = "Please start a report first using /today"
	msgSkipBlocked   = "Only the photo and comments steps can be skipped."
	msgSaveFailed    = "⚠️ Could not save your answer. Please send it again."
	msgSubmitFailed  = "❌ Error submitting report. Your answers are saved - send /resume to retry."
	msgCancelled     = "Form cancelled. Saved progress was discarded."
)

// Engine drives conversational form filling: it owns the authoritative
// conversation step, consults the form definition table, and reads and
// writes the state store on every transition. Events for the same
// conversation are serialized; different conversations run concurrently.
type Engine struct {
	forms   map[string]Definition
	storage StateStorage
	reports ReportSubmitter
	log     *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewEngine(storage StateStorage, reports ReportSubmitter, log *slog.Logger) *Engine {
	return &Engine{
		forms:   Forms(),
		storage: storage,
		reports: reports,
		log:     log.With(sl.Module("form.engine")),
		locks:   make(map[string]*sync.Mutex),
	}
}

// lock serializes event handling per conversation id, so a second event
// cannot read a stale step while a store call for the first is pending.
func (e *Engine) lock(conversationID string) func() {
	e.mu.Lock()
	l, ok := e.locks[conversationID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[conversationID] = l
	}
	e.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Start begins a new conversation for a resolved site and role. A user
// without a form-backed role is rejected and no state is created. Any
// previous in-progress form for the conversation is overwritten.
func (e *Engine) Start(ctx context.Context, m Messenger, conversationID, siteID, userID, role string) error {
	defer e.lock(conversationID)()

	def, ok := e.forms[role]
	if !ok {
		return m.SendText(conversationID, msgNoWorkerRole)
	}

	first := def.First()
	state := NewFormState(conversationID, siteID, userID, role, first.ID)
	if err := e.storage.Save(ctx, state); err != nil {
		_ = m.SendText(conversationID, msgSaveFailed)
		return fmt.Errorf("saving initial state: %w", err)
	}

	e.log.Info("form started",
		slog.String("conversation_id", conversationID),
		slog.String("site_id", siteID),
		slog.String("role", role),
	)

	return e.prompt(m, conversationID, first)
}

// HandleText processes a free-text message. The boolean reports whether
// the text belonged to an active form; out-of-band text is left to the
// caller.
func (e *Engine) HandleText(ctx context.Context, m Messenger, conversationID, text string) (bool, error) {
	defer e.lock(conversationID)()

	state, def, step, err := e.current(ctx, conversationID)
	if err != nil {
		return false, err
	}
	if state == nil {
		return false, nil
	}

	switch step.Kind {
	case KindChoice:
		// Free text on a fixed-choice step: re-prompt, no state mutation.
		return true, e.prompt(m, conversationID, step)
	case KindPhoto:
		return true, m.SendText(conversationID, step.Prompt)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return true, e.prompt(m, conversationID, step)
	}

	return true, e.advance(ctx, m, state, def, step, text)
}

// HandleChoice processes a fixed-choice (inline button) answer.
func (e *Engine) HandleChoice(ctx context.Context, m Messenger, conversationID, value string) error {
	defer e.lock(conversationID)()

	state, def, step, err := e.current(ctx, conversationID)
	if err != nil || state == nil {
		return err
	}

	if step.Kind != KindChoice {
		return e.prompt(m, conversationID, step)
	}
	if !contains(step.Choices, value) {
		return e.prompt(m, conversationID, step)
	}

	return e.advance(ctx, m, state, def, step, value)
}

// HandlePhoto processes a photo upload, storing the external file
// reference. Photos outside a photo step are rejected with guidance.
func (e *Engine) HandlePhoto(ctx context.Context, m Messenger, conversationID, fileRef string) error {
	defer e.lock(conversationID)()

	state, def, step, err := e.current(ctx, conversationID)
	if err != nil {
		return err
	}
	if state == nil || step.Kind != KindPhoto {
		return m.SendText(conversationID, msgNoPhotoStep)
	}

	if err := m.SendText(conversationID, "Photo received! ✅"); err != nil {
		return err
	}
	return e.advance(ctx, m, state, def, step, fileRef)
}

// Skip advances past the photo or comments step without recording a
// value. Skipping anything else is a validation error.
func (e *Engine) Skip(ctx context.Context, m Messenger, conversationID string) error {
	defer e.lock(conversationID)()

	state, def, step, err := e.current(ctx, conversationID)
	if err != nil {
		return err
	}
	if state == nil {
		return m.SendText(conversationID, msgNoActiveForm)
	}

	switch step.Kind {
	case KindPhoto:
		next, _ := def.Next(step.ID)
		state.Step = next.ID
		if err := e.storage.Save(ctx, state); err != nil {
			_ = m.SendText(conversationID, msgSaveFailed)
			return fmt.Errorf("saving state: %w", err)
		}
		if err := m.SendText(conversationID, "Photo skipped."); err != nil {
			return err
		}
		return e.prompt(m, conversationID, next)
	case KindComments:
		if err := m.SendText(conversationID, "Comments skipped. Submitting report..."); err != nil {
			return err
		}
		return e.submit(ctx, m, state)
	default:
		return m.SendText(conversationID, msgSkipBlocked)
	}
}

// Resume reloads a suspended conversation and re-issues the prompt for
// its stored step, verbatim.
func (e *Engine) Resume(ctx context.Context, m Messenger, conversationID string) error {
	defer e.lock(conversationID)()

	state, _, step, err := e.current(ctx, conversationID)
	if err != nil {
		return err
	}
	if state == nil {
		return m.SendText(conversationID, msgNothingToRes)
	}

	if err := m.SendText(conversationID, fmt.Sprintf("Resuming form for site %s...", state.SiteID)); err != nil {
		return err
	}
	return e.prompt(m, conversationID, step)
}

// Cancel abandons the conversation and deletes its stored state.
func (e *Engine) Cancel(ctx context.Context, m Messenger, conversationID string) error {
	defer e.lock(conversationID)()

	state, err := e.storage.Load(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	if state == nil {
		return m.SendText(conversationID, msgNoActiveForm)
	}

	if err := e.storage.Clear(ctx, conversationID); err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	return m.SendText(conversationID, msgCancelled)
}

// current loads the conversation state and resolves its definition and
// step. state == nil (with nil error) means no active form.
func (e *Engine) current(ctx context.Context, conversationID string) (*FormState, Definition, StepDef, error) {
	state, err := e.storage.Load(ctx, conversationID)
	if err != nil {
		return nil, Definition{}, StepDef{}, fmt.Errorf("loading state: %w", err)
	}
	if state == nil {
		return nil, Definition{}, StepDef{}, nil
	}

	def, ok := e.forms[state.Role]
	if !ok {
		return nil, Definition{}, StepDef{}, fmt.Errorf("no form for role %s", state.Role)
	}
	step, ok := def.Find(state.Step)
	if !ok {
		return nil, Definition{}, StepDef{}, fmt.Errorf("unknown step %s for role %s", state.Step, state.Role)
	}
	return state, def, step, nil
}

// advance records the answer, persists the updated state together with
// the step move, and either prompts the next step or submits.
func (e *Engine) advance(ctx context.Context, m Messenger, state *FormState, def Definition, step StepDef, value string) error {
	state.Set(step.Field, value)

	next, ok := def.Next(step.ID)
	if ok {
		state.Step = next.ID
	}
	if err := e.storage.Save(ctx, state); err != nil {
		_ = m.SendText(state.ConversationID, msgSaveFailed)
		return fmt.Errorf("saving state: %w", err)
	}

	if !ok {
		return e.submit(ctx, m, state)
	}
	return e.prompt(m, state.ConversationID, next)
}

// submit runs the terminal transition: pin a report id into the state so
// a retry after partial failure reuses it, hand the form to the report
// submitter, and clear the state only when everything succeeded.
func (e *Engine) submit(ctx context.Context, m Messenger, state *FormState) error {
	if state.ReportID == "" {
		state.ReportID = entity.NewReportID(state.Role)
		if err := e.storage.Save(ctx, state); err != nil {
			_ = m.SendText(state.ConversationID, msgSaveFailed)
			return fmt.Errorf("saving state before submit: %w", err)
		}
	}

	if err := e.reports.Submit(ctx, state); err != nil {
		_ = m.SendText(state.ConversationID, msgSubmitFailed)
		return fmt.Errorf("submitting report: %w", err)
	}

	if err := e.storage.Clear(ctx, state.ConversationID); err != nil {
		return fmt.Errorf("clearing state after submit: %w", err)
	}

	e.log.Info("form submitted",
		slog.String("conversation_id", state.ConversationID),
		slog.String("site_id", state.SiteID),
		slog.String("role", state.Role),
		slog.String("report_id", state.ReportID),
	)

	return m.SendText(state.ConversationID, confirmation(state.Role))
}

func (e *Engine) prompt(m Messenger, conversationID string, step StepDef) error {
	if step.Kind == KindChoice {
		buttons := make([]InlineButton, len(step.Choices))
		for i, c := range step.Choices {
			buttons[i] = InlineButton{Text: c, Data: CallbackAnswer + c}
		}
		return m.SendInlineOptions(conversationID, step.Prompt, buttons)
	}
	return m.SendText(conversationID, step.Prompt)
}

func confirmation(role string) string {
	name := "Report"
	switch role {
	case entity.RoleAutopsy:
		name = "Autopsy report"
	case entity.RoleConstruction:
		name = "Construction report"
	case entity.RoleDigging:
		name = "Digging report"
	case entity.RoleOptical:
		name = "Optical report"
	}
	return "✅ " + name + " submitted successfully!"
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
