package form

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"FiberTrack/entity"
)

type sentMessage struct {
	text    string
	buttons []InlineButton
}

type fakeMessenger struct {
	sent []sentMessage
}

func (f *fakeMessenger) SendText(chatID, text string) error {
	f.sent = append(f.sent, sentMessage{text: text})
	return nil
}

func (f *fakeMessenger) SendInlineOptions(chatID, text string, buttons []InlineButton) error {
	f.sent = append(f.sent, sentMessage{text: text, buttons: buttons})
	return nil
}

func (f *fakeMessenger) last() sentMessage {
	if len(f.sent) == 0 {
		return sentMessage{}
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeMessenger) contains(substr string) bool {
	for _, m := range f.sent {
		if strings.Contains(m.text, substr) {
			return true
		}
	}
	return false
}

type memStorage struct {
	states  map[string]*FormState
	saveErr error
}

func newMemStorage() *memStorage {
	return &memStorage{states: make(map[string]*FormState)}
}

func (s *memStorage) Save(_ context.Context, state *FormState) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	cp := *state
	cp.Fields = make(map[string]string, len(state.Fields))
	for k, v := range state.Fields {
		cp.Fields[k] = v
	}
	s.states[state.ConversationID] = &cp
	return nil
}

func (s *memStorage) Load(_ context.Context, conversationID string) (*FormState, error) {
	st, ok := s.states[conversationID]
	if !ok {
		return nil, nil
	}
	cp := *st
	cp.Fields = make(map[string]string, len(st.Fields))
	for k, v := range st.Fields {
		cp.Fields[k] = v
	}
	return &cp, nil
}

func (s *memStorage) Clear(_ context.Context, conversationID string) error {
	delete(s.states, conversationID)
	return nil
}

type fakeSubmitter struct {
	submitted []*FormState
	err       error
}

func (f *fakeSubmitter) Submit(_ context.Context, state *FormState) error {
	if f.err != nil {
		return f.err
	}
	cp := *state
	f.submitted = append(f.submitted, &cp)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngineStartUnknownRole(t *testing.T) {
	storage := newMemStorage()
	engine := NewEngine(storage, &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}

	if err := engine.Start(context.Background(), m, "100", "S1", "U1", entity.RolePending); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if m.last().text != msgNoWorkerRole {
		t.Errorf("got %q, want role rejection", m.last().text)
	}
	if len(storage.states) != 0 {
		t.Error("state was created for a role without a form")
	}
}

func TestEngineFullConstructionFlow(t *testing.T) {
	storage := newMemStorage()
	sub := &fakeSubmitter{}
	engine := NewEngine(storage, sub, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleConstruction); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(m.last().buttons) == 0 {
		t.Fatal("first prompt should carry answer buttons")
	}

	for _, answer := range []string{AnswerYes, AnswerYes, AnswerNo} {
		if err := engine.HandleChoice(ctx, m, "100", answer); err != nil {
			t.Fatalf("HandleChoice(%s): %v", answer, err)
		}
	}
	if err := engine.HandlePhoto(ctx, m, "100", "file-123"); err != nil {
		t.Fatalf("HandlePhoto: %v", err)
	}
	if handled, err := engine.HandleText(ctx, m, "100", "all good"); err != nil || !handled {
		t.Fatalf("HandleText: handled=%v err=%v", handled, err)
	}

	if len(sub.submitted) != 1 {
		t.Fatalf("submitted %d reports, want 1", len(sub.submitted))
	}
	got := sub.submitted[0]
	if got.Fields["bcp_installed"] != AnswerYes ||
		got.Fields["bep_installed"] != AnswerYes ||
		got.Fields["bmo_installed"] != AnswerNo {
		t.Errorf("wrong answers submitted: %v", got.Fields)
	}
	if got.Fields[FieldPhoto] != "file-123" {
		t.Errorf("photo ref = %q, want file-123", got.Fields[FieldPhoto])
	}
	if got.Fields[FieldComments] != "all good" {
		t.Errorf("comments = %q", got.Fields[FieldComments])
	}
	if got.ReportID == "" {
		t.Error("report id was not pinned before submit")
	}
	if len(storage.states) != 0 {
		t.Error("state not cleared after successful submit")
	}
	if !m.contains("Construction report submitted successfully") {
		t.Error("no confirmation message sent")
	}
}

func TestEngineTextOnChoiceStep(t *testing.T) {
	storage := newMemStorage()
	engine := NewEngine(storage, &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleConstruction); err != nil {
		t.Fatalf("Start: %v", err)
	}

	handled, err := engine.HandleText(ctx, m, "100", "yes please")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if !handled {
		t.Fatal("text during active form should be handled")
	}

	st := storage.states["100"]
	if st.Step != "bcp_installed" {
		t.Errorf("step advanced to %s on free text", st.Step)
	}
	if len(st.Fields) != 0 {
		t.Errorf("fields mutated: %v", st.Fields)
	}
	if len(m.last().buttons) == 0 {
		t.Error("re-prompt should carry the answer buttons again")
	}
}

func TestEngineInvalidChoiceNoAdvance(t *testing.T) {
	storage := newMemStorage()
	engine := NewEngine(storage, &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleConstruction); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := engine.HandleChoice(ctx, m, "100", "MAYBE"); err != nil {
		t.Fatalf("HandleChoice: %v", err)
	}

	st := storage.states["100"]
	if st.Step != "bcp_installed" {
		t.Errorf("invalid choice advanced the step to %s", st.Step)
	}
}

func TestEngineSkipSemantics(t *testing.T) {
	storage := newMemStorage()
	sub := &fakeSubmitter{}
	engine := NewEngine(storage, sub, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleConstruction); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Question steps cannot be skipped.
	if err := engine.Skip(ctx, m, "100"); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if m.last().text != msgSkipBlocked {
		t.Errorf("got %q, want skip rejection", m.last().text)
	}
	if storage.states["100"].Step != "bcp_installed" {
		t.Error("blocked skip moved the step")
	}

	for _, answer := range []string{AnswerYes, AnswerYes, AnswerYes} {
		if err := engine.HandleChoice(ctx, m, "100", answer); err != nil {
			t.Fatalf("HandleChoice: %v", err)
		}
	}

	// Photo skip advances to comments without recording a photo.
	if err := engine.Skip(ctx, m, "100"); err != nil {
		t.Fatalf("Skip photo: %v", err)
	}
	if storage.states["100"].Step != "comments" {
		t.Errorf("step = %s, want comments", storage.states["100"].Step)
	}

	// Comments skip submits.
	if err := engine.Skip(ctx, m, "100"); err != nil {
		t.Fatalf("Skip comments: %v", err)
	}
	if len(sub.submitted) != 1 {
		t.Fatalf("submitted %d reports, want 1", len(sub.submitted))
	}
	got := sub.submitted[0]
	if _, ok := got.Fields[FieldPhoto]; ok {
		t.Error("skipped photo left a value")
	}
	if _, ok := got.Fields[FieldComments]; ok {
		t.Error("skipped comments left a value")
	}
}

func TestEngineResumeVerbatimPrompt(t *testing.T) {
	storage := newMemStorage()
	engine := NewEngine(storage, &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleDigging); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := engine.HandleChoice(ctx, m, "100", AnswerYes); err != nil {
		t.Fatalf("HandleChoice: %v", err)
	}
	wantPrompt := m.last().text

	m2 := &fakeMessenger{}
	if err := engine.Resume(ctx, m2, "100"); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !strings.Contains(m2.sent[0].text, "Resuming form for site S1") {
		t.Errorf("resume preamble = %q", m2.sent[0].text)
	}
	if m2.last().text != wantPrompt {
		t.Errorf("resume prompt = %q, want verbatim %q", m2.last().text, wantPrompt)
	}
}

func TestEngineResumeWithoutState(t *testing.T) {
	engine := NewEngine(newMemStorage(), &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}

	if err := engine.Resume(context.Background(), m, "100"); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if m.last().text != msgNothingToRes {
		t.Errorf("got %q", m.last().text)
	}
}

func TestEngineCancel(t *testing.T) {
	storage := newMemStorage()
	engine := NewEngine(storage, &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Cancel(ctx, m, "100"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if m.last().text != msgNoActiveForm {
		t.Errorf("got %q", m.last().text)
	}

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleOptical); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := engine.Cancel(ctx, m, "100"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(storage.states) != 0 {
		t.Error("cancel left state behind")
	}
	if m.last().text != msgCancelled {
		t.Errorf("got %q", m.last().text)
	}
}

func TestEngineSubmitFailureRetainsState(t *testing.T) {
	storage := newMemStorage()
	sub := &fakeSubmitter{err: errors.New("sheet unavailable")}
	engine := NewEngine(storage, sub, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleOptical); err != nil {
		t.Fatalf("Start: %v", err)
	}
	steps := []struct {
		choice bool
		value  string
	}{
		{true, AnswerYes},
		{false, "-15dB"},
		{false, "CAB-1"},
		{false, "none"},
		{false, "done"},
	}
	for _, s := range steps {
		var err error
		if s.choice {
			err = engine.HandleChoice(ctx, m, "100", s.value)
		} else {
			_, err = engine.HandleText(ctx, m, "100", s.value)
		}
		if err != nil {
			t.Fatalf("step %v: %v", s, err)
		}
	}
	if err := engine.HandlePhoto(ctx, m, "100", "file-9"); err != nil {
		t.Fatalf("HandlePhoto: %v", err)
	}

	// Comments answer triggers the failing submit.
	if _, err := engine.HandleText(ctx, m, "100", "ok"); err == nil {
		t.Fatal("expected submit error")
	}
	if m.last().text != msgSubmitFailed {
		t.Errorf("got %q", m.last().text)
	}

	st := storage.states["100"]
	if st == nil {
		t.Fatal("state cleared despite submit failure")
	}
	if st.ReportID == "" {
		t.Fatal("report id not pinned before submit attempt")
	}
	pinned := st.ReportID

	// Retry succeeds and reuses the pinned id.
	sub.err = nil
	if err := engine.Resume(ctx, m, "100"); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if _, err := engine.HandleText(ctx, m, "100", "ok"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(sub.submitted) != 1 {
		t.Fatalf("submitted %d reports, want 1", len(sub.submitted))
	}
	if sub.submitted[0].ReportID != pinned {
		t.Errorf("retry minted a new report id: %s != %s", sub.submitted[0].ReportID, pinned)
	}
	if len(storage.states) != 0 {
		t.Error("state not cleared after successful retry")
	}
}

func TestEngineSaveFailureNoAdvance(t *testing.T) {
	storage := newMemStorage()
	engine := NewEngine(storage, &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleConstruction); err != nil {
		t.Fatalf("Start: %v", err)
	}

	storage.saveErr = errors.New("write failed")
	if err := engine.HandleChoice(ctx, m, "100", AnswerYes); err == nil {
		t.Fatal("expected save error")
	}
	if m.last().text != msgSaveFailed {
		t.Errorf("got %q", m.last().text)
	}
	if storage.states["100"].Step != "bcp_installed" {
		t.Error("persisted step moved despite save failure")
	}
	if len(storage.states["100"].Fields) != 0 {
		t.Error("persisted fields mutated despite save failure")
	}
}

func TestEngineHandleTextNoActiveForm(t *testing.T) {
	engine := NewEngine(newMemStorage(), &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}

	handled, err := engine.HandleText(context.Background(), m, "100", "hello")
	if err != nil {
		t.Fatalf("HandleText: %v", err)
	}
	if handled {
		t.Error("text without active form reported as handled")
	}
}

func TestEnginePhotoOutsidePhotoStep(t *testing.T) {
	storage := newMemStorage()
	engine := NewEngine(storage, &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleConstruction); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := engine.HandlePhoto(ctx, m, "100", "file-1"); err != nil {
		t.Fatalf("HandlePhoto: %v", err)
	}
	if m.last().text != msgNoPhotoStep {
		t.Errorf("got %q", m.last().text)
	}
	if storage.states["100"].Step != "bcp_installed" {
		t.Error("photo outside photo step moved the form")
	}
}

func TestEngineStartOverwritesPreviousForm(t *testing.T) {
	storage := newMemStorage()
	engine := NewEngine(storage, &fakeSubmitter{}, testLogger())
	m := &fakeMessenger{}
	ctx := context.Background()

	if err := engine.Start(ctx, m, "100", "S1", "U1", entity.RoleConstruction); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := engine.HandleChoice(ctx, m, "100", AnswerYes); err != nil {
		t.Fatalf("HandleChoice: %v", err)
	}

	if err := engine.Start(ctx, m, "100", "S2", "U1", entity.RoleConstruction); err != nil {
		t.Fatalf("restart: %v", err)
	}

	st := storage.states["100"]
	if st.SiteID != "S2" {
		t.Errorf("site = %s, want S2", st.SiteID)
	}
	if st.Step != "bcp_installed" || len(st.Fields) != 0 {
		t.Error("restart did not reset progress")
	}
}
