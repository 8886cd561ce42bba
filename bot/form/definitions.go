package form

import "FiberTrack/entity"

// Fixed-choice answers used by the yes/no steps.
const (
	AnswerYes = "YES"
	AnswerNo  = "NO"
)

var yesNo = []string{AnswerYes, AnswerNo}

// StepDef is one entry of a role's form: the field it fills, the prompt
// that asks for it, and the answer shape it accepts. Photo and comments
// steps carry no choices and bind the shared field keys.
type StepDef struct {
	ID      StepID
	Kind    StepKind
	Field   string
	Prompt  string
	Choices []string
}

// Definition is the ordered form of one worker role. The last two steps
// are always photo then comments, both skippable.
type Definition struct {
	Role  string
	Steps []StepDef
}

// First returns the initial step of the form.
func (d Definition) First() StepDef {
	return d.Steps[0]
}

// Find returns the step with the given id.
func (d Definition) Find(id StepID) (StepDef, bool) {
	for _, step := range d.Steps {
		if step.ID == id {
			return step, true
		}
	}
	return StepDef{}, false
}

// Next returns the step following id, or false when id is the last step
// and the form is ready for submission.
func (d Definition) Next(id StepID) (StepDef, bool) {
	for i, step := range d.Steps {
		if step.ID == id && i+1 < len(d.Steps) {
			return d.Steps[i+1], true
		}
	}
	return StepDef{}, false
}

func question(id, prompt string) StepDef {
	return StepDef{ID: StepID(id), Kind: KindText, Field: id, Prompt: prompt}
}

func choice(id, prompt string) StepDef {
	return StepDef{ID: StepID(id), Kind: KindChoice, Field: id, Prompt: prompt, Choices: yesNo}
}

func photo(prompt string) StepDef {
	return StepDef{ID: "photo", Kind: KindPhoto, Field: FieldPhoto, Prompt: prompt}
}

func comments() StepDef {
	return StepDef{
		ID:     "comments",
		Kind:   KindComments,
		Field:  FieldComments,
		Prompt: "Any comments? (Type your comments or send /skip to skip)",
	}
}

// Forms is the static form definition table, indexed by worker role.
// Prompts follow the wording the field crews already know; field keys are
// the report-sheet column names.
func Forms() map[string]Definition {
	return map[string]Definition{
		entity.RoleAutopsy: {
			Role: entity.RoleAutopsy,
			Steps: []StepDef{
				question("address", "Αυτοψία - Παρακαλώ δώστε τη ΔΙΕΥΘΥΝΣΗ:"),
				question("customer", "Όνομα ΠΕΛΑΤΗ:"),
				question("customer_phone", "ΤΗΛ. ΕΠΙΚΟΙΝΩΝΙΑΣ ΠΕΛΑΤΗ:"),
				question("manager_info", "ΣΤΟΙΧΕΙΑ ΔΙΑΧΕΙΡΙΣΤΗ:"),
				question("appointment_date", "ΗΜΕΡΟΜΗΝΙΑ ΡΑΝΤΕΒΟΥ (π.χ. 2025-01-20):"),
				question("appointment_time", "ΩΡΑ ΡΑΝΤΕΒΟΥ (π.χ. 14:00):"),
				question("area", "ΠΕΡΙΟΧΗ:"),
				photo("Please send a photo (or send /skip to skip)"),
				comments(),
			},
		},
		entity.RoleConstruction: {
			Role: entity.RoleConstruction,
			Steps: []StepDef{
				choice("bcp_installed", "Is BCP installed? (YES/NO)"),
				choice("bep_installed", "Is BEP installed? (YES/NO)"),
				choice("bmo_installed", "Is BMO installed? (YES/NO)"),
				photo("Please send a photo of the installation (or send /skip to skip)"),
				comments(),
			},
		},
		entity.RoleDigging: {
			Role: entity.RoleDigging,
			Steps: []StepDef{
				choice("trench_dug", "Is trench dug? (YES/NO)"),
				choice("cable_laid", "Is cable laid? (YES/NO)"),
				choice("backfill_done", "Is backfill done? (YES/NO)"),
				question("cab", "CAB:"),
				question("waiting", "ΑΝΑΜΟΝΗ:"),
				question("line_recording", "ΓΡΑΜΜΟΓΡΑΦΗΣΗ:"),
				photo("Please send a photo of the work (or send /skip to skip)"),
				comments(),
			},
		},
		entity.RoleOptical: {
			Role: entity.RoleOptical,
			Steps: []StepDef{
				choice("splicing_done", "Is Splicing done? (YES/NO)"),
				question("measurements", "Measurements (e.g., -15dB):"),
				question("cab", "CAB:"),
				question("waiting", "ΑΝΑΜΟΝΗ:"),
				question("line_recording", "ΓΡΑΜΜΟΓΡΑΦΗΣΗ:"),
				photo("Please send a photo of the splicing (or send /skip to skip)"),
				comments(),
			},
		},
	}
}
