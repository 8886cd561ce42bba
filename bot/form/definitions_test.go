package form

import "testing"

func TestFormsShape(t *testing.T) {
	forms := Forms()
	if len(forms) == 0 {
		t.Fatal("no forms defined")
	}

	for role, def := range forms {
		if def.Role != role {
			t.Errorf("form %s carries role %s", role, def.Role)
		}
		if len(def.Steps) < 3 {
			t.Fatalf("form %s has too few steps", role)
		}

		n := len(def.Steps)
		if def.Steps[n-2].Kind != KindPhoto {
			t.Errorf("form %s: second to last step is %s, want photo", role, def.Steps[n-2].Kind)
		}
		if def.Steps[n-1].Kind != KindComments {
			t.Errorf("form %s: last step is %s, want comments", role, def.Steps[n-1].Kind)
		}

		seen := make(map[StepID]bool)
		for _, step := range def.Steps {
			if seen[step.ID] {
				t.Errorf("form %s: duplicate step id %s", role, step.ID)
			}
			seen[step.ID] = true

			if step.Field == "" {
				t.Errorf("form %s: step %s has no field", role, step.ID)
			}
			if step.Prompt == "" {
				t.Errorf("form %s: step %s has no prompt", role, step.ID)
			}
			if step.Kind == KindChoice && len(step.Choices) == 0 {
				t.Errorf("form %s: choice step %s has no choices", role, step.ID)
			}
			if step.Kind != KindChoice && len(step.Choices) != 0 {
				t.Errorf("form %s: non-choice step %s has choices", role, step.ID)
			}
		}
	}
}

func TestDefinitionNavigation(t *testing.T) {
	forms := Forms()
	for role, def := range forms {
		if def.First().ID != def.Steps[0].ID {
			t.Errorf("form %s: First is not the first step", role)
		}

		for i, step := range def.Steps {
			found, ok := def.Find(step.ID)
			if !ok || found.ID != step.ID {
				t.Errorf("form %s: Find(%s) failed", role, step.ID)
			}

			next, ok := def.Next(step.ID)
			if i == len(def.Steps)-1 {
				if ok {
					t.Errorf("form %s: Next(%s) should signal submission", role, step.ID)
				}
			} else {
				if !ok || next.ID != def.Steps[i+1].ID {
					t.Errorf("form %s: Next(%s) = %s, want %s", role, step.ID, next.ID, def.Steps[i+1].ID)
				}
			}
		}

		if _, ok := def.Find("no-such-step"); ok {
			t.Errorf("form %s: Find of unknown step succeeded", role)
		}
	}
}
