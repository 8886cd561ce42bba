package form

import "FiberTrack/entity"

// DeriveSiteStatus computes the new site status from a submitted form.
// Pure function of (role, answers); persistence happens elsewhere.
//
// Autopsy submission always completes the autopsy phase. The other roles
// complete their phase only when their primary yes/no answers are all
// affirmative; anything less leaves the site in progress. Note the
// construction rule only checks BCP and BEP - BMO is recorded but does
// not gate completion.
func DeriveSiteStatus(role string, fields map[string]string) string {
	switch role {
	case entity.RoleAutopsy:
		return entity.StatusAutopsyDone
	case entity.RoleConstruction:
		if fields["bcp_installed"] == AnswerYes && fields["bep_installed"] == AnswerYes {
			return entity.StatusConstructionDone
		}
	case entity.RoleDigging:
		if fields["trench_dug"] == AnswerYes && fields["cable_laid"] == AnswerYes && fields["backfill_done"] == AnswerYes {
			return entity.StatusDiggingDone
		}
	case entity.RoleOptical:
		if fields["splicing_done"] == AnswerYes {
			return entity.StatusOpticalDone
		}
	}
	return entity.StatusInProgress
}
