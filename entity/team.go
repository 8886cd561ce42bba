package entity

// TeamMember links a user to a job crew of a given type.
type TeamMember struct {
	TeamID   string `json:"team_id" validate:"required"`
	JobSrID  string `json:"job_sr_id" validate:"required"`
	UserID   string `json:"user_id" validate:"required"`
	TeamType string `json:"team_type"`
}
