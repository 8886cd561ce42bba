package entity

// Job is one row of the master jobs sheet. The sheet carries the full
// customer/appointment record; the bot only surfaces a slice of it.
type Job struct {
	SrID             string `json:"sr_id" validate:"required"`
	AssignmentDate   string `json:"assignment_date"`
	Address          string `json:"address"`
	Area             string `json:"area"`
	PostalCode       string `json:"postal_code"`
	Customer         string `json:"customer"`
	CustomerPhone    string `json:"customer_phone"`
	AppointmentDate  string `json:"appointment_date"`
	AppointmentTime  string `json:"appointment_time"`
	Status           string `json:"status"`
	Cab              string `json:"cab"`
	Waiting          string `json:"waiting"`
	Phase            string `json:"phase"`
	LineRecording    string `json:"line_recording"`
	Observations     string `json:"observations"`
	AutopsyDate      string `json:"autopsy_date"`
	DiggingDate      string `json:"digging_date"`
	ConstructionDate string `json:"construction_date"`
	OpticalDate      string `json:"optical_date"`
}

// Type derives the job phase from whichever completion date is filled in,
// falling back to the phase description.
func (j *Job) Type() string {
	switch {
	case j.AutopsyDate != "":
		return "Autopsy"
	case j.DiggingDate != "":
		return "Digging"
	case j.ConstructionDate != "":
		return "Construction"
	case j.OpticalDate != "":
		return "Optical"
	}
	return "Unknown"
}
