package entity

// Site workflow statuses as stored in the Sites sheet.
const (
	StatusPending          = "PENDING"
	StatusInProgress       = "IN_PROGRESS"
	StatusAutopsyDone      = "AUTOPSY_DONE"
	StatusDiggingDone      = "DIGGING_DONE"
	StatusConstructionDone = "CONSTRUCTION_DONE"
	StatusOpticalDone      = "OPTICAL_DONE"
	StatusCompleted        = "COMPLETED"
)

type Site struct {
	SiteID     string `json:"site_id" bson:"site_id" validate:"required"`
	Address    string `json:"address" bson:"address"`
	Type       string `json:"type" bson:"type"`
	Status     string `json:"status" bson:"status"`
	AssignedTo string `json:"assigned_to" bson:"assigned_to"`
}
