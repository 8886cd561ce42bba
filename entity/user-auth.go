package entity

// UserAuth is a dashboard identity resolved from an API key.
type UserAuth struct {
	Username string `json:"username" bson:"username" validate:"required"`
	Token    string `json:"token" bson:"token" validate:"required,min=1"`
}
