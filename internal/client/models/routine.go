package models

// Routine is a named, ordered list of products the user applies at a given
// time of day. Product order matters for display ("step N") only; the
// compatibility computation treats the list as a set.
type Routine struct {
	ID          string   `json:"_id,omitempty"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	TimeOfDay   string   `json:"timeOfDay" validate:"required,oneof=morning evening"`
	ProductIDs  []string `json:"productIds" validate:"required,min=1"`
}
