package models

// Conflict describes a pair of selected products whose ingredients should
// not be combined in one routine.
type Conflict struct {
	ProductA    string `json:"productA"`
	ProductB    string `json:"productB"`
	IngredientA string `json:"ingredientA,omitempty"`
	IngredientB string `json:"ingredientB,omitempty"`
	Reason      string `json:"reason,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

// AllergenWarning flags a selected product containing an ingredient from
// the user's allergen set.
type AllergenWarning struct {
	ProductID  string `json:"productId"`
	Ingredient string `json:"ingredient"`
}

// CompatibilityReport is the backend's verdict on the currently selected
// products. It is derived state: keyed by the selection it was computed
// for, never persisted, and discarded whenever the selection changes or
// shrinks below two products.
type CompatibilityReport struct {
	Compatible       bool              `json:"compatible"`
	Conflicts        []Conflict        `json:"conflicts,omitempty"`
	AllergenWarnings []AllergenWarning `json:"allergenWarnings,omitempty"`
}
