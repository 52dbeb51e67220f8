package domain

// Inventory represents the structure stored in the JSONB column
type Inventory struct {
	Items      []Item `json:"items"`
	LastUpdate int64  `json:"last_update,omitempty"`
}

// Equipment represents one character's equipped item references, stored as
// a JSONB list. References use ItemRef so legacy numeric encodings decode
// cleanly.
type Equipment struct {
	OwnerID     string    `json:"owner_id"`
	CharacterID string    `json:"character_id"`
	Equipped    []ItemRef `json:"equipped"`
}
