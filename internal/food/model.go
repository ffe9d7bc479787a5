package food

// Food represents a food category a group can be scheduled around
type Food struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}
