package structs

// Health is a document written purely to poke the health probe.
type Health struct {
	ID        string `json:"id"`
	UpdatedAt int64  `json:"updatedAt"`
}
