package domain

// Event is a change notification emitted by the store whenever an invite
// or couple row is written. UI clients consume these instead of polling.
type Event struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    string `json:"id"`
}
