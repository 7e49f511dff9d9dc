package models

// HistoryEntry is one studio generation. Entries are append-only.
type HistoryEntry struct {
	ID        string `json:"id,omitempty"`
	User      string `json:"user"`
	Topic     string `json:"topic"`
	Platform  string `json:"platform"`
	Language  string `json:"language"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}
