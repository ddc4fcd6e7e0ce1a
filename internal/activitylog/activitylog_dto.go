package activitylog

type EntryResponse struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	ActorName string `json:"actor_name"`
	Action    string `json:"action"`
	Details   string `json:"details,omitempty"`
	Category  string `json:"category"`
}
