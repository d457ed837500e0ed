package entity

// StatsResponse is the admin dashboard counters payload.
type StatsResponse struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Reviews int64 `json:"reviews"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}
