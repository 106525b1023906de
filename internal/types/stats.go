package types

type ContactStats struct {
	Total       int64            `json:"total"`
	Unprocessed int64            `json:"unprocessed"`
	ByType      map[string]int64 `json:"byType"`
}

type SubscriberStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}
