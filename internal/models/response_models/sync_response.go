package response_models

type SyncStatsResponse struct {
	TotalProcessed int    `json:"totalProcessed"`
	Inserted       int    `json:"inserted"`
	Updated        int    `json:"updated"`
	Errors         int    `json:"errors"`
	LastSync       string `json:"lastSync"`
}

type SyncStatusResponse struct {
	LastSync        string `json:"lastSync,omitempty"`
	LastSyncDisplay string `json:"lastSyncDisplay,omitempty"`
	SyncStatus      string `json:"syncStatus"`
}
