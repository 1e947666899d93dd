package dto

// ErrorResponse is the single error shape for every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type StatsResponse struct {
	TotalVerifications int64 `json:"totalVerifications"`
	TotalStreams       int64 `json:"totalStreams"`
	ActiveUsers        int64 `json:"activeUsers"`
	TotalSongs         int64 `json:"totalSongs"`
}
