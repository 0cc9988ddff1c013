package types

// CardsResponse wraps the card list returned by GET /cards.
type CardsResponse struct {
	// Merged-or-standalone cards in stable discovery order.
	Cards []CardEntry `json:"cards"`
}

// ModelsResponse wraps the flat model list returned by GET /models.
type ModelsResponse struct {
	// Every discovered checkpoint file, before merging.
	Models []Model `json:"models"`
}

// SuggestResponse is returned by GET /suggest.
type SuggestResponse struct {
	// Query the suggestions were computed for.
	// example: wan
	Query string `json:"query" example:"wan"`
	// Card names matching the query prefix.
	Suggestions []string `json:"suggestions"`
}

// RescanResponse is returned by POST /rescan.
type RescanResponse struct {
	// Number of checkpoint files discovered by this scan.
	// example: 42
	Models int `json:"models" example:"42"`
	// Number of cards after merging variants.
	// example: 30
	Cards int `json:"cards" example:"30"`
	// Scan duration in milliseconds.
	// example: 118
	DurationMS int64 `json:"duration_ms" example:"118"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: card not found: wan-character
	Error string `json:"error" example:"card not found: wan-character"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Roots being scanned for checkpoint files.
	Roots []string `json:"roots"`
	// Number of checkpoint files found by the last scan.
	// example: 42
	Models int `json:"models" example:"42"`
	// Number of cards after merging.
	// example: 30
	Cards int `json:"cards" example:"30"`
	// Number of cards carrying more than one variant.
	// example: 12
	MergedCards int `json:"merged_cards" example:"12"`
	// Total number of completed scans since start.
	// example: 3
	ScansTotal uint64 `json:"scans_total" example:"3"`
	// Unix seconds of the last completed scan, zero before the first.
	// example: 1700000000
	LastScanUnix int64 `json:"last_scan_unix" example:"1700000000"`
	// Last scan error observed (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
