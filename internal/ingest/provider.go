// Package ingest holds what every history importer shares.
package ingest

// Result holds the outcome of an ingest operation.
type Result struct {
	SessionsReceived int      `json:"sessions_received"`
	WorkoutsInserted int      `json:"workouts_inserted"`
	WorkoutsSkipped  int      `json:"workouts_skipped"`
	WorkoutsRejected int      `json:"workouts_rejected"`
	RejectedReasons  []string `json:"rejected_reasons,omitempty"`

	SetsReceived   int `json:"sets_received"`
	WarmupsSkipped int `json:"warmups_skipped"`

	Message string `json:"message,omitempty"`
}
