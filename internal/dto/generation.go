package dto

// SeriesGenerationResult reports what generation did for one series.
type SeriesGenerationResult struct {
	SeriesID          string   `json:"series_id"`
	CreatedConfirmed  int      `json:"created_confirmed"`
	CreatedConflicted int      `json:"created_conflicted"`
	Skipped           int      `json:"skipped"`
	Failed            int      `json:"failed"`
	UpToDate          bool     `json:"up_to_date"`
	GeneratedThrough  *string  `json:"generated_through,omitempty"`
	Warnings          []string `json:"warnings,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// GenerationSummary aggregates one trigger run across all processed series.
type GenerationSummary struct {
	Processed  int                      `json:"processed"`
	UpToDate   int                      `json:"up_to_date"`
	Created    GenerationCreatedCounts  `json:"created"`
	Skipped    int                      `json:"skipped"`
	Failed     int                      `json:"failed"`
	DurationMs int64                    `json:"duration_ms"`
	Details    []SeriesGenerationResult `json:"details"`
}

// GenerationCreatedCounts splits created sessions by resulting status.
type GenerationCreatedCounts struct {
	Confirmed  int `json:"confirmed"`
	Conflicted int `json:"conflicted"`
}
