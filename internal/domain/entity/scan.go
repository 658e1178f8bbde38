package entity

import "time"

// ScanReport records one free-space scan run
type ScanReport struct {
	ID           string     `json:"id"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   time.Time  `json:"finished_at"`
	PendingCount int        `json:"pending_count"`
	DaysTotal    int        `json:"days_total"`
	DaysSkipped  int        `json:"days_skipped"`
	DaysFailed   int        `json:"days_failed"`
	MatchedA     int        `json:"matched_a"`
	MatchedB     int        `json:"matched_b"`
	Error        string     `json:"error,omitempty"`
	Days         []DayMatch `json:"days,omitempty"`
}

// Matched returns the total number of items confirmed present on the server.
func (r *ScanReport) Matched() int {
	return r.MatchedA + r.MatchedB
}

// AddDay appends a day result and updates the aggregate counters.
func (r *ScanReport) AddDay(day DayMatch) {
	r.Days = append(r.Days, day)
	switch day.Outcome {
	case DayOutcomeSkipped:
		r.DaysSkipped++
	case DayOutcomeFailed:
		r.DaysFailed++
	default:
		r.MatchedA += len(day.MatchesA)
		r.MatchedB += len(day.MatchesB)
	}
}

// Finish stamps the end time and derives the final status unless the run
// was already marked as failed.
func (r *ScanReport) Finish(now time.Time) {
	r.FinishedAt = now
	if r.Status == ScanStatusFailed || r.Status == ScanStatusSkipped {
		return
	}
	if r.DaysSkipped > 0 || r.DaysFailed > 0 {
		r.Status = ScanStatusPartial
		return
	}
	r.Status = ScanStatusCompleted
}
