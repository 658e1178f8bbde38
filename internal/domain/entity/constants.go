package entity

// Scan status constants for ScanReport
const (
	ScanStatusSkipped   = "SKIPPED"   // bridge cannot run a free-space scan
	ScanStatusCompleted = "COMPLETED" // every day group was reconciled
	ScanStatusPartial   = "PARTIAL"   // at least one day was skipped or failed
	ScanStatusFailed    = "FAILED"    // pending listing could not be fetched
)

// Day outcome constants for DayMatch
const (
	DayOutcomeReconciled = "RECONCILED"
	DayOutcomeSkipped    = "SKIPPED" // server answered with a non-2xx status
	DayOutcomeFailed     = "FAILED"  // transport or decode error
)
