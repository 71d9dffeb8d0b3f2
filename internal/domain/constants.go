package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone wall-clock zone of booking shift times
const DefaultTimezone = "Europe/London"

// Working week used for utilization: five shift days
const WorkingDaysPerWeek = 5

// PostcodeSectorKeyLength number of leading postcode characters used as territory key
const PostcodeSectorKeyLength = 4

// Manual approval reasons written by the auto-assignment flow
const (
	ReasonNoCandidates        = "No available medics found"
	ReasonLowScore            = "Low auto-match score"
	ReasonCandidateTakenInRun = "Top candidate became unavailable during assignment"
)
