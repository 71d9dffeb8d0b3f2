package domain

// ScoreBreakdown per-factor suitability of a medic for a booking
type ScoreBreakdown struct {
	Distance       float64 `json:"distance"`
	Utilization    float64 `json:"utilization"`
	Qualifications float64 `json:"qualifications"`
	Rating         float64 `json:"rating"`
	Territory      float64 `json:"territory"`
	Total          float64 `json:"total"`
}

// Sum adds up the five components
func (s ScoreBreakdown) Sum() float64 {
	return s.Distance + s.Utilization + s.Qualifications + s.Rating + s.Territory
}

// Candidate a medic annotated with scoring for one booking; never persisted directly
type Candidate struct {
	Medic              *Medic
	Score              ScoreBreakdown
	TravelMinutes      int
	DistanceMiles      float64
	TravelFallback     bool // estimator failed, conservative fallback used
	BookedDaysThisWeek int
}

// Snapshot converts the candidate into its persisted form
func (c *Candidate) Snapshot() CandidateSnapshot {
	return CandidateSnapshot{
		MedicID:           c.Medic.ID,
		Score:             c.Score.Total,
		Breakdown:         c.Score,
		TravelTimeMinutes: c.TravelMinutes,
		DistanceMiles:     c.DistanceMiles,
		TravelFallback:    c.TravelFallback,
	}
}

// TravelEstimate travel time and distance between two postcodes
type TravelEstimate struct {
	OriginPostcode      string
	DestinationPostcode string
	Minutes             int
	Miles               float64
}
