package traveltime

// EstimateResponse ответ сервиса оценки времени в пути
type EstimateResponse struct {
	TravelTimeMinutes int     `json:"travel_time_minutes"`
	DistanceMiles     float64 `json:"distance_miles"`
}
