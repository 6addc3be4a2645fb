package models

// SearchResult is the response body shared by every search endpoint.
type SearchResult struct {
	Flights                []FlightInfo    `json:"flights"`
	Hotels                 []HotelInfo     `json:"hotels"`
	HotelsGrouped          []HotelsGrouped `json:"hotels_grouped"`
	AIFlightRecommendation string          `json:"ai_flight_recommendation"`
	AIHotelRecommendations []string        `json:"ai_hotel_recommendations"`
	Itinerary              string          `json:"itinerary"`
}

// ErrorResponse is the error body of the search API. Detail is surfaced to
// users verbatim.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
