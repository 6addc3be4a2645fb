package models

type FlightLeg struct {
	DepartureAirport string `json:"departure_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalAirport   string `json:"arrival_airport"`
	ArrivalTime      string `json:"arrival_time"`
	Airline          string `json:"airline"`
	AirlineLogo      string `json:"airline_logo"`
	TravelClass      string `json:"travel_class"`
	FlightNumber     string `json:"flight_number"`
	Duration         int    `json:"duration"`
}

type Layover struct {
	Airport   string `json:"airport"`
	AirportID string `json:"airport_id"`
	Duration  int    `json:"duration"`
	Overnight bool   `json:"overnight,omitempty"`
}

// FlightInfo is one priced itinerary option. ReturnFlights holds the return
// options the search API attaches to round-trip offers.
type FlightInfo struct {
	Airline       string       `json:"airline"`
	Price         int          `json:"price"`
	Duration      int          `json:"duration"`
	Stops         string       `json:"stops"`
	Departure     string       `json:"departure"`
	Arrival       string       `json:"arrival"`
	TravelClass   string       `json:"travel_class"`
	ReturnDate    string       `json:"return_date"`
	AirlineLogo   string       `json:"airline_logo"`
	Legs          []FlightLeg  `json:"legs,omitempty"`
	Layovers      []Layover    `json:"layovers,omitempty"`
	ReturnFlights []FlightInfo `json:"return_flights,omitempty"`
}
