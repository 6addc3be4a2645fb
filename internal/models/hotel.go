package models

type HotelInfo struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Location string  `json:"location"`
	Link     string  `json:"link"`
}

// HotelsGrouped is the hotel list for one stay of a multi-city itinerary.
type HotelsGrouped struct {
	Location     string      `json:"location"`
	CheckInDate  string      `json:"check_in_date"`
	CheckOutDate string      `json:"check_out_date"`
	Hotels       []HotelInfo `json:"hotels"`
}
