package models

import "strings"

type FlightRequest struct {
	Origin       string `json:"origin"`
	Destination  string `json:"destination"`
	OutboundDate string `json:"outbound_date"`
	ReturnDate   string `json:"return_date"`
}

func (r *FlightRequest) Validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return ErrMissingOrigin
	}
	if strings.TrimSpace(r.Destination) == "" {
		return ErrMissingDestination
	}
	if r.OutboundDate == "" {
		return ErrMissingOutboundDate
	}
	if r.ReturnDate == "" {
		return ErrMissingReturnDate
	}
	return nil
}

type HotelRequest struct {
	Location     string `json:"location"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
}

func (r *HotelRequest) Validate() error {
	if strings.TrimSpace(r.Location) == "" {
		return ErrMissingLocation
	}
	if r.CheckInDate == "" || r.CheckOutDate == "" {
		return ErrMissingStayDates
	}
	return nil
}

// CompleteSearchRequest is the combined flight and hotel search payload.
// HotelRequest carries either a single HotelRequest or a []HotelRequest.
type CompleteSearchRequest struct {
	FlightRequest FlightRequest `json:"flight_request"`
	HotelRequest  any           `json:"hotel_request,omitempty"`
}

type TravelPlanRequest struct {
	SourceCity      string `json:"source_city"`
	DestinationCity string `json:"destination_city"`
	FromDate        string `json:"from_date"`
	ReturnDate      string `json:"return_date"`
	Instructions    string `json:"instructions"`
}

type PDFRequest struct {
	Markdown string `json:"markdown"`
	Title    string `json:"title"`
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin       ValidationError = "origin is required"
	ErrMissingDestination  ValidationError = "destination is required"
	ErrMissingOutboundDate ValidationError = "outbound_date is required"
	ErrMissingReturnDate   ValidationError = "return_date is required"
	ErrMissingLocation     ValidationError = "location is required"
	ErrMissingStayDates    ValidationError = "check_in_date and check_out_date are required"
	ErrEmptyHotelRequest   ValidationError = "at least one hotel request is required"
	ErrMissingMarkdown     ValidationError = "markdown is required"
)
