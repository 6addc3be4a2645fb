// Package stubapi is a local stand-in for the travel search API. It answers
// every endpoint the planner uses from an embedded catalogue so the client
// can be developed and tested without SerpAPI, Booking.com or an LLM.
package stubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/dates"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/stubapi/data"
)

type SearchError string

func (e SearchError) Error() string {
	return string(e)
}

const (
	ErrInvalidAirport SearchError = "Airport codes must be three-letter IATA codes"
	ErrInvalidDates   SearchError = "Dates must be formatted as YYYY-MM-DD"
	ErrDateOrder      SearchError = "Return date must be after departure date"
	ErrStayOrder      SearchError = "Check-out date must be after check-in date"
	ErrSameAirport    SearchError = "Origin and destination must differ"
)

var iataCode = regexp.MustCompile(`^[A-Za-z]{3}$`)

type carrier struct {
	Airline       string `json:"airline"`
	Code          string `json:"code"`
	AirlineLogo   string `json:"airline_logo"`
	TravelClass   string `json:"travel_class"`
	BasePrice     int    `json:"base_price"`
	DepartureTime string `json:"departure_time"`
	FlightMinutes int    `json:"flight_minutes"`
	Via           *struct {
		Airport        string `json:"airport"`
		AirportID      string `json:"airport_id"`
		LayoverMinutes int    `json:"layover_minutes"`
		Overnight      bool   `json:"overnight"`
	} `json:"via"`
}

type property struct {
	Name         string  `json:"name"`
	NightlyPrice float64 `json:"nightly_price"`
	Rating       float64 `json:"rating"`
}

type Catalog struct {
	carriers   []carrier
	properties []property
}

func NewCatalog() (*Catalog, error) {
	var flights struct {
		Carriers []carrier `json:"carriers"`
	}
	if err := json.Unmarshal(data.FlightsData, &flights); err != nil {
		return nil, err
	}

	var hotels struct {
		Properties []property `json:"properties"`
	}
	if err := json.Unmarshal(data.HotelsData, &hotels); err != nil {
		return nil, err
	}

	return &Catalog{carriers: flights.Carriers, properties: hotels.Properties}, nil
}

// Flights returns one round-trip offer per carrier for the route, each with
// its return option attached.
func (c *Catalog) Flights(ctx context.Context, req models.FlightRequest) ([]models.FlightInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	origin := strings.ToUpper(strings.TrimSpace(req.Origin))
	destination := strings.ToUpper(strings.TrimSpace(req.Destination))
	if !iataCode.MatchString(origin) || !iataCode.MatchString(destination) {
		return nil, ErrInvalidAirport
	}
	if origin == destination {
		return nil, ErrSameAirport
	}

	outbound, err := dates.Parse(req.OutboundDate)
	if err != nil {
		return nil, ErrInvalidDates
	}
	ret, err := dates.Parse(req.ReturnDate)
	if err != nil {
		return nil, ErrInvalidDates
	}
	if !outbound.Before(ret) {
		return nil, ErrDateOrder
	}

	offset := routeOffset(origin, destination)
	flights := make([]models.FlightInfo, 0, len(c.carriers))
	for _, cr := range c.carriers {
		f := c.normalize(cr, origin, destination, outbound, offset)
		f.ReturnDate = dates.Format(ret)

		back := c.normalize(cr, destination, origin, ret, offset)
		back.ReturnDate = f.ReturnDate
		f.ReturnFlights = []models.FlightInfo{back}

		flights = append(flights, f)
	}

	return flights, nil
}

func (c *Catalog) normalize(cr carrier, from, to string, day time.Time, offset int) models.FlightInfo {
	depTime, err := time.Parse("15:04", cr.DepartureTime)
	if err != nil {
		depTime = time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)
	}
	dep := day.Add(time.Duration(depTime.Hour())*time.Hour + time.Duration(depTime.Minute())*time.Minute)

	var legs []models.FlightLeg
	var layovers []models.Layover
	total := cr.FlightMinutes
	stops := "Nonstop"

	if cr.Via == nil {
		legs = []models.FlightLeg{c.leg(cr, from, to, dep, cr.FlightMinutes, 1)}
	} else {
		first := cr.FlightMinutes * 2 / 5
		second := cr.FlightMinutes - first
		connect := dep.Add(time.Duration(first+cr.Via.LayoverMinutes) * time.Minute)

		legs = []models.FlightLeg{
			c.leg(cr, from, cr.Via.AirportID, dep, first, 1),
			c.leg(cr, cr.Via.AirportID, to, connect, second, 2),
		}
		layovers = []models.Layover{{
			Airport:   cr.Via.Airport,
			AirportID: cr.Via.AirportID,
			Duration:  cr.Via.LayoverMinutes,
			Overnight: cr.Via.Overnight,
		}}
		total += cr.Via.LayoverMinutes
		stops = "1 stop"
	}

	return models.FlightInfo{
		Airline:     cr.Airline,
		Price:       cr.BasePrice + offset,
		Duration:    total,
		Stops:       stops,
		Departure:   legs[0].DepartureAirport + " at " + legs[0].DepartureTime,
		Arrival:     legs[len(legs)-1].ArrivalAirport + " at " + legs[len(legs)-1].ArrivalTime,
		TravelClass: cr.TravelClass,
		AirlineLogo: cr.AirlineLogo,
		Legs:        legs,
		Layovers:    layovers,
	}
}

func (c *Catalog) leg(cr carrier, from, to string, dep time.Time, minutes, n int) models.FlightLeg {
	const layout = "2006-01-02 15:04"
	return models.FlightLeg{
		DepartureAirport: from,
		DepartureTime:    dep.Format(layout),
		ArrivalAirport:   to,
		ArrivalTime:      dep.Add(time.Duration(minutes) * time.Minute).Format(layout),
		Airline:          cr.Airline,
		AirlineLogo:      cr.AirlineLogo,
		TravelClass:      cr.TravelClass,
		FlightNumber:     fmt.Sprintf("%s %d", cr.Code, 100+n*11+len(from)*len(to)),
		Duration:         minutes,
	}
}

// routeOffset spreads prices across routes deterministically.
func routeOffset(origin, destination string) int {
	sum := 0
	for _, b := range []byte(origin + destination) {
		sum += int(b)
	}
	return (sum % 7) * 500
}

// Hotels prices every catalogue property for the stay in location.
func (c *Catalog) Hotels(ctx context.Context, req models.HotelRequest) ([]models.HotelInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		return nil, models.ErrMissingLocation
	}

	checkIn, err := dates.Parse(req.CheckInDate)
	if err != nil {
		return nil, ErrInvalidDates
	}
	checkOut, err := dates.Parse(req.CheckOutDate)
	if err != nil {
		return nil, ErrInvalidDates
	}
	if !checkIn.Before(checkOut) {
		return nil, ErrStayOrder
	}
	nights := int(checkOut.Sub(checkIn).Hours() / 24)

	hotels := make([]models.HotelInfo, 0, len(c.properties))
	for _, p := range c.properties {
		name := fmt.Sprintf(p.Name, location)
		hotels = append(hotels, models.HotelInfo{
			Name:     name,
			Price:    p.NightlyPrice * float64(nights),
			Rating:   p.Rating,
			Location: location,
			Link:     "https://www.booking.com/searchresults.html?ss=" + url.QueryEscape(name),
		})
	}

	return hotels, nil
}
