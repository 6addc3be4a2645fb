package planner

import (
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/client"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/form"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
)

type Mode string

const (
	ModeComplete Mode = "complete"
	ModeFlights  Mode = "flights"
	ModeHotels   Mode = "hotels"
	ModePlan     Mode = "plan"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeComplete, ModeFlights, ModeHotels, ModePlan:
		return true
	}
	return false
}

const (
	TabFlights = "flights"
	TabHotels  = "hotels"
)

func tabFor(m Mode) string {
	if m == ModeHotels {
		return TabHotels
	}
	return TabFlights
}

// call is one POST a submission issues.
type call struct {
	path    string
	payload any
	hotel   *models.HotelRequest
}

// buildCalls maps the form to the requests of mode. It reports false for an
// unknown mode.
func buildCalls(mode Mode, f *form.Form) ([]call, bool) {
	switch mode {
	case ModeComplete:
		hotels := hotelRequests(f)
		var hotelPayload any = hotels
		if len(hotels) == 1 {
			hotelPayload = hotels[0]
		}
		return []call{{
			path: client.PathCompleteSearch,
			payload: models.CompleteSearchRequest{
				FlightRequest: flightRequest(f),
				HotelRequest:  hotelPayload,
			},
		}}, true

	case ModeFlights:
		return []call{{path: client.PathSearchFlights, payload: flightRequest(f)}}, true

	case ModeHotels:
		hotels := hotelRequests(f)
		calls := make([]call, len(hotels))
		for i := range hotels {
			calls[i] = call{path: client.PathSearchHotels, payload: hotels[i], hotel: &hotels[i]}
		}
		return calls, true

	case ModePlan:
		return []call{{
			path: client.PathTravelPlan,
			payload: models.TravelPlanRequest{
				SourceCity:      f.Trip.Origin,
				DestinationCity: f.Trip.Destination,
				FromDate:        f.Trip.OutboundDate,
				ReturnDate:      f.Trip.ReturnDate,
				Instructions:    f.Trip.Instructions,
			},
		}}, true

	default:
		return nil, false
	}
}

func flightRequest(f *form.Form) models.FlightRequest {
	return models.FlightRequest{
		Origin:       f.Trip.Origin,
		Destination:  f.Trip.Destination,
		OutboundDate: f.Trip.OutboundDate,
		ReturnDate:   f.Trip.ReturnDate,
	}
}

func hotelRequests(f *form.Form) []models.HotelRequest {
	out := make([]models.HotelRequest, len(f.Segments))
	for i, s := range f.Segments {
		out[i] = models.HotelRequest{
			Location:     f.SegmentLocation(i),
			CheckInDate:  s.CheckInDate,
			CheckOutDate: s.CheckOutDate,
		}
	}
	return out
}

// mergeHotelResults folds per-stay hotel responses into one result. A
// response without its own grouping is grouped under the stay it was for.
func mergeHotelResults(calls []call, results []models.SearchResult) *models.SearchResult {
	merged := &models.SearchResult{}
	for i, r := range results {
		merged.Flights = append(merged.Flights, r.Flights...)
		merged.Hotels = append(merged.Hotels, r.Hotels...)
		merged.AIHotelRecommendations = append(merged.AIHotelRecommendations, r.AIHotelRecommendations...)

		if len(r.HotelsGrouped) > 0 {
			merged.HotelsGrouped = append(merged.HotelsGrouped, r.HotelsGrouped...)
		} else if h := calls[i].hotel; h != nil {
			merged.HotelsGrouped = append(merged.HotelsGrouped, models.HotelsGrouped{
				Location:     h.Location,
				CheckInDate:  h.CheckInDate,
				CheckOutDate: h.CheckOutDate,
				Hotels:       r.Hotels,
			})
		}

		if merged.AIFlightRecommendation == "" {
			merged.AIFlightRecommendation = r.AIFlightRecommendation
		}
		if r.Itinerary != "" {
			if merged.Itinerary != "" {
				merged.Itinerary += "\n\n"
			}
			merged.Itinerary += r.Itinerary
		}
	}
	return merged
}
