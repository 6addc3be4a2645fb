// Package form holds the trip search criteria a user edits before submitting
// a search: the trip itself and an ordered chain of hotel stays.
package form

import (
	"time"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/dates"
)

// DefaultTripLength is the number of nights between the default outbound and
// return dates.
const DefaultTripLength = 7

type TripQuery struct {
	Origin       string `yaml:"origin" validate:"required"`
	Destination  string `yaml:"destination" validate:"required"`
	OutboundDate string `yaml:"outbound_date" validate:"required,tripdate"`
	ReturnDate   string `yaml:"return_date" validate:"required,tripdate"`
	Instructions string `yaml:"instructions"`
}

// HotelSegment is one stay of a multi-city itinerary. When UseTripDestination
// is set the stay is in the trip destination and Location may be empty.
type HotelSegment struct {
	Location           string `yaml:"location" validate:"required_unless=UseTripDestination true"`
	UseTripDestination bool   `yaml:"use_trip_destination"`
	CheckInDate        string `yaml:"check_in_date" validate:"required,tripdate"`
	CheckOutDate       string `yaml:"check_out_date" validate:"required,tripdate"`
}

// Form is the editable search state. Segments always holds at least one stay
// when built through New, Reset or Load.
type Form struct {
	Trip     TripQuery      `yaml:"trip"`
	Segments []HotelSegment `yaml:"hotels" validate:"min=1,dive"`
}

func New(now time.Time) *Form {
	f := &Form{}
	f.Reset(now)
	return f
}

// Reset restores the defaults: departure tomorrow, return a week after that,
// and a single stay in the trip destination spanning the whole trip.
func (f *Form) Reset(now time.Time) {
	outbound := dates.AddDays(now, 1)
	ret := dates.AddDays(now, 1+DefaultTripLength)

	f.Trip = TripQuery{
		OutboundDate: outbound,
		ReturnDate:   ret,
	}
	f.Segments = []HotelSegment{{
		UseTripDestination: true,
		CheckInDate:        outbound,
		CheckOutDate:       ret,
	}}
}

// AddSegment appends a stay that starts where the previous one ends and runs
// to the trip return date.
func (f *Form) AddSegment() {
	checkIn := f.Trip.OutboundDate
	if n := len(f.Segments); n > 0 {
		checkIn = f.Segments[n-1].CheckOutDate
	}

	f.Segments = append(f.Segments, HotelSegment{
		CheckInDate:  checkIn,
		CheckOutDate: f.Trip.ReturnDate,
	})
}

// RemoveSegment drops the stay at index. Removing the only stay or an index
// out of range does nothing.
func (f *Form) RemoveSegment(index int) {
	if len(f.Segments) <= 1 || index < 0 || index >= len(f.Segments) {
		return
	}
	f.Segments = append(f.Segments[:index], f.Segments[index+1:]...)
}

// SegmentLocation resolves where the stay at index takes place.
func (f *Form) SegmentLocation(index int) string {
	if index < 0 || index >= len(f.Segments) {
		return ""
	}
	s := f.Segments[index]
	if s.UseTripDestination {
		return f.Trip.Destination
	}
	return s.Location
}

// Validate checks field-level required-ness and date syntax. Cross-field date
// ordering is the planner's job.
func (f *Form) Validate() error {
	return defaultValidator.Struct(f)
}
