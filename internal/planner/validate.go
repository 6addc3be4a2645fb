package planner

import (
	"fmt"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/dates"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/form"
)

const (
	MsgRequiredFields    = "Please fill in all required fields."
	MsgReturnBeforeStart = "Return date must be after departure date."
	MsgFirstCheckIn      = "First hotel check-in date must match the departure flight date."
	MsgLastCheckOut      = "Last hotel check-out date must match the return flight date."
	MsgSearchFailed      = "An error occurred while searching."
)

func chainMismatch(i int) string {
	return fmt.Sprintf("Hotel %d check-out date must match Hotel %d check-in date.", i, i+1)
}

// Validate runs the submission checks in order and returns the message of
// the first one that fails, or "" when the form may be submitted.
func Validate(f *form.Form) string {
	if err := f.Validate(); err != nil {
		return MsgRequiredFields
	}

	trip := f.Trip
	if !dates.Before(trip.OutboundDate, trip.ReturnDate) {
		return MsgReturnBeforeStart
	}

	segments := f.Segments
	if !dates.Same(segments[0].CheckInDate, trip.OutboundDate) {
		return MsgFirstCheckIn
	}
	if !dates.Same(segments[len(segments)-1].CheckOutDate, trip.ReturnDate) {
		return MsgLastCheckOut
	}

	for i := 0; i < len(segments)-1; i++ {
		if !dates.Same(segments[i].CheckOutDate, segments[i+1].CheckInDate) {
			return chainMismatch(i + 1)
		}
	}

	// An inverted stay reports the first check-in message whichever stay it is.
	for _, s := range segments {
		if !dates.Before(s.CheckInDate, s.CheckOutDate) {
			return MsgFirstCheckIn
		}
	}

	return ""
}
