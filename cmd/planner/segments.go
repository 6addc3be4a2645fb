package main

import (
	"fmt"
	"strings"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/form"
)

// segmentsFlag collects repeated -hotel LOCATION,CHECK_IN,CHECK_OUT values.
type segmentsFlag []form.HotelSegment

func (s *segmentsFlag) String() string {
	parts := make([]string, len(*s))
	for i, seg := range *s {
		parts[i] = seg.Location + "," + seg.CheckInDate + "," + seg.CheckOutDate
	}
	return strings.Join(parts, " ")
}

func (s *segmentsFlag) Set(v string) error {
	fields := strings.Split(v, ",")
	if len(fields) != 3 {
		return fmt.Errorf("hotel stay %q: want LOCATION,CHECK_IN,CHECK_OUT", v)
	}

	location := strings.TrimSpace(fields[0])
	*s = append(*s, form.HotelSegment{
		Location:           location,
		UseTripDestination: location == "",
		CheckInDate:        strings.TrimSpace(fields[1]),
		CheckOutDate:       strings.TrimSpace(fields[2]),
	})
	return nil
}
