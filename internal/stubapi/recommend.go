package stubapi

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/dates"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
	"github.com/Abhilash001/gemini-crewai-travelplanner/pkg/currency"
	"github.com/Abhilash001/gemini-crewai-travelplanner/pkg/format"
)

const (
	noFlightsRecommendation = "Could not retrieve flights."
	noHotelsRecommendation  = "Could not retrieve hotels."
)

// Lower score = better value
func flightScore(f models.FlightInfo) float64 {
	return float64(f.Price) + float64(f.Duration)*25 + float64(len(f.Layovers))*4000
}

func recommendFlight(flights []models.FlightInfo) string {
	if len(flights) == 0 {
		return noFlightsRecommendation
	}

	best := flights[0]
	for _, f := range flights[1:] {
		if flightScore(f) < flightScore(best) {
			best = f
		}
	}

	return fmt.Sprintf("**Best option: %s** (%s, %s) for %s. It balances fare against total travel time better than the alternatives.",
		best.Airline, best.Stops, format.Duration(best.Duration), currency.FormatINR(float64(best.Price)))
}

func recommendHotel(group models.HotelsGrouped) string {
	if len(group.Hotels) == 0 {
		return noHotelsRecommendation
	}

	ranked := append([]models.HotelInfo(nil), group.Hotels...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating/ranked[i].Price > ranked[j].Rating/ranked[j].Price
	})
	best := ranked[0]

	return fmt.Sprintf("**%s** in %s (%s to %s): rated %.1f for %s in total.",
		best.Name, group.Location, group.CheckInDate, group.CheckOutDate, best.Rating, currency.FormatINR(best.Price))
}

// buildItinerary writes a day-by-day plan wrapped in a ```markdown fence, the
// way the hosted model returns it.
func buildItinerary(destination string, flights []models.FlightInfo, groups []models.HotelsGrouped, instructions string) string {
	var b strings.Builder
	b.WriteString("```markdown\n")
	fmt.Fprintf(&b, "# Trip to %s\n\n", destination)

	if len(flights) > 0 {
		f := flights[0]
		b.WriteString("## Flights\n")
		fmt.Fprintf(&b, "- Outbound: %s, departs %s, arrives %s (%s)\n", f.Airline, f.Departure, f.Arrival, format.Duration(f.Duration))
		if len(f.ReturnFlights) > 0 {
			r := f.ReturnFlights[0]
			fmt.Fprintf(&b, "- Return: %s, departs %s, arrives %s (%s)\n", r.Airline, r.Departure, r.Arrival, format.Duration(r.Duration))
		}
		b.WriteString("\n")
	}

	day := 1
	for _, g := range groups {
		start, err := dates.Parse(g.CheckInDate)
		if err != nil {
			continue
		}
		end, err := dates.Parse(g.CheckOutDate)
		if err != nil {
			continue
		}

		hotel := "your hotel"
		if len(g.Hotels) > 0 {
			hotel = g.Hotels[0].Name
		}

		fmt.Fprintf(&b, "## %s (%s to %s)\n", g.Location, g.CheckInDate, g.CheckOutDate)
		for d := start; d.Before(end); d = d.Add(24 * time.Hour) {
			switch {
			case d.Equal(start):
				fmt.Fprintf(&b, "- Day %d (%s): check in at %s and explore the neighbourhood\n", day, dates.Format(d), hotel)
			default:
				fmt.Fprintf(&b, "- Day %d (%s): sightseeing in %s\n", day, dates.Format(d), g.Location)
			}
			day++
		}
		b.WriteString("\n")
	}

	if instructions = strings.TrimSpace(instructions); instructions != "" {
		b.WriteString("## Notes\n")
		fmt.Fprintf(&b, "- %s\n", instructions)
	}

	b.WriteString("```")
	return b.String()
}
