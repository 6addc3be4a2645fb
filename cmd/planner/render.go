package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/planner"
	"github.com/Abhilash001/gemini-crewai-travelplanner/pkg/currency"
	"github.com/Abhilash001/gemini-crewai-travelplanner/pkg/format"
)

func render(w io.Writer, st planner.State, itinerary string) {
	res := st.Results
	if res == nil {
		return
	}

	if st.ActiveTab == planner.TabFlights || len(res.Flights) > 0 {
		renderFlights(w, res.Flights, st.ReturnFlightsOpen)
		if res.AIFlightRecommendation != "" {
			fmt.Fprintf(w, "\nRecommendation: %s\n", res.AIFlightRecommendation)
		}
	}

	if len(res.HotelsGrouped) > 0 {
		for _, g := range res.HotelsGrouped {
			fmt.Fprintf(w, "\n== Hotels in %s (%s to %s) ==\n", g.Location, g.CheckInDate, g.CheckOutDate)
			renderHotels(w, g.Hotels)
		}
	} else if len(res.Hotels) > 0 {
		fmt.Fprintln(w, "\n== Hotels ==")
		renderHotels(w, res.Hotels)
	}
	for _, rec := range res.AIHotelRecommendations {
		fmt.Fprintf(w, "\nRecommendation: %s\n", rec)
	}

	if itinerary != "" {
		fmt.Fprintf(w, "\n== Itinerary ==\n%s\n", itinerary)
	}
}

func renderFlights(w io.Writer, flights []models.FlightInfo, open []bool) {
	fmt.Fprintln(w, "== Flights ==")
	if len(flights) == 0 {
		fmt.Fprintln(w, "No flights found.")
		return
	}

	for i, f := range flights {
		fmt.Fprintf(w, "%d. %s  %s  %s  %s\n", i+1, f.Airline, currency.FormatINR(float64(f.Price)), format.Duration(f.Duration), f.Stops)
		renderLegs(w, f, "   ")

		if i < len(open) && open[i] {
			for _, r := range f.ReturnFlights {
				fmt.Fprintf(w, "   Return: %s  %s  %s\n", r.Airline, format.Duration(r.Duration), r.Stops)
				renderLegs(w, r, "     ")
			}
		}
	}
}

func renderLegs(w io.Writer, f models.FlightInfo, indent string) {
	for j, leg := range f.Legs {
		fmt.Fprintf(w, "%s%s %s -> %s %s (%s, %s)\n", indent,
			leg.DepartureAirport, leg.DepartureTime, leg.ArrivalAirport, leg.ArrivalTime,
			leg.FlightNumber, format.Duration(leg.Duration))
		if j < len(f.Layovers) {
			l := f.Layovers[j]
			note := ""
			if l.Overnight {
				note = ", overnight"
			}
			fmt.Fprintf(w, "%s  layover %s %s%s\n", indent, l.AirportID, format.Duration(l.Duration), note)
		}
	}
}

func renderHotels(w io.Writer, hotels []models.HotelInfo) {
	if len(hotels) == 0 {
		fmt.Fprintln(w, "No hotels found.")
		return
	}
	width := 0
	for _, h := range hotels {
		if len(h.Name) > width {
			width = len(h.Name)
		}
	}
	for _, h := range hotels {
		fmt.Fprintf(w, "- %s%s  %.1f  %s\n", h.Name, strings.Repeat(" ", width-len(h.Name)), h.Rating, currency.FormatINR(h.Price))
	}
}
