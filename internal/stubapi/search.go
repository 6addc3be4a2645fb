package stubapi

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
)

// searchHotelGroups looks up every stay concurrently. Any failing stay fails
// the whole search.
func searchHotelGroups(ctx context.Context, catalog *Catalog, reqs []models.HotelRequest) ([]models.HotelsGrouped, error) {
	groups := make([]models.HotelsGrouped, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			hotels, err := catalog.Hotels(gctx, req)
			if err != nil {
				return err
			}
			groups[i] = models.HotelsGrouped{
				Location:     req.Location,
				CheckInDate:  req.CheckInDate,
				CheckOutDate: req.CheckOutDate,
				Hotels:       hotels,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return groups, nil
}

func hotelResult(groups []models.HotelsGrouped) *models.SearchResult {
	result := &models.SearchResult{
		Flights:                []models.FlightInfo{},
		HotelsGrouped:          groups,
		AIHotelRecommendations: make([]string, 0, len(groups)),
	}
	for _, g := range groups {
		result.Hotels = append(result.Hotels, g.Hotels...)
		result.AIHotelRecommendations = append(result.AIHotelRecommendations, recommendHotel(g))
	}
	return result
}

// completeSearch runs the flight and hotel searches side by side. Either may
// fail without failing the other; the itinerary is only written when both
// produced results.
func completeSearch(ctx context.Context, catalog *Catalog, fr models.FlightRequest, hrs []models.HotelRequest, instructions string) *models.SearchResult {
	var (
		flights   []models.FlightInfo
		groups    []models.HotelsGrouped
		flightErr error
		hotelErr  error
	)

	var g errgroup.Group
	g.Go(func() error {
		flights, flightErr = catalog.Flights(ctx, fr)
		return nil
	})
	g.Go(func() error {
		groups, hotelErr = searchHotelGroups(ctx, catalog, hrs)
		return nil
	})
	_ = g.Wait()

	result := &models.SearchResult{Flights: []models.FlightInfo{}}
	if flightErr != nil {
		log.Printf("Flight search failed: %v", flightErr)
		result.AIFlightRecommendation = noFlightsRecommendation
	} else {
		result.Flights = flights
		result.AIFlightRecommendation = recommendFlight(flights)
	}

	if hotelErr != nil {
		log.Printf("Hotel search failed: %v", hotelErr)
		result.AIHotelRecommendations = []string{noHotelsRecommendation}
	} else {
		hotels := hotelResult(groups)
		result.Hotels = hotels.Hotels
		result.HotelsGrouped = hotels.HotelsGrouped
		result.AIHotelRecommendations = hotels.AIHotelRecommendations
	}

	if len(result.Flights) > 0 && len(result.Hotels) > 0 {
		result.Itinerary = buildItinerary(fr.Destination, result.Flights, result.HotelsGrouped, instructions)
	}

	return result
}
