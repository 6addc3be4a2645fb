package stubapi

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/client"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/form"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/planner"
)

func TestPlannerAgainstStub(t *testing.T) {
	srv := httptest.NewServer(newTestEcho(t, nil))
	t.Cleanup(srv.Close)

	f := &form.Form{
		Trip: form.TripQuery{Origin: "BOM", Destination: "NRT", OutboundDate: "2025-01-01", ReturnDate: "2025-01-10"},
		Segments: []form.HotelSegment{
			{Location: "Tokyo", CheckInDate: "2025-01-01", CheckOutDate: "2025-01-06"},
			{Location: "Kyoto", CheckInDate: "2025-01-06", CheckOutDate: "2025-01-10"},
		},
	}
	p := planner.New(f, client.New(client.Config{BaseURL: srv.URL}))

	st := p.Submit(context.Background())
	require.Empty(t, st.ErrorMessage)
	require.NotNil(t, st.Results)
	assert.Len(t, st.Results.HotelsGrouped, 2)
	assert.Len(t, st.ReturnFlightsOpen, len(st.Results.Flights))

	md := p.ItineraryMarkdown()
	assert.Contains(t, md, "## Kyoto (2025-01-06 to 2025-01-10)")
	assert.NotContains(t, md, "```")

	var out bytes.Buffer
	name, err := p.ExportPDF(context.Background(), &out)
	require.NoError(t, err)
	assert.Equal(t, "travel_itinerary_NRT_2025-01-01.pdf", name)
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))

	p.SetMode(planner.ModeHotels)
	st = p.Submit(context.Background())
	require.Empty(t, st.ErrorMessage)
	assert.Equal(t, planner.TabHotels, st.ActiveTab)
	assert.Len(t, st.Results.HotelsGrouped, 2)
	assert.Empty(t, st.Results.Flights)
}

func TestPlannerSurfacesStubDetail(t *testing.T) {
	srv := httptest.NewServer(newTestEcho(t, nil))
	t.Cleanup(srv.Close)

	f := &form.Form{
		Trip: form.TripQuery{Origin: "Mumbai", Destination: "NRT", OutboundDate: "2025-01-01", ReturnDate: "2025-01-10"},
		Segments: []form.HotelSegment{
			{UseTripDestination: true, CheckInDate: "2025-01-01", CheckOutDate: "2025-01-10"},
		},
	}
	p := planner.New(f, client.New(client.Config{BaseURL: srv.URL}))
	p.SetMode(planner.ModeFlights)

	st := p.Submit(context.Background())
	assert.Equal(t, string(ErrInvalidAirport), st.ErrorMessage)
	assert.False(t, st.Loading)
}
