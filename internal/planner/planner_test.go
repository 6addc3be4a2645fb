package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/client"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/form"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
)

type recordedRequest struct {
	Path string
	Body json.RawMessage
}

// fakeAPI is an in-process search API that records every request and
// answers with whatever respond returns.
type fakeAPI struct {
	mu       sync.Mutex
	requests []recordedRequest
	respond  func(c echo.Context) error
}

func (f *fakeAPI) handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Path: c.Path(), Body: body})
	f.mu.Unlock()
	return f.respond(c)
}

func (f *fakeAPI) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func emptyResult() models.SearchResult {
	return models.SearchResult{
		Flights:                []models.FlightInfo{},
		Hotels:                 []models.HotelInfo{},
		HotelsGrouped:          []models.HotelsGrouped{},
		AIHotelRecommendations: []string{},
	}
}

func newFixture(t *testing.T) (*Planner, *fakeAPI) {
	t.Helper()

	api := &fakeAPI{respond: func(c echo.Context) error {
		return c.JSON(http.StatusOK, emptyResult())
	}}

	e := echo.New()
	for _, path := range []string{
		client.PathCompleteSearch,
		client.PathSearchFlights,
		client.PathSearchHotels,
		client.PathTravelPlan,
		client.PathGeneratePDF,
	} {
		e.POST(path, api.handle)
	}
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	p := New(validForm(), client.New(client.Config{BaseURL: srv.URL}))
	return p, api
}

func validForm() *form.Form {
	return &form.Form{
		Trip: form.TripQuery{
			Origin:       "BOM",
			Destination:  "NRT",
			OutboundDate: "2025-01-01",
			ReturnDate:   "2025-01-10",
		},
		Segments: []form.HotelSegment{{
			Location:     "Tokyo",
			CheckInDate:  "2025-01-01",
			CheckOutDate: "2025-01-10",
		}},
	}
}

func TestSubmitEndpointPerMode(t *testing.T) {
	tests := []struct {
		mode    Mode
		path    string
		wantTab string
	}{
		{ModeComplete, client.PathCompleteSearch, TabFlights},
		{ModeFlights, client.PathSearchFlights, TabFlights},
		{ModeHotels, client.PathSearchHotels, TabHotels},
		{ModePlan, client.PathTravelPlan, TabFlights},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			p, api := newFixture(t)
			p.SetMode(tt.mode)

			st := p.Submit(context.Background())

			reqs := api.recorded()
			require.Len(t, reqs, 1)
			assert.Equal(t, tt.path, reqs[0].Path)
			assert.False(t, st.Loading)
			assert.Empty(t, st.ErrorMessage)
			require.NotNil(t, st.Results)
			assert.Equal(t, tt.wantTab, st.ActiveTab)
		})
	}
}

func TestSubmitCompletePayload(t *testing.T) {
	p, api := newFixture(t)
	p.Form().Trip.Instructions = "Test instructions"

	p.Submit(context.Background())

	reqs := api.recorded()
	require.Len(t, reqs, 1)

	var body struct {
		FlightRequest models.FlightRequest `json:"flight_request"`
		HotelRequest  models.HotelRequest  `json:"hotel_request"`
	}
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	assert.Equal(t, models.FlightRequest{
		Origin:       "BOM",
		Destination:  "NRT",
		OutboundDate: "2025-01-01",
		ReturnDate:   "2025-01-10",
	}, body.FlightRequest)
	assert.Equal(t, "Tokyo", body.HotelRequest.Location)
}

func TestSubmitCompleteMultiCitySendsArray(t *testing.T) {
	p, api := newFixture(t)
	f := p.Form()
	f.Segments[0].CheckOutDate = "2025-01-05"
	f.Segments = append(f.Segments, form.HotelSegment{
		UseTripDestination: true,
		CheckInDate:        "2025-01-05",
		CheckOutDate:       "2025-01-10",
	})

	p.Submit(context.Background())

	reqs := api.recorded()
	require.Len(t, reqs, 1)

	var body struct {
		HotelRequest []models.HotelRequest `json:"hotel_request"`
	}
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	require.Len(t, body.HotelRequest, 2)
	assert.Equal(t, "Tokyo", body.HotelRequest[0].Location)
	assert.Equal(t, "NRT", body.HotelRequest[1].Location)
	assert.Equal(t, "2025-01-05", body.HotelRequest[1].CheckInDate)
}

func TestSubmitHotelsOneRequestPerSegment(t *testing.T) {
	p, api := newFixture(t)
	api.respond = func(c echo.Context) error {
		var req models.HotelRequest
		if err := c.Bind(&req); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, models.SearchResult{
			Hotels:                 []models.HotelInfo{{Name: req.Location + " Inn", Price: 100, Rating: 4.2, Location: req.Location}},
			AIHotelRecommendations: []string{"Stay at " + req.Location + " Inn"},
		})
	}
	p.SetMode(ModeHotels)

	f := p.Form()
	f.Segments = []form.HotelSegment{
		{Location: "Tokyo", CheckInDate: "2025-01-01", CheckOutDate: "2025-01-04"},
		{Location: "Kyoto", CheckInDate: "2025-01-04", CheckOutDate: "2025-01-07"},
		{Location: "Osaka", CheckInDate: "2025-01-07", CheckOutDate: "2025-01-10"},
	}

	st := p.Submit(context.Background())

	reqs := api.recorded()
	require.Len(t, reqs, 3)
	for _, r := range reqs {
		assert.Equal(t, client.PathSearchHotels, r.Path)
	}

	require.NotNil(t, st.Results)
	assert.Len(t, st.Results.Hotels, 3)
	require.Len(t, st.Results.HotelsGrouped, 3)
	assert.Equal(t, "Kyoto", st.Results.HotelsGrouped[1].Location)
	assert.Equal(t, "2025-01-04", st.Results.HotelsGrouped[1].CheckInDate)
	assert.Equal(t, "Kyoto Inn", st.Results.HotelsGrouped[1].Hotels[0].Name)
	assert.Len(t, st.Results.AIHotelRecommendations, 3)
	assert.Equal(t, TabHotels, st.ActiveTab)
}

func TestSubmitPlanPayload(t *testing.T) {
	p, api := newFixture(t)
	p.SetMode(ModePlan)
	p.Form().Trip.Instructions = "museums"

	p.Submit(context.Background())

	reqs := api.recorded()
	require.Len(t, reqs, 1)
	var body models.TravelPlanRequest
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	assert.Equal(t, models.TravelPlanRequest{
		SourceCity:      "BOM",
		DestinationCity: "NRT",
		FromDate:        "2025-01-01",
		ReturnDate:      "2025-01-10",
		Instructions:    "museums",
	}, body)
}

func TestSubmitUnknownModeSendsNothing(t *testing.T) {
	p, api := newFixture(t)
	p.SetMode("unknown")

	st := p.Submit(context.Background())

	assert.Empty(t, api.recorded())
	assert.False(t, st.Loading)
	assert.Nil(t, st.Results)
}

func TestSubmitValidationFailureSendsNothing(t *testing.T) {
	p, api := newFixture(t)
	p.Form().Trip.Origin = ""

	st := p.Submit(context.Background())

	assert.Equal(t, MsgRequiredFields, st.ErrorMessage)
	assert.False(t, st.Loading)
	assert.Empty(t, api.recorded())
}

func TestSubmitAPIErrorDetail(t *testing.T) {
	p, api := newFixture(t)
	api.respond = func(c echo.Context) error {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: "API error"})
	}
	p.SetMode(ModeFlights)

	st := p.Submit(context.Background())

	assert.Equal(t, "API error", st.ErrorMessage)
	assert.False(t, st.Loading)
	assert.Nil(t, st.Results)
}

func TestSubmitAPIErrorFallback(t *testing.T) {
	p, api := newFixture(t)
	api.respond = func(c echo.Context) error {
		return c.NoContent(http.StatusInternalServerError)
	}

	st := p.Submit(context.Background())

	assert.Equal(t, MsgSearchFailed, st.ErrorMessage)
	assert.False(t, st.Loading)
}

func TestSubmitHotelsStopsAtFirstFailure(t *testing.T) {
	p, api := newFixture(t)
	api.respond = func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: "No hotels found"})
	}
	p.SetMode(ModeHotels)
	p.Form().Segments = []form.HotelSegment{
		{Location: "Tokyo", CheckInDate: "2025-01-01", CheckOutDate: "2025-01-05"},
		{Location: "Kyoto", CheckInDate: "2025-01-05", CheckOutDate: "2025-01-10"},
	}

	st := p.Submit(context.Background())

	assert.Len(t, api.recorded(), 1)
	assert.Equal(t, "No hotels found", st.ErrorMessage)
	assert.Nil(t, st.Results)
}

func TestSubmitSuccessClearsPreviousErrorAndInitialisesToggles(t *testing.T) {
	p, api := newFixture(t)
	api.respond = func(c echo.Context) error {
		res := emptyResult()
		res.Flights = []models.FlightInfo{
			{Airline: "ANA", Price: 45210, Duration: 560},
			{Airline: "JAL", Price: 48900, Duration: 600},
		}
		res.Itinerary = "```markdown\n# Itinerary\n```"
		return c.JSON(http.StatusOK, res)
	}

	p.Form().Trip.Origin = ""
	require.Equal(t, MsgRequiredFields, p.Submit(context.Background()).ErrorMessage)

	p.Form().Trip.Origin = "BOM"
	st := p.Submit(context.Background())

	assert.Empty(t, st.ErrorMessage)
	assert.Equal(t, []bool{false, false}, st.ReturnFlightsOpen)
	assert.Equal(t, "```markdown\n# Itinerary\n```", st.Results.Itinerary)
	assert.Equal(t, "# Itinerary", p.ItineraryMarkdown())

	p.ToggleReturnFlights(1)
	p.ToggleReturnFlights(7)
	assert.Equal(t, []bool{false, true}, p.State().ReturnFlightsOpen)
}

func TestSubmitNotifiesObservers(t *testing.T) {
	p, _ := newFixture(t)

	var seen []State
	cancel := p.Subscribe(func(s State) { seen = append(seen, s) })

	p.Submit(context.Background())

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.Nil(t, seen[0].Results)
	assert.False(t, seen[1].Loading)
	assert.NotNil(t, seen[1].Results)

	cancel()
	p.Submit(context.Background())
	assert.Len(t, seen, 2)
}

func TestSubmitClearsResultsWhileLoading(t *testing.T) {
	p, _ := newFixture(t)
	p.Submit(context.Background())
	require.NotNil(t, p.State().Results)

	var loading *State
	p.Subscribe(func(s State) {
		if s.Loading && loading == nil {
			loading = &s
		}
	})
	p.Submit(context.Background())

	require.NotNil(t, loading)
	assert.Nil(t, loading.Results)
	assert.Nil(t, loading.ReturnFlightsOpen)
}

func TestStateSnapshotIsolated(t *testing.T) {
	p, api := newFixture(t)
	api.respond = func(c echo.Context) error {
		res := emptyResult()
		res.Flights = []models.FlightInfo{{Airline: "ANA"}}
		return c.JSON(http.StatusOK, res)
	}
	st := p.Submit(context.Background())

	st.ReturnFlightsOpen[0] = true
	assert.Equal(t, []bool{false}, p.State().ReturnFlightsOpen)
}

func TestItineraryMarkdownWithoutResults(t *testing.T) {
	p, _ := newFixture(t)
	assert.Empty(t, p.ItineraryMarkdown())

	var buf bytes.Buffer
	name, err := p.ExportMarkdown(&buf)
	assert.NoError(t, err)
	assert.Empty(t, name)
	assert.Zero(t, buf.Len())
}
