package stubapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/cache"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/client"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/pdf"
)

type Handler struct {
	catalog *Catalog
	cache   cache.Cache
}

func NewHandler(catalog *Catalog, c cache.Cache) *Handler {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Handler{
		catalog: catalog,
		cache:   c,
	}
}

// Register mounts the search API routes on e.
func Register(e *echo.Echo, h *Handler) {
	e.POST(client.PathSearchFlights, h.SearchFlights)
	e.POST(client.PathSearchHotels, h.SearchHotels)
	e.POST(client.PathCompleteSearch, h.CompleteSearch)
	e.POST(client.PathTravelPlan, h.TravelPlan)
	e.POST(client.PathGeneratePDF, h.GeneratePDF)
	e.GET("/health", HealthHandler)
}

func (h *Handler) SearchFlights(c echo.Context) error {
	var req models.FlightRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Failed to parse request body: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return unprocessable(c, err)
	}

	return h.cached(c, req, func() (*models.SearchResult, error) {
		flights, err := h.catalog.Flights(c.Request().Context(), req)
		if err != nil {
			return nil, err
		}
		if len(flights) == 0 {
			return nil, errNoFlights
		}
		return &models.SearchResult{
			Flights:                flights,
			AIFlightRecommendation: recommendFlight(flights),
		}, nil
	})
}

func (h *Handler) SearchHotels(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return detail(c, http.StatusBadRequest, "Failed to read request body")
	}

	reqs, err := decodeHotelRequests(body)
	if err != nil {
		return detail(c, http.StatusBadRequest, "Failed to parse request body: "+err.Error())
	}
	if len(reqs) == 0 {
		return detail(c, http.StatusBadRequest, models.ErrEmptyHotelRequest.Error())
	}
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return unprocessable(c, err)
		}
	}

	return h.cached(c, reqs, func() (*models.SearchResult, error) {
		groups, err := searchHotelGroups(c.Request().Context(), h.catalog, reqs)
		if err != nil {
			return nil, err
		}
		return hotelResult(groups), nil
	})
}

type completeSearchBody struct {
	FlightRequest *models.FlightRequest `json:"flight_request"`
	HotelRequest  json.RawMessage       `json:"hotel_request"`
}

func (h *Handler) CompleteSearch(c echo.Context) error {
	var body completeSearchBody
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return detail(c, http.StatusBadRequest, "Failed to parse request body: "+err.Error())
	}
	if body.FlightRequest == nil {
		return unprocessable(c, models.ErrMissingOrigin)
	}
	fr := *body.FlightRequest
	if err := fr.Validate(); err != nil {
		return unprocessable(c, err)
	}

	hrs, err := decodeHotelRequests(body.HotelRequest)
	if err != nil {
		return detail(c, http.StatusBadRequest, "Failed to parse hotel_request: "+err.Error())
	}
	if len(hrs) == 0 {
		hrs = []models.HotelRequest{{
			Location:     fr.Destination,
			CheckInDate:  fr.OutboundDate,
			CheckOutDate: fr.ReturnDate,
		}}
	}

	key := struct {
		Flight models.FlightRequest  `json:"flight"`
		Hotels []models.HotelRequest `json:"hotels"`
	}{fr, hrs}

	return h.cached(c, key, func() (*models.SearchResult, error) {
		return completeSearch(c.Request().Context(), h.catalog, fr, hrs, ""), nil
	})
}

func (h *Handler) TravelPlan(c echo.Context) error {
	var req models.TravelPlanRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Failed to parse request body: "+err.Error())
	}

	fr := models.FlightRequest{
		Origin:       req.SourceCity,
		Destination:  req.DestinationCity,
		OutboundDate: req.FromDate,
		ReturnDate:   req.ReturnDate,
	}
	if err := fr.Validate(); err != nil {
		return unprocessable(c, err)
	}
	hrs := []models.HotelRequest{{
		Location:     req.DestinationCity,
		CheckInDate:  req.FromDate,
		CheckOutDate: req.ReturnDate,
	}}

	return h.cached(c, req, func() (*models.SearchResult, error) {
		return completeSearch(c.Request().Context(), h.catalog, fr, hrs, req.Instructions), nil
	})
}

func (h *Handler) GeneratePDF(c echo.Context) error {
	var req models.PDFRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusBadRequest, "Failed to parse request body: "+err.Error())
	}
	if req.Markdown == "" {
		return detail(c, http.StatusBadRequest, models.ErrMissingMarkdown.Error())
	}
	title := req.Title
	if title == "" {
		title = "travel_itinerary"
	}

	out, err := pdf.Render(req.Markdown, title)
	if err != nil {
		log.Printf("PDF generation failed: %v", err)
		return detail(c, http.StatusInternalServerError, "PDF generation error: "+err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+title+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", out)
}

type notFoundError string

func (e notFoundError) Error() string {
	return string(e)
}

var errNoFlights = notFoundError("No flights found")

// cached serves a search from the cache when possible and stores fresh
// results. Bad search input maps to 400 and empty searches to 404.
func (h *Handler) cached(c echo.Context, req any, search func() (*models.SearchResult, error)) error {
	ctx := c.Request().Context()
	endpoint := c.Path()

	if result, found := h.cache.Get(ctx, endpoint, req); found {
		c.Response().Header().Set("X-Cache", "HIT")
		return c.JSON(http.StatusOK, result)
	}

	result, err := search()
	if err != nil {
		var searchErr SearchError
		if errors.As(err, &searchErr) {
			return detail(c, http.StatusBadRequest, searchErr.Error())
		}
		var notFound notFoundError
		if errors.As(err, &notFound) {
			return detail(c, http.StatusNotFound, notFound.Error())
		}
		log.Printf("Search on %s failed: %v", endpoint, err)
		return detail(c, http.StatusInternalServerError, "Search error: "+err.Error())
	}
	if err := h.cache.Set(ctx, endpoint, req, result); err != nil {
		log.Printf("Cache write on %s failed: %v", endpoint, err)
	}
	c.Response().Header().Set("X-Cache", "MISS")
	return c.JSON(http.StatusOK, result)
}

// decodeHotelRequests accepts a single hotel request object or an array of
// them. An absent or null body yields no requests.
func decodeHotelRequests(raw []byte) ([]models.HotelRequest, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '[' {
		var reqs []models.HotelRequest
		if err := json.Unmarshal(raw, &reqs); err != nil {
			return nil, err
		}
		return reqs, nil
	}

	var req models.HotelRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	return []models.HotelRequest{req}, nil
}

func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, models.ErrorResponse{Detail: msg})
}

type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// unprocessable answers with a list-shaped detail, as FastAPI does for
// request validation failures.
func unprocessable(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, map[string][]fieldError{
		"detail": {{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error.missing",
		}},
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
