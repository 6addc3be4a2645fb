package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/client"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/form"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/planner"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/ratelimit"
)

type Config struct {
	APIURL     string
	Timeout    time.Duration
	RateLimit  float64
	RateBurst  int
	TripFile   string
	Mode       string
	ExportDir  string
	ExportPDF  bool
	Trip       form.TripQuery
	Segments   segmentsFlag
	ShowReturn bool
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring .env: %v", err)
	}

	cfg := loadConfig(os.Args[1:])

	f, err := buildForm(cfg, time.Now())
	if err != nil {
		log.Fatalf("Failed to load trip: %v", err)
	}

	limiter := ratelimit.NewEndpointLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit,
		BurstSize:         cfg.RateBurst,
	})
	api := client.New(client.Config{
		BaseURL:     cfg.APIURL,
		Timeout:     cfg.Timeout,
		RateLimiter: limiter,
	})

	mode := planner.Mode(cfg.Mode)
	if !mode.Valid() {
		log.Printf("Unknown search mode %q, no search will be sent", mode)
	}

	p := planner.New(f, api)
	p.SetMode(mode)
	p.Subscribe(func(s planner.State) {
		if s.Loading {
			log.Printf("Searching (%s) against %s ...", s.Mode, api.BaseURL())
		}
	})

	ctx := context.Background()
	st := p.Submit(ctx)
	if st.ErrorMessage != "" {
		fmt.Fprintln(os.Stderr, st.ErrorMessage)
		os.Exit(1)
	}
	if st.Results == nil {
		os.Exit(2)
	}

	if cfg.ShowReturn {
		for i := range st.ReturnFlightsOpen {
			p.ToggleReturnFlights(i)
		}
		st = p.State()
	}

	render(os.Stdout, st, p.ItineraryMarkdown())

	if cfg.ExportDir != "" {
		if err := export(ctx, p, cfg); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
	}
}

func loadConfig(args []string) Config {
	cfg := Config{}
	fs := flag.NewFlagSet("planner", flag.ExitOnError)

	fs.StringVar(&cfg.APIURL, "api", getEnv("TRAVEL_API_URL", client.DefaultBaseURL), "search API base URL")
	fs.DurationVar(&cfg.Timeout, "timeout", getEnvDuration("TRAVEL_API_TIMEOUT", 0), "request timeout (0 = none)")
	fs.Float64Var(&cfg.RateLimit, "rps", ratelimit.DefaultConfig().RequestsPerSecond, "requests per second per endpoint")
	fs.IntVar(&cfg.RateBurst, "burst", ratelimit.DefaultConfig().BurstSize, "request burst per endpoint")
	fs.StringVar(&cfg.TripFile, "trip", "", "YAML trip file")
	fs.StringVar(&cfg.Mode, "mode", string(planner.ModeComplete), "search mode: complete, flights, hotels or plan")
	fs.StringVar(&cfg.ExportDir, "export", "", "directory to write the itinerary to")
	fs.BoolVar(&cfg.ExportPDF, "pdf", false, "also export the itinerary as PDF")
	fs.BoolVar(&cfg.ShowReturn, "show-return", false, "list return flight options")

	fs.StringVar(&cfg.Trip.Origin, "origin", "", "origin airport code")
	fs.StringVar(&cfg.Trip.Destination, "destination", "", "destination airport code")
	fs.StringVar(&cfg.Trip.OutboundDate, "depart", "", "departure date (YYYY-MM-DD)")
	fs.StringVar(&cfg.Trip.ReturnDate, "return", "", "return date (YYYY-MM-DD)")
	fs.StringVar(&cfg.Trip.Instructions, "instructions", "", "free-text instructions")
	fs.Var(&cfg.Segments, "hotel", "hotel stay as LOCATION,CHECK_IN,CHECK_OUT; empty LOCATION stays in the destination (repeatable)")

	_ = fs.Parse(args)
	return cfg
}

// buildForm starts from the trip file (or defaults) and applies flags on top.
func buildForm(cfg Config, now time.Time) (*form.Form, error) {
	f := form.New(now)
	if cfg.TripFile != "" {
		loaded, err := form.LoadFile(cfg.TripFile, now)
		if err != nil {
			return nil, err
		}
		f = loaded
	}

	setIf(&f.Trip.Origin, cfg.Trip.Origin)
	setIf(&f.Trip.Destination, cfg.Trip.Destination)
	setIf(&f.Trip.Instructions, cfg.Trip.Instructions)

	datesChanged := cfg.Trip.OutboundDate != "" || cfg.Trip.ReturnDate != ""
	setIf(&f.Trip.OutboundDate, cfg.Trip.OutboundDate)
	setIf(&f.Trip.ReturnDate, cfg.Trip.ReturnDate)

	switch {
	case len(cfg.Segments) > 0:
		f.Segments = cfg.Segments
	case datesChanged && cfg.TripFile == "":
		f.Segments[0].CheckInDate = f.Trip.OutboundDate
		f.Segments[0].CheckOutDate = f.Trip.ReturnDate
	}

	return f, nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func export(ctx context.Context, p *planner.Planner, cfg Config) error {
	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		return err
	}

	var md strings.Builder
	name, err := p.ExportMarkdown(&md)
	if err != nil {
		return err
	}
	if name == "" {
		log.Println("No itinerary to export")
		return nil
	}
	path := filepath.Join(cfg.ExportDir, name)
	if err := os.WriteFile(path, []byte(md.String()), 0o644); err != nil {
		return err
	}
	log.Printf("Itinerary written to %s", path)

	if !cfg.ExportPDF {
		return nil
	}

	out, err := os.CreateTemp(cfg.ExportDir, "itinerary-*.pdf")
	if err != nil {
		return err
	}
	defer os.Remove(out.Name())
	defer out.Close()

	name, err = p.ExportPDF(ctx, out)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	path = filepath.Join(cfg.ExportDir, name)
	if err := os.Rename(out.Name(), path); err != nil {
		return err
	}
	log.Printf("Itinerary PDF written to %s", path)
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
