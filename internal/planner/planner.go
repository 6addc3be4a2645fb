// Package planner drives a trip search: it validates the form, sends the
// request for the selected search mode and folds the outcome into a State
// that renderers observe.
package planner

import (
	"context"
	"log"
	"sync"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/client"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/form"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
	"github.com/Abhilash001/gemini-crewai-travelplanner/pkg/format"
)

// Transport is the HTTP side of a search. *client.Client implements it.
type Transport interface {
	PostJSON(ctx context.Context, path string, payload, out any) error
	PostBytes(ctx context.Context, path string, payload any) ([]byte, error)
}

// State is what a renderer needs to draw the planner. ReturnFlightsOpen has
// one entry per returned flight and tracks whether its return options are
// expanded.
type State struct {
	Mode              Mode
	Loading           bool
	ErrorMessage      string
	Results           *models.SearchResult
	ReturnFlightsOpen []bool
	ActiveTab         string
}

func (s State) clone() State {
	if s.ReturnFlightsOpen != nil {
		s.ReturnFlightsOpen = append([]bool(nil), s.ReturnFlightsOpen...)
	}
	return s
}

type Planner struct {
	form      *form.Form
	transport Transport

	mu        sync.Mutex
	state     State
	observers map[int]func(State)
	nextID    int
}

func New(f *form.Form, t Transport) *Planner {
	return &Planner{
		form:      f,
		transport: t,
		state: State{
			Mode:      ModeComplete,
			ActiveTab: TabFlights,
		},
		observers: make(map[int]func(State)),
	}
}

// Form returns the form the planner submits. Edits are picked up by the next
// Submit.
func (p *Planner) Form() *form.Form {
	return p.form
}

func (p *Planner) SetMode(m Mode) {
	p.update(func(s *State) { s.Mode = m })
}

func (p *Planner) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.clone()
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func removes it.
func (p *Planner) Subscribe(fn func(State)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.observers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.observers, id)
		p.mu.Unlock()
	}
}

func (p *Planner) update(fn func(s *State)) {
	p.mu.Lock()
	fn(&p.state)
	snapshot := p.state.clone()
	observers := make([]func(State), 0, len(p.observers))
	for _, o := range p.observers {
		observers = append(observers, o)
	}
	p.mu.Unlock()

	for _, o := range observers {
		o(snapshot)
	}
}

// Submit validates the form and, if it passes, performs the search for the
// current mode. It blocks until the search settles and returns the resulting
// state. Failures are reported through State.ErrorMessage.
func (p *Planner) Submit(ctx context.Context) State {
	if msg := Validate(p.form); msg != "" {
		p.update(func(s *State) { s.ErrorMessage = msg })
		return p.State()
	}

	mode := p.State().Mode
	calls, ok := buildCalls(mode, p.form)
	if !ok {
		log.Printf("Unknown search mode %q, nothing sent", mode)
		return p.State()
	}

	p.update(func(s *State) {
		s.ErrorMessage = ""
		s.Loading = true
		s.Results = nil
		s.ReturnFlightsOpen = nil
	})

	log.Printf("Searching %s: %s to %s (%s - %s), %d request(s)",
		mode, p.form.Trip.Origin, p.form.Trip.Destination,
		p.form.Trip.OutboundDate, p.form.Trip.ReturnDate, len(calls))

	result, err := p.send(ctx, calls)
	if err != nil {
		msg := MsgSearchFailed
		if detail, ok := client.Detail(err); ok {
			msg = detail
		}
		log.Printf("Search %s failed: %v", mode, err)
		p.update(func(s *State) {
			s.ErrorMessage = msg
			s.Loading = false
		})
		return p.State()
	}

	p.update(func(s *State) {
		s.Results = result
		s.Loading = false
		s.ActiveTab = tabFor(mode)
		s.ReturnFlightsOpen = make([]bool, len(result.Flights))
	})
	return p.State()
}

// send issues calls one after another so that at most one request is in
// flight. The first failure ends the search.
func (p *Planner) send(ctx context.Context, calls []call) (*models.SearchResult, error) {
	if len(calls) == 1 && calls[0].hotel == nil {
		var result models.SearchResult
		if err := p.transport.PostJSON(ctx, calls[0].path, calls[0].payload, &result); err != nil {
			return nil, err
		}
		return &result, nil
	}

	results := make([]models.SearchResult, len(calls))
	for i, c := range calls {
		if err := p.transport.PostJSON(ctx, c.path, c.payload, &results[i]); err != nil {
			return nil, err
		}
	}
	return mergeHotelResults(calls, results), nil
}

// ToggleReturnFlights expands or collapses the return options of flight i.
func (p *Planner) ToggleReturnFlights(i int) {
	p.update(func(s *State) {
		if i >= 0 && i < len(s.ReturnFlightsOpen) {
			s.ReturnFlightsOpen[i] = !s.ReturnFlightsOpen[i]
		}
	})
}

// ItineraryMarkdown is the itinerary of the current results without its
// code fence, or "" when there is none.
func (p *Planner) ItineraryMarkdown() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Results == nil || p.state.Results.Itinerary == "" {
		return ""
	}
	return format.ItineraryMarkdown(p.state.Results.Itinerary)
}
