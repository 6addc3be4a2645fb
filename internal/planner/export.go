package planner

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/client"
	"github.com/Abhilash001/gemini-crewai-travelplanner/internal/models"
)

// ExportTitle names itinerary downloads after the trip.
func (p *Planner) ExportTitle() string {
	return "travel_itinerary_" + safeFilenamePart(p.form.Trip.Destination) + "_" + safeFilenamePart(p.form.Trip.OutboundDate)
}

// ExportMarkdown writes the itinerary to w and returns the file name it
// should be saved under. With no itinerary it writes nothing and returns "".
func (p *Planner) ExportMarkdown(w io.Writer) (string, error) {
	md := p.ItineraryMarkdown()
	if md == "" {
		return "", nil
	}

	if _, err := io.WriteString(w, md); err != nil {
		return "", errors.Wrap(err, "write itinerary markdown")
	}
	return p.ExportTitle() + ".md", nil
}

// ExportPDF has the search API render the itinerary as PDF and writes it to
// w. It does not touch the search state.
func (p *Planner) ExportPDF(ctx context.Context, w io.Writer) (string, error) {
	md := p.ItineraryMarkdown()
	if md == "" {
		return "", nil
	}

	title := p.ExportTitle()
	pdf, err := p.transport.PostBytes(ctx, client.PathGeneratePDF, models.PDFRequest{
		Markdown: md,
		Title:    title,
	})
	if err != nil {
		return "", errors.Wrap(err, "generate itinerary pdf")
	}

	if _, err := w.Write(pdf); err != nil {
		return "", errors.Wrap(err, "write itinerary pdf")
	}
	return title + ".pdf", nil
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
