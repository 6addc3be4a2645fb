package form

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load decodes a trip file. Missing dates fall back to the defaults of New,
// and a trip without hotels gets a single stay in the destination.
//
//	trip:
//	  origin: BOM
//	  destination: NRT
//	  outbound_date: 2025-01-01
//	  return_date: 2025-01-10
//	hotels:
//	  - location: Tokyo
//	    check_in_date: 2025-01-01
//	    check_out_date: 2025-01-10
func Load(r io.Reader, now time.Time) (*Form, error) {
	f := New(now)
	defaults := f.Trip
	f.Segments = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode trip file")
	}

	if f.Trip.OutboundDate == "" {
		f.Trip.OutboundDate = defaults.OutboundDate
	}
	if f.Trip.ReturnDate == "" {
		f.Trip.ReturnDate = defaults.ReturnDate
	}
	if len(f.Segments) == 0 {
		f.Segments = []HotelSegment{{
			UseTripDestination: true,
			CheckInDate:        f.Trip.OutboundDate,
			CheckOutDate:       f.Trip.ReturnDate,
		}}
	}

	return f, nil
}

func LoadFile(path string, now time.Time) (*Form, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open trip file %s", path)
	}
	defer file.Close()

	return Load(file, now)
}
