// Package data embeds the canned catalogue served by the stub search API.
package data

import _ "embed"

//go:embed flights.json
var FlightsData []byte

//go:embed hotels.json
var HotelsData []byte
