// Package services holds the thin clients for external travel data:
// geocoding, weather, country facts, nearby hotels and transport via
// Overpass, and the offline visa rules table. The dialogue core never
// calls these; it consumes their already-fetched results as plain data.
package services

// Coords is a resolved geographic location.
type Coords struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Name        string  `json:"name,omitempty"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
}

// Country is a summary of country facts.
type Country struct {
	Name       string   `json:"name"`
	Capital    string   `json:"capital"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion,omitempty"`
	Population int64    `json:"population,omitempty"`
	Languages  []string `json:"languages,omitempty"`
	Currency   string   `json:"currency,omitempty"`
}

// Hotel is a nearby lodging option.
type Hotel struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Lat        float64  `json:"lat,omitempty"`
	Lon        float64  `json:"lon,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	DistanceKM *float64 `json:"distance_km,omitempty"`
}

// TransportStop is a nearby public transport stop.
type TransportStop struct {
	Name string  `json:"name"`
	Type string  `json:"type,omitempty"`
	Lat  float64 `json:"lat,omitempty"`
	Lon  float64 `json:"lon,omitempty"`
}

// External aggregates the already-fetched data for one turn. Every
// known key is an explicit optional field; a nil/zero field means the
// lookup was skipped or failed. Consumers must treat all fields as
// possibly absent.
type External struct {
	Coords      *Coords         `json:"coords,omitempty"`
	ClimateInfo string          `json:"climate_info,omitempty"`
	Hotels      []Hotel         `json:"hotels,omitempty"`
	Country     *Country        `json:"country,omitempty"`
	Transport   []TransportStop `json:"transport,omitempty"`
	VisaTH      *VisaAdvice     `json:"visa_th,omitempty"`
}
