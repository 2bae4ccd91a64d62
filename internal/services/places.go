package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// overpassMirrors are tried in order; Overpass public instances rate
// limit aggressively, so a failed mirror falls through to the next.
var overpassMirrors = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
}

// PlacesService queries OpenStreetMap via the Overpass API for nearby
// lodging and public transport.
type PlacesService struct {
	mirrors []string
	client  *http.Client
	logger  *slog.Logger
}

// NewPlacesService creates an Overpass client. Empty mirrors select the
// built-in public instances.
func NewPlacesService(mirrors []string, logger *slog.Logger) *PlacesService {
	if len(mirrors) == 0 {
		mirrors = overpassMirrors
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlacesService{mirrors: mirrors, client: &http.Client{}, logger: logger}
}

type overpassResponse struct {
	Elements []struct {
		Type   string            `json:"type"`
		Lat    float64           `json:"lat"`
		Lon    float64           `json:"lon"`
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// HotelsNearby finds lodging around the given point. The search radius
// widens in steps until something is found, matching how sparse rural
// areas behave on OSM.
func (p *PlacesService) HotelsNearby(ctx context.Context, lat, lon float64, limit int) ([]Hotel, error) {
	if limit <= 0 {
		limit = 5
	}
	var lastErr error
	for _, radius := range []int{2000, 5000, 10000} {
		query := fmt.Sprintf(`[out:json][timeout:15];
(
  node["tourism"~"hotel|hostel|guest_house|motel|apartment"](around:%d,%f,%f);
  way["tourism"~"hotel|hostel|guest_house|motel|apartment"](around:%d,%f,%f);
);
out center %d;`, radius, lat, lon, radius, lat, lon, limit*3)

		raw, err := p.run(ctx, query)
		if err != nil {
			lastErr = err
			continue
		}

		hotels := make([]Hotel, 0, limit)
		for _, el := range raw.Elements {
			name := el.Tags["name"]
			if name == "" {
				continue
			}
			elat, elon := el.Lat, el.Lon
			if el.Center != nil {
				elat, elon = el.Center.Lat, el.Center.Lon
			}
			h := Hotel{
				Name: name,
				Type: el.Tags["tourism"],
				Lat:  elat,
				Lon:  elon,
			}
			if stars := el.Tags["stars"]; stars != "" {
				if v, err := strconv.ParseFloat(stars, 64); err == nil {
					h.Rating = &v
				}
			}
			dist := haversineKM(lat, lon, elat, elon)
			h.DistanceKM = &dist
			hotels = append(hotels, h)
		}
		if len(hotels) == 0 {
			continue
		}
		sort.Slice(hotels, func(i, j int) bool {
			return *hotels[i].DistanceKM < *hotels[j].DistanceKM
		})
		if len(hotels) > limit {
			hotels = hotels[:limit]
		}
		return hotels, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}

// TransportStops finds public transport stops around the given point.
func (p *PlacesService) TransportStops(ctx context.Context, lat, lon float64, limit int) ([]TransportStop, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`[out:json][timeout:15];
(
  node["public_transport"="station"](around:2000,%f,%f);
  node["railway"="station"](around:2000,%f,%f);
  node["highway"="bus_stop"](around:1000,%f,%f);
);
out %d;`, lat, lon, lat, lon, lat, lon, limit*3)

	raw, err := p.run(ctx, query)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	stops := make([]TransportStop, 0, limit)
	for _, el := range raw.Elements {
		name := el.Tags["name"]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		kind := "bus_stop"
		if el.Tags["railway"] == "station" {
			kind = "railway_station"
		} else if el.Tags["public_transport"] == "station" {
			kind = "station"
		}
		stops = append(stops, TransportStop{Name: name, Type: kind, Lat: el.Lat, Lon: el.Lon})
		if len(stops) == limit {
			break
		}
	}
	return stops, nil
}

func (p *PlacesService) run(ctx context.Context, query string) (*overpassResponse, error) {
	var lastErr error
	for _, mirror := range p.mirrors {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, mirror,
			strings.NewReader(url.Values{"data": {query}}.Encode()))
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := p.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("calling overpass mirror %s: %w", mirror, err)
			p.logger.Debug("overpass mirror failed", "mirror", mirror, "error", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("overpass mirror %s returned %d: %s", mirror, resp.StatusCode, string(body))
			continue
		}

		var raw overpassResponse
		err = json.NewDecoder(resp.Body).Decode(&raw)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("decoding overpass response: %w", err)
			continue
		}
		return &raw, nil
	}
	return nil, lastErr
}

func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKM = 6371.0
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
