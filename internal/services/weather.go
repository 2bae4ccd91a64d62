package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const weatherBaseURL = "https://api.open-meteo.com/v1/forecast"

// weatherCodes maps WMO weather codes to human-readable conditions.
var weatherCodes = map[int]string{
	0: "Clear sky", 1: "Mainly clear", 2: "Partly cloudy", 3: "Overcast",
	45: "Fog", 48: "Depositing rime fog",
	51: "Light drizzle", 53: "Moderate drizzle", 55: "Dense drizzle",
	61: "Slight rain", 63: "Moderate rain", 65: "Heavy rain",
	71: "Slight snow", 73: "Moderate snow", 75: "Heavy snow",
	80: "Rain showers (slight)", 81: "Rain showers (moderate)", 82: "Rain showers (violent)",
	85: "Snow showers (slight)", 86: "Snow showers (heavy)",
	95: "Thunderstorm", 96: "Thunderstorm with slight hail", 99: "Thunderstorm with heavy hail",
}

func codeText(code int) string {
	if text, ok := weatherCodes[code]; ok {
		return text
	}
	return "Weather code " + strconv.Itoa(code)
}

// ForecastDay is one day of the daily forecast.
type ForecastDay struct {
	Date          string  `json:"date"`
	MaxTemp       float64 `json:"max_temp"`
	MinTemp       float64 `json:"min_temp"`
	Precipitation float64 `json:"precipitation"`
	Condition     string  `json:"condition"`
}

// Forecast is the daily forecast with the current conditions.
type Forecast struct {
	CurrentTemp float64       `json:"current_temp"`
	Condition   string        `json:"condition"`
	Days        []ForecastDay `json:"forecast"`
}

// WeatherService fetches forecasts from the Open-Meteo API.
type WeatherService struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewWeatherService creates a weather client. An empty baseURL selects
// the public Open-Meteo endpoint.
func NewWeatherService(baseURL string, logger *slog.Logger) *WeatherService {
	if baseURL == "" {
		baseURL = weatherBaseURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WeatherService{baseURL: baseURL, client: &http.Client{}, logger: logger}
}

type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Daily struct {
		Time             []string  `json:"time"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WeatherCode      []int     `json:"weathercode"`
	} `json:"daily"`
}

// DailyForecast fetches a daily forecast for the given coordinates.
func (w *WeatherService) DailyForecast(ctx context.Context, lat, lon float64, days int) (*Forecast, error) {
	if days <= 0 {
		days = 7
	}
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode")
	params.Set("current_weather", "true")
	params.Set("forecast_days", strconv.Itoa(days))
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling weather API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("weather API returned %d: %s", resp.StatusCode, string(body))
	}

	var raw openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	forecast := &Forecast{
		CurrentTemp: raw.CurrentWeather.Temperature,
		Condition:   codeText(raw.CurrentWeather.WeatherCode),
	}
	for i := range raw.Daily.Time {
		if i >= len(raw.Daily.TemperatureMax) || i >= len(raw.Daily.TemperatureMin) ||
			i >= len(raw.Daily.PrecipitationSum) || i >= len(raw.Daily.WeatherCode) {
			break
		}
		forecast.Days = append(forecast.Days, ForecastDay{
			Date:          raw.Daily.Time[i],
			MaxTemp:       raw.Daily.TemperatureMax[i],
			MinTemp:       raw.Daily.TemperatureMin[i],
			Precipitation: raw.Daily.PrecipitationSum[i],
			Condition:     codeText(raw.Daily.WeatherCode[i]),
		})
	}

	w.logger.Debug("fetched forecast", "lat", lat, "lon", lon, "days", len(forecast.Days))
	return forecast, nil
}

// ClimateSummary condenses the 7-day forecast into one sentence of
// packing-relevant climate facts.
func (w *WeatherService) ClimateSummary(ctx context.Context, lat, lon float64) (string, error) {
	forecast, err := w.DailyForecast(ctx, lat, lon, 7)
	if err != nil {
		return "", err
	}
	return SummarizeForecast(forecast), nil
}

// SummarizeForecast renders the forecast as a compact climate summary.
func SummarizeForecast(forecast *Forecast) string {
	if forecast == nil || len(forecast.Days) == 0 {
		return ""
	}

	maxTemp := forecast.Days[0].MaxTemp
	minTemp := forecast.Days[0].MinTemp
	rainy := false
	for _, d := range forecast.Days {
		if d.MaxTemp > maxTemp {
			maxTemp = d.MaxTemp
		}
		if d.MinTemp < minTemp {
			minTemp = d.MinTemp
		}
		cond := strings.ToLower(d.Condition)
		if strings.Contains(cond, "rain") || strings.Contains(cond, "drizzle") || strings.Contains(cond, "shower") {
			rainy = true
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Current: %.1f°C, %s. ", forecast.CurrentTemp, forecast.Condition)
	fmt.Fprintf(&b, "Highs up to %.1f°C and lows down to %.1f°C. ", maxTemp, minTemp)
	if rainy {
		b.WriteString("Rain likely — pack waterproofs. ")
	}
	if maxTemp > 30 {
		b.WriteString("Hot weather — light clothing. ")
	}
	if minTemp < 10 {
		b.WriteString("Cold temps — warm layers.")
	}
	return strings.TrimSpace(b.String())
}
