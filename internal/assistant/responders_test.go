package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/natib-dev/tripwise/internal/models"
	"github.com/natib-dev/tripwise/internal/services"
)

func float64p(v float64) *float64 { return &v }

func TestAccommodationResponseWithHotels(t *testing.T) {
	in := ResponderInput{
		Entities: models.EntitySet{Destination: "Lisbon", AccommodationType: "hotel"},
		External: &services.External{
			Country: &services.Country{Name: "Portugal"},
			Hotels: []services.Hotel{
				{Name: "Hotel Mundial", Type: "hotel", Rating: float64p(4.5), DistanceKM: float64p(0.8)},
				{Name: "Lisbon Lounge", Type: "hostel"},
			},
		},
	}

	got := HeuristicResponse(models.IntentAccommodation, in)
	assert.Contains(t, got, "Where to Stay in Lisbon, Portugal (hotel)")
	assert.Contains(t, got, "• Hotel Mundial (hotel) — 4.5/5, 0.8 km from center")
	assert.Contains(t, got, "• Lisbon Lounge (hostel)")
	assert.Contains(t, got, "Booking Tips")
}

func TestAccommodationResponseWithoutHotels(t *testing.T) {
	in := ResponderInput{Entities: models.EntitySet{Destination: "Lisbon"}}

	got := HeuristicResponse(models.IntentAccommodation, in)
	assert.Contains(t, got, "Accommodation in Lisbon")
	assert.Contains(t, got, "Budget range (per night)?")
}

func TestWeatherResponse(t *testing.T) {
	// No destination known at all: ask for one.
	got := HeuristicResponse(models.IntentWeather, ResponderInput{})
	assert.Contains(t, got, "Could you tell me the destination?")

	// Destination known but the forecast lookup came back empty.
	got = HeuristicResponse(models.IntentWeather, ResponderInput{
		Slots: models.EntitySet{Destination: "Rome"},
	})
	assert.Contains(t, got, "couldn't fetch the forecast for Rome")

	// Forecast available.
	got = HeuristicResponse(models.IntentWeather, ResponderInput{
		Slots:    models.EntitySet{Destination: "Rome"},
		External: &services.External{ClimateInfo: "Current: 21.0°C, Clear sky."},
	})
	assert.Contains(t, got, "Weather in Rome")
	assert.Contains(t, got, "Current: 21.0°C, Clear sky.")
}

func TestBestTimeResponseBali(t *testing.T) {
	got := HeuristicResponse(models.IntentBestTime, ResponderInput{
		Entities: models.EntitySet{Destination: "Bali"},
		External: &services.External{ClimateInfo: "Current: 29.0°C, Partly cloudy."},
	})

	assert.Contains(t, got, "Best Time to Surf in Bali")
	assert.Contains(t, got, "West Coast")
	assert.Contains(t, got, "East Coast")
	assert.Contains(t, got, "Next 7 Days Snapshot")
	assert.Contains(t, got, "Current: 29.0°C, Partly cloudy.")
}

func TestBestTimeResponseGeneric(t *testing.T) {
	got := HeuristicResponse(models.IntentBestTime, ResponderInput{
		Entities: models.EntitySet{Destination: "Lisbon"},
	})

	assert.Contains(t, got, "Best Time to Visit Lisbon")
	assert.NotContains(t, got, "West Coast")
	assert.NotContains(t, got, "Next 7 Days Snapshot")
}

func TestBudgetResponseTiers(t *testing.T) {
	got := HeuristicResponse(models.IntentBudget, ResponderInput{
		Slots: models.EntitySet{Destination: "europe", Duration: "7 days"},
	})

	assert.Contains(t, got, "How much for 7 days in Europe? (EUR)")
	// 70-110 EUR/day over 7 days.
	assert.Contains(t, got, "**Backpacker:** €490–€770")
	assert.Contains(t, got, "**Luxury:** €3150–€4900")
}

func TestBudgetResponseRegionalAdjustments(t *testing.T) {
	// Eastern Europe gets cheaper backpacker/midrange tiers.
	got := HeuristicResponse(models.IntentBudget, ResponderInput{
		Entities: models.EntitySet{Destination: "Poland", Duration: "1 week"},
	})
	assert.Contains(t, got, "How much for 7 days in Poland?")
	assert.Contains(t, got, "**Backpacker:** €420–€700")

	// Switzerland gets pricier ones.
	got = HeuristicResponse(models.IntentBudget, ResponderInput{
		Entities: models.EntitySet{Destination: "Switzerland", Duration: "3 days"},
	})
	assert.Contains(t, got, "How much for 3 days in Switzerland?")
	assert.Contains(t, got, "**Backpacker:** €270–€420")
}

func TestSafetyResponse(t *testing.T) {
	got := HeuristicResponse(models.IntentSafety, ResponderInput{
		Entities: models.EntitySet{Destination: "Lisbon"},
		External: &services.External{
			Country:     &services.Country{Name: "Portugal", Region: "Europe", Currency: "Euro"},
			ClimateInfo: "Rain likely — pack waterproofs.",
		},
	})

	assert.Contains(t, got, "Solo Travel Safety Guide — Lisbon")
	assert.Contains(t, got, "112") // EU emergency number from the region hint
	assert.Contains(t, got, "Weather Watch-outs")
	assert.Contains(t, got, "Local currency: **Euro**")
}

func TestItineraryResponseFullPlan(t *testing.T) {
	start := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)
	price := 150.0

	got := HeuristicResponse(models.IntentItinerary, ResponderInput{
		TripIntent: &models.TripIntent{
			Destination: "Bangkok",
			StartDate:   &start,
			EndDate:     &end,
			Nights:      14,
			Accommodation: models.AccommodationPrefs{
				Type:             "hotel",
				Vibe:             "boutique",
				MaxPricePerNight: &price,
				Currency:         "USD",
			},
		},
	})

	assert.Contains(t, got, "### Your Plan (draft)")
	assert.Contains(t, got, "- Stay: **Hotel** (boutique)")
	assert.Contains(t, got, "2025-06-20 → 2025-07-04")
	assert.Contains(t, got, "**14 nights**")
	assert.Contains(t, got, "- Budget: **Up to 150 USD**")
	assert.Contains(t, got, "- Destination: **Bangkok**")
}

func TestItineraryResponseMissingDestination(t *testing.T) {
	got := HeuristicResponse(models.IntentItinerary, ResponderInput{
		TripIntent: &models.TripIntent{
			Accommodation: models.AccommodationPrefs{BudgetUnlimited: true},
		},
	})

	assert.Contains(t, got, "- Budget: **Unlimited**")
	assert.Contains(t, got, "Destination: **Missing**")
	assert.Contains(t, got, "Tell me your destination city.")
}

func TestVisaResponseFollowups(t *testing.T) {
	// Destination is not Thailand: ask for the two basics.
	got := HeuristicResponse(models.IntentVisa, ResponderInput{})
	assert.Contains(t, got, "Destination country")
	assert.Contains(t, got, "Passport country")

	// Thailand but no passport country yet.
	got = HeuristicResponse(models.IntentVisa, ResponderInput{
		Entities: models.EntitySet{Destination: "Bangkok"},
	})
	assert.Contains(t, got, "focusing on **Thailand**")
	assert.Contains(t, got, "What **passport**")
}

func TestVisaResponseWithAdvice(t *testing.T) {
	advice := services.NewVisaService(nil).ThailandAdvice("United States", 10, "tourism")

	got := HeuristicResponse(models.IntentVisa, ResponderInput{
		Entities: models.EntitySet{Destination: "Thailand", Citizenship: "United States"},
		External: &services.External{VisaTH: advice},
	})

	assert.Contains(t, got, "Thailand — Visa Guidance for United States")
	assert.Contains(t, got, "visa-exempt")
	assert.Contains(t, got, "up to 30 days")
	assert.Contains(t, got, "Documents usually checked at the border")
	assert.True(t, strings.Contains(got, "general guidance"))
}

func TestHeuristicResponseGeneral(t *testing.T) {
	got := HeuristicResponse(models.IntentGeneral, ResponderInput{})
	assert.Contains(t, got, "Happy to help!")
}
