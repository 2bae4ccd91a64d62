package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBudget(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		unlimited    bool
		wantPrice    float64
		wantCurrency string
	}{
		{"symbol and unit", "$150 per night", false, 150, "USD"},
		{"euro symbol", "up to €200/night", false, 200, "EUR"},
		{"word currency wins over symbol", "$300 euros", false, 300, "EUR"},
		{"pounds word", "around 80 pounds a night", false, 80, "GBP"},
		{"bare number no currency", "keep it under 120", false, 120, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unlimited, price, currency := ParseBudget(tt.input)
			assert.Equal(t, tt.unlimited, unlimited)
			require.NotNil(t, price)
			assert.Equal(t, tt.wantPrice, *price)
			assert.Equal(t, tt.wantCurrency, currency)
		})
	}
}

func TestParseBudgetUnlimitedPrecedence(t *testing.T) {
	// "unlimited" wins even when a number is present.
	unlimited, price, currency := ParseBudget("unlimited budget, but usually around $500 per night")
	assert.True(t, unlimited)
	assert.Nil(t, price)
	assert.Empty(t, currency)

	unlimited, _, _ = ParseBudget("no limit on spending")
	assert.True(t, unlimited)

	unlimited, _, _ = ParseBudget("we have no budget constraints")
	assert.True(t, unlimited)
}

func TestParseBudgetNoMatch(t *testing.T) {
	unlimited, price, currency := ParseBudget("somewhere nice to sleep")
	assert.False(t, unlimited)
	assert.Nil(t, price)
	assert.Empty(t, currency)
}

func TestParseLodgingType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a nice hotel downtown", "hotel"},
		{"cheap hostels please", "hostel"},
		{"an apartment with a kitchen", "apartment"},
		{"some boutique spot", "hotel"}, // boutique normalizes to hotel
		{"a quiet guesthouse", "guesthouse"},
		{"nothing specific", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLodgingType(tt.input), "input %q", tt.input)
	}
}

func TestParseVibe(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"something luxury", "luxury"},
		{"a romantic getaway", "romantic"},
		{"don't care where", "any"},
		{"no preference really", "any"},
		{"whatever works", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseVibe(tt.input), "input %q", tt.input)
	}
}
