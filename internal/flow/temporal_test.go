package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchor() time.Time {
	// A fixed Wednesday afternoon; the resolver must truncate to the date.
	return time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC)
}

func TestResolveWindowOffsetAndStay(t *testing.T) {
	w := ResolveWindowAt("I need a hotel in 2 days from now, staying for 14 days", anchor())

	require.NotNil(t, w.Start)
	require.NotNil(t, w.End)
	require.NotNil(t, w.Nights)

	assert.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), *w.Start)
	assert.Equal(t, 14, *w.Nights)
	// Checkout-style exclusive end date.
	assert.Equal(t, time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC), *w.End)
}

func TestResolveWindowWeeksMultiplied(t *testing.T) {
	w := ResolveWindowAt("flying in 1 week, staying 2 weeks", anchor())

	require.NotNil(t, w.Start)
	require.NotNil(t, w.Nights)
	assert.Equal(t, time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC), *w.Start)
	assert.Equal(t, 14, *w.Nights)
}

func TestResolveWindowOffsetOnly(t *testing.T) {
	w := ResolveWindowAt("arriving in 3 days", anchor())

	require.NotNil(t, w.Start)
	assert.Equal(t, time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC), *w.Start)
	assert.Nil(t, w.Nights)
	assert.Nil(t, w.End)
}

func TestResolveWindowStayOnly(t *testing.T) {
	w := ResolveWindowAt("a trip of 5 nights", anchor())

	assert.Nil(t, w.Start)
	assert.Nil(t, w.End)
	require.NotNil(t, w.Nights)
	assert.Equal(t, 5, *w.Nights)
}

func TestResolveWindowNoCues(t *testing.T) {
	w := ResolveWindowAt("somewhere warm would be nice", anchor())

	assert.Nil(t, w.Start)
	assert.Nil(t, w.End)
	assert.Nil(t, w.Nights)
}
