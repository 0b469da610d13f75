package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"farmagent/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	return cat
}

func TestMockWeatherProvider(t *testing.T) {
	cat := loadCatalog(t)
	p := NewMockWeatherProvider(cat, rand.New(rand.NewSource(7)))

	report, err := p.Weather(context.Background(), " Pune ")
	require.NoError(t, err)

	assert.Equal(t, "Pune", report.Location)
	assert.GreaterOrEqual(t, report.Temperature, 10)
	assert.Less(t, report.Temperature, 40)
	assert.GreaterOrEqual(t, report.Humidity, 30)
	assert.Less(t, report.Humidity, 70)
	assert.Contains(t, cat.WeatherConditions, report.Condition)

	require.Len(t, report.Forecast, 3)
	assert.Equal(t, "Today", report.Forecast[0].Day)
	assert.Equal(t, "Day 3", report.Forecast[2].Day)
	assert.Equal(t, cat.WeatherConditions[1], report.Forecast[1].Condition)
}

func TestMockWeatherProviderErrors(t *testing.T) {
	p := NewMockWeatherProvider(loadCatalog(t), rand.New(rand.NewSource(1)))

	_, err := p.Weather(context.Background(), "  ")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Weather(ctx, "Pune")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockMarketProvider(t *testing.T) {
	cat := loadCatalog(t)
	p := NewMockMarketProvider(cat, rand.New(rand.NewSource(42)))
	fixed := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	for i := 0; i < 20; i++ {
		quote, err := p.Quote(context.Background(), "Tomato")
		require.NoError(t, err)

		assert.Equal(t, "kg", quote.Unit)
		assert.Equal(t, "Mumbai APMC", quote.Market)
		assert.Equal(t, "INR", quote.Currency)
		assert.Equal(t, fixed, quote.LastUpdated)
		assert.Contains(t, []string{TrendUp, TrendDown, TrendStable}, quote.Trend)
		assert.InDelta(t, 45, quote.Price, 5)
		if quote.Trend == TrendStable {
			assert.Equal(t, 45.0, quote.Price)
		}
	}
}

func TestMockMarketProviderUnknownCrop(t *testing.T) {
	p := NewMockMarketProvider(loadCatalog(t), rand.New(rand.NewSource(3)))

	quote, err := p.Quote(context.Background(), "Dragonfruit")
	require.NoError(t, err)
	assert.Equal(t, "Dragonfruit", quote.Crop)
	assert.Equal(t, "Local APMC", quote.Market)
	assert.InDelta(t, 50, quote.Price, 5)

	_, err = p.Quote(context.Background(), "")
	assert.Error(t, err)
}
