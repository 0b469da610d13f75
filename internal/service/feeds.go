package service

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"farmagent/internal/catalog"
	"farmagent/internal/model"
)

// WeatherProvider supplies weather for a location
type WeatherProvider interface {
	Weather(ctx context.Context, location string) (*model.WeatherReport, error)
}

// MarketProvider supplies a market quote for a crop
type MarketProvider interface {
	Quote(ctx context.Context, crop string) (*model.MarketQuote, error)
}

// MockWeatherProvider generates plausible weather from a random source.
// There is no real weather integration; the source is injected so tests can seed it.
type MockWeatherProvider struct {
	mu         sync.Mutex
	rng        *rand.Rand
	conditions []string
}

// NewMockWeatherProvider creates a weather stub drawing conditions from the catalog
func NewMockWeatherProvider(cat *catalog.Catalog, rng *rand.Rand) *MockWeatherProvider {
	return &MockWeatherProvider{
		rng:        rng,
		conditions: append([]string(nil), cat.WeatherConditions...),
	}
}

// Weather returns the current conditions and a three-day forecast
func (p *MockWeatherProvider) Weather(ctx context.Context, location string) (*model.WeatherReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("location is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	report := &model.WeatherReport{
		Location:    location,
		Temperature: p.rng.Intn(30) + 10,
		Humidity:    p.rng.Intn(40) + 30,
		Condition:   p.conditions[p.rng.Intn(len(p.conditions))],
	}
	for i, day := range []string{"Today", "Tomorrow", "Day 3"} {
		report.Forecast = append(report.Forecast, model.ForecastDay{
			Day:       day,
			Temp:      p.rng.Intn(30) + 10,
			Condition: p.conditions[i%len(p.conditions)],
		})
	}
	return report, nil
}

// Market price trends
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// MockMarketProvider prices crops from the catalog reference table with a random trend
type MockMarketProvider struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	rng     *rand.Rand
	now     func() time.Time
}

// NewMockMarketProvider creates a market stub over the catalog price table
func NewMockMarketProvider(cat *catalog.Catalog, rng *rand.Rand) *MockMarketProvider {
	return &MockMarketProvider{
		catalog: cat,
		rng:     rng,
		now:     time.Now,
	}
}

// Quote returns the reference price moved by up to 10% in the trend direction
func (p *MockMarketProvider) Quote(ctx context.Context, crop string) (*model.MarketQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	crop = strings.TrimSpace(crop)
	if crop == "" {
		return nil, fmt.Errorf("crop is required")
	}

	ref, _ := p.catalog.PriceFor(crop)

	p.mu.Lock()
	trend := []string{TrendUp, TrendDown, TrendStable}[p.rng.Intn(3)]
	variation := p.rng.Float64() * 0.1
	p.mu.Unlock()

	price := ref.Price
	switch trend {
	case TrendUp:
		price = math.Round(ref.Price * (1 + variation))
	case TrendDown:
		price = math.Round(ref.Price * (1 - variation))
	}

	return &model.MarketQuote{
		Crop:        crop,
		Price:       price,
		Unit:        ref.Unit,
		Category:    ref.Category,
		Market:      ref.Market,
		Currency:    "INR",
		Trend:       trend,
		LastUpdated: p.now().UTC(),
	}, nil
}
