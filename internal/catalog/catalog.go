// Package catalog exposes the static reference data served next to the assistant:
// crop profiles, market reference prices and weather conditions.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"farmagent/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultData []byte

// Catalog is read-only after Load and safe for concurrent use
type Catalog struct {
	Crops             []model.Crop                 `yaml:"crops"`
	MarketPrices      map[string]model.MarketPrice `yaml:"market_prices"`
	FallbackPrice     model.MarketPrice            `yaml:"fallback_price"`
	WeatherConditions []string                     `yaml:"weather_conditions"`
}

// Load parses the embedded catalog
func Load() (*Catalog, error) {
	return Parse(defaultData)
}

// Parse decodes a catalog document and checks it is usable
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(c.WeatherConditions) == 0 {
		return nil, fmt.Errorf("catalog has no weather conditions")
	}
	if c.FallbackPrice.Market == "" {
		return nil, fmt.Errorf("catalog has no fallback price")
	}

	prices := make(map[string]model.MarketPrice, len(c.MarketPrices))
	for name, p := range c.MarketPrices {
		prices[strings.ToLower(name)] = p
	}
	c.MarketPrices = prices

	return &c, nil
}

// PriceFor returns the reference price for crop and whether it was found.
// Unknown crops get the fallback price.
func (c *Catalog) PriceFor(crop string) (model.MarketPrice, bool) {
	if p, ok := c.MarketPrices[strings.ToLower(strings.TrimSpace(crop))]; ok {
		return p, true
	}
	return c.FallbackPrice, false
}

// PricedCrops lists the crops with a reference price, sorted
func (c *Catalog) PricedCrops() []string {
	names := make([]string, 0, len(c.MarketPrices))
	for name := range c.MarketPrices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterCrops returns crops matching season (exact, "all" or empty for any)
// and query (substring of name or scientific name, case-insensitive)
func (c *Catalog) FilterCrops(season, query string) []model.Crop {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Crop, 0, len(c.Crops))
	for _, crop := range c.Crops {
		if season != "" && !strings.EqualFold(season, "all") && !strings.EqualFold(crop.Season, season) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(crop.Name), query) &&
			!strings.Contains(strings.ToLower(crop.ScientificName), query) {
			continue
		}
		out = append(out, crop)
	}
	return out
}
