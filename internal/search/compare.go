package search

import (
	"github.com/propchain/propchain-api/internal/pricing"
	"github.com/propchain/propchain-api/internal/store/schema"
)

// MaxCompareProperties bounds how many listings can be compared side by side
const MaxCompareProperties = 3

// Superlatives marks, for each compared attribute, the index of the property
// holding the best value. Best means lowest for price and highest for
// everything else. On ties the first occurrence in input order wins. An index
// of -1 means the attribute could not be compared (fewer than two properties,
// or for walk score, no compared property carries one).
type Superlatives struct {
	LowestPrice     int `json:"lowestPrice"`
	MostBedrooms    int `json:"mostBedrooms"`
	MostBathrooms   int `json:"mostBathrooms"`
	LargestArea     int `json:"largestArea"`
	MostParking     int `json:"mostParking"`
	NewestYearBuilt int `json:"newestYearBuilt"`
	BestWalkScore   int `json:"bestWalkScore"`
}

// Compare computes per-attribute superlatives for up to MaxCompareProperties
// listings. Prices are normalized to USD before comparison so listings priced
// in different currencies compare fairly.
func Compare(properties []*schema.Property, rates pricing.RateTable) Superlatives {
	if len(properties) > MaxCompareProperties {
		properties = properties[:MaxCompareProperties]
	}

	superlatives := Superlatives{
		LowestPrice:     -1,
		MostBedrooms:    -1,
		MostBathrooms:   -1,
		LargestArea:     -1,
		MostParking:     -1,
		NewestYearBuilt: -1,
		BestWalkScore:   -1,
	}
	if len(properties) < 2 {
		return superlatives
	}

	superlatives.LowestPrice = indexOfBest(properties, func(p *schema.Property) float64 {
		return normalizedPrice(p, rates)
	}, false)
	superlatives.MostBedrooms = indexOfBest(properties, func(p *schema.Property) float64 {
		return float64(p.Bedrooms)
	}, true)
	superlatives.MostBathrooms = indexOfBest(properties, func(p *schema.Property) float64 {
		return float64(p.Bathrooms)
	}, true)
	superlatives.LargestArea = indexOfBest(properties, func(p *schema.Property) float64 {
		return p.AreaSqFt
	}, true)
	superlatives.MostParking = indexOfBest(properties, func(p *schema.Property) float64 {
		return float64(p.Parking)
	}, true)
	superlatives.NewestYearBuilt = indexOfBest(properties, func(p *schema.Property) float64 {
		return float64(p.YearBuilt)
	}, true)
	superlatives.BestWalkScore = indexOfBestWalkScore(properties)

	return superlatives
}

// indexOfBestWalkScore returns the index of the highest walk score. Listings
// carrying no score are skipped; -1 when none carry one.
func indexOfBestWalkScore(properties []*schema.Property) int {
	best := -1
	for i, p := range properties {
		if p.WalkScore == nil {
			continue
		}
		if best == -1 || *p.WalkScore > *properties[best].WalkScore {
			best = i
		}
	}
	return best
}

// indexOfBest returns the index of the highest (or lowest) value. A strict
// comparison keeps the first occurrence on ties.
func indexOfBest(properties []*schema.Property, value func(*schema.Property) float64, highest bool) int {
	best := 0
	for i := 1; i < len(properties); i++ {
		v := value(properties[i])
		bestValue := value(properties[best])
		if highest && v > bestValue {
			best = i
		}
		if !highest && v < bestValue {
			best = i
		}
	}
	return best
}
