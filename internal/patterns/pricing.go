package patterns

import (
	"math"

	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Price Pattern Detection
//
// Wash trades are priced by the operator, not the market, and it shows:
//
//   - Round prices: exact integers are suspiciously convenient. Organic
//     trades settle at market-driven fractional prices.
//   - Mean deviation: a price far from the batch average (default ±10%)
//     suggests the trade ignored prevailing levels.
//   - Statistical outliers: z-score of the price against the batch
//     distribution; |z| > 2 marks roughly the 5% tail under normality.
//
// The z-score detector needs at least two transfers to have a
// distribution at all; below that it returns empty rather than erroring.

// DefaultPriceThreshold is the relative deviation from the batch mean.
const DefaultPriceThreshold = 0.1

// DefaultZScoreThreshold is the outlier cutoff.
const DefaultZScoreThreshold = 2.0

// UnusualPrices flags transfers priced at an exact integer or deviating
// from the batch mean price by more than the relative threshold.
func UnusualPrices(g *graph.Graph, priceThreshold float64) []models.TransferRecord {
	records := g.Records()
	prices := make([]float64, len(records))
	for i, tx := range records {
		prices[i] = tx.Price
	}
	avg := mean(prices)

	var unusual []models.TransferRecord
	for _, tx := range records {
		if math.Mod(tx.Price, 1) == 0 || math.Abs(tx.Price-avg) > priceThreshold*avg {
			unusual = append(unusual, tx)
		}
	}
	return unusual
}

// PriceOutliers flags transfers whose price z-score against the batch
// distribution exceeds the threshold in absolute value. Batches with
// fewer than two transfers are insufficient data and return empty.
func PriceOutliers(g *graph.Graph, zThreshold float64) []models.TransferRecord {
	records := g.Records()
	if len(records) < 2 {
		return nil
	}

	prices := make([]float64, len(records))
	for i, tx := range records {
		prices[i] = tx.Price
	}
	m := mean(prices)
	sd := stddev(prices)
	if sd == 0 {
		return nil
	}

	var outliers []models.TransferRecord
	for _, tx := range records {
		if math.Abs(tx.Price-m)/sd > zThreshold {
			outliers = append(outliers, tx)
		}
	}
	return outliers
}
