package patterns

import (
	"github.com/rawblock/washtrade-engine/pkg/models"
)

// Economic Sanity Checks
//
// Two batch-local indicators of economically irrational transfers:
//
//   - Irrational value: zero, negative, or absurdly large amounts. Wash
//     operators frequently move tokens at throwaway values because the
//     "price" never needs to clear a real market.
//   - Fee-to-value ratio: paying more than a fraction of the transferred
//     value in fees makes no economic sense for a genuine trade, but is a
//     rounding error for an operator cycling their own funds.
//
// Indicators that need external market context (volume history, price
// feeds, collection valuation) belong to the market-data collaborator,
// not this core.

// irrationalValueCeiling is the sanity upper bound on transfer amounts.
const irrationalValueCeiling = 1e9

// DefaultFeeRatioThreshold flags transfers paying this fraction of their
// value in fees.
const DefaultFeeRatioThreshold = 0.1

// IrrationalValues flags transfers with non-positive or absurdly large
// amounts.
func IrrationalValues(records []models.TransferRecord) []models.EconomicFlag {
	var flags []models.EconomicFlag
	for _, tx := range records {
		if tx.Amount <= 0 || tx.Amount > irrationalValueCeiling {
			flags = append(flags, models.EconomicFlag{Record: tx, Reason: "irrational_value"})
		}
	}
	return flags
}

// HighFeeRatio flags transfers whose fee exceeds the threshold fraction
// of the transferred amount. Transfers with non-positive amounts are the
// irrational-value detector's job and are skipped here.
func HighFeeRatio(records []models.TransferRecord, threshold float64) []models.EconomicFlag {
	var flags []models.EconomicFlag
	for _, tx := range records {
		if tx.Amount > 0 && tx.Fee/tx.Amount > threshold {
			flags = append(flags, models.EconomicFlag{Record: tx, Reason: "high_fee_ratio"})
		}
	}
	return flags
}
