// Package baseline reduces a direct-route offer list to a protected baseline:
// the highest price among the cheapest-N offers. A connection has to beat
// this ceiling, not merely the single cheapest direct fare, because a direct
// ticket at or under the ceiling is protected against disruption while a
// self-assembled connection is not.
package baseline

import (
	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/pkg/money"
)

// DefaultSampleSize bounds how many of the cheapest offers feed the baseline,
// so a long tail of expensive offers cannot skew it.
const DefaultSampleSize = 10

// Estimate computes the protected baseline over the first min(sampleSize, N)
// priced offers in input order. The provider is asked for cheapest-first
// ordering, so the prefix is the cheapest-N sample. Offers that failed price
// parsing are skipped and do not consume sample slots. An empty list yields
// the degenerate baseline {0, 0}.
func Estimate(offers []models.Offer, sampleSize int) models.ProtectedBaseline {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	var b models.ProtectedBaseline
	for _, o := range offers {
		if !o.Priced {
			continue
		}
		if o.Price > b.Amount {
			b.Amount = o.Price
		}
		b.SampleSize++
		if b.SampleSize == sampleSize {
			break
		}
	}
	return b
}

// MinPrice returns the lowest price among the first min(sampleSize, N) priced
// offers, used for per-leg minimums in connection evaluation. The second
// return is false when no offer in the sample carried a parsable price.
func MinPrice(offers []models.Offer, sampleSize int) (amount money.Amount, ok bool) {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	seen := 0
	var min money.Amount
	for _, o := range offers {
		if !o.Priced {
			continue
		}
		if seen == 0 || o.Price < min {
			min = o.Price
		}
		seen++
		if seen == sampleSize {
			break
		}
	}
	if seen == 0 {
		return 0, false
	}
	return min, true
}
