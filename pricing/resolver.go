package pricing

import "sinar-terang/models"

// Resolve returns the unit price to charge for quantity units of p.
//
// A manual override always wins. Otherwise a concrete member's negotiated price
// is used, then the bulk tier with the largest qualifying min_qty, then the
// base price. quantity must already be at least 1.
func Resolve(p models.Product, memberID, quantity int, override *int64) int64 {
	if override != nil {
		return *override
	}
	if price, ok := MemberPriceFor(p.MemberPrices, memberID); ok {
		return price
	}
	if tier, ok := BulkTierFor(p.BulkTiers, quantity); ok {
		return tier.Price
	}
	return p.Price
}

// MemberPriceFor finds the member price for memberID. The general member never has one.
func MemberPriceFor(prices []models.MemberPrice, memberID int) (int64, bool) {
	if memberID == models.GeneralMemberID {
		return 0, false
	}
	for _, mp := range prices {
		if mp.MemberID == memberID {
			return mp.Price, true
		}
	}
	return 0, false
}

// BulkTierFor picks the closest qualifying threshold, not the cheapest tier.
func BulkTierFor(tiers []models.BulkTier, quantity int) (models.BulkTier, bool) {
	var (
		best  models.BulkTier
		found bool
	)
	for _, t := range tiers {
		if t.MinQty > quantity {
			continue
		}
		if !found || t.MinQty > best.MinQty {
			best, found = t, true
		}
	}
	return best, found
}
