package pricing

import "math"

// LineTotal returns quantity × price for a non-negative price. It reports false
// when the product does not fit in an int64.
func LineTotal(quantity int, price int64) (int64, bool) {
	if quantity < 0 || price < 0 {
		return 0, false
	}
	if price != 0 && int64(quantity) > math.MaxInt64/price {
		return 0, false
	}
	return int64(quantity) * price, true
}

// AddAmount adds two non-negative rupiah amounts, reporting false on overflow.
func AddAmount(a, b int64) (int64, bool) {
	if a < 0 || b < 0 || a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}
