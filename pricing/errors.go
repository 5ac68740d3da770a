package pricing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is returned when a product's pricing tiers are malformed.
	ErrValidation = errors.New("pricing: invalid tier definition")
	// ErrInvalidQuantity rejects quantities below one. Use RemoveProduct to drop a line.
	ErrInvalidQuantity = errors.New("pricing: quantity must be at least 1")
	// ErrInvalidPrice rejects negative manual prices.
	ErrInvalidPrice = errors.New("pricing: price must not be negative")
	// ErrItemNotInCart is returned when a mutation names a product the cart does not hold.
	ErrItemNotInCart = errors.New("pricing: product is not in the cart")
)

// ValidationError carries the offending rows of a rejected tier definition.
type ValidationError struct {
	Result TierValidation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 4)
	r := e.Result
	if len(r.DuplicateMemberRows) > 0 {
		parts = append(parts, fmt.Sprintf("member price must be unique per member (rows %v)", r.DuplicateMemberRows))
	}
	if len(r.InvalidMemberRows) > 0 {
		parts = append(parts, fmt.Sprintf("member price needs a real member and a non-negative harga (rows %v)", r.InvalidMemberRows))
	}
	if len(r.DuplicateBulkRows) > 0 {
		parts = append(parts, fmt.Sprintf("harga grosir must be unique per minimum quantity (rows %v)", r.DuplicateBulkRows))
	}
	if len(r.InvalidBulkRows) > 0 {
		parts = append(parts, fmt.Sprintf("harga grosir needs min_qty > 1 and a non-negative harga (rows %v)", r.InvalidBulkRows))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
