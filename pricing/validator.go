package pricing

import "sinar-terang/models"

// MinBulkQty is the smallest quantity a harga grosir tier may start at.
const MinBulkQty = 2

// TierValidation lists offending row indices per tier collection.
// Duplicate rows never include the first occurrence of a key.
type TierValidation struct {
	DuplicateMemberRows []int `json:"duplicate_member_rows,omitempty"`
	InvalidMemberRows   []int `json:"invalid_member_rows,omitempty"`
	DuplicateBulkRows   []int `json:"duplicate_grosir_rows,omitempty"`
	InvalidBulkRows     []int `json:"invalid_grosir_rows,omitempty"`
}

func (v TierValidation) Valid() bool {
	return len(v.DuplicateMemberRows) == 0 &&
		len(v.InvalidMemberRows) == 0 &&
		len(v.DuplicateBulkRows) == 0 &&
		len(v.InvalidBulkRows) == 0
}

// Err returns a *ValidationError, or nil when the tiers are acceptable.
func (v TierValidation) Err() error {
	if v.Valid() {
		return nil
	}
	return &ValidationError{Result: v}
}

// ValidateTiers checks the tier collections of a product definition.
func ValidateTiers(memberPrices []models.MemberPrice, bulkTiers []models.BulkTier) TierValidation {
	var v TierValidation

	v.DuplicateMemberRows = duplicateRows(memberPrices, func(mp models.MemberPrice) int { return mp.MemberID })
	for i, mp := range memberPrices {
		if mp.MemberID <= models.GeneralMemberID || mp.Price < 0 {
			v.InvalidMemberRows = append(v.InvalidMemberRows, i)
		}
	}

	v.DuplicateBulkRows = duplicateRows(bulkTiers, func(t models.BulkTier) int { return t.MinQty })
	for i, t := range bulkTiers {
		if t.MinQty < MinBulkQty || t.Price < 0 {
			v.InvalidBulkRows = append(v.InvalidBulkRows, i)
		}
	}

	return v
}

func duplicateRows[T any](rows []T, key func(T) int) []int {
	seen := make(map[int]int, len(rows))
	var dups []int
	for i, row := range rows {
		k := key(row)
		if _, ok := seen[k]; ok {
			dups = append(dups, i)
			continue
		}
		seen[k] = i
	}
	return dups
}
