package models

import "time"

// MemberPrice is a negotiated unit price for one member, independent of quantity.
type MemberPrice struct {
	MemberID   int    `json:"member_id"`
	MemberName string `json:"member_name,omitempty"`
	Price      int64  `json:"harga"`
}

// BulkTier is a harga grosir row: the unit price once the quantity reaches MinQty.
type BulkTier struct {
	MinQty int   `json:"min_qty"`
	Price  int64 `json:"harga"`
}

type Product struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Unit         string        `json:"satuan"`
	Cost         int64         `json:"modal"`
	Price        int64         `json:"harga"`
	Barcode      string        `json:"barcode"`
	Note         string        `json:"note"`
	Expired      string        `json:"expired"`
	MemberPrices []MemberPrice `json:"member_prices"`
	BulkTiers    []BulkTier    `json:"harga_grosir"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Clone returns a copy whose tier slices do not alias p's.
func (p Product) Clone() Product {
	out := p
	if p.MemberPrices != nil {
		out.MemberPrices = append([]MemberPrice(nil), p.MemberPrices...)
	}
	if p.BulkTiers != nil {
		out.BulkTiers = append([]BulkTier(nil), p.BulkTiers...)
	}
	return out
}
