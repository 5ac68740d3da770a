package models

import "time"

type Sale struct {
	ID         int        `json:"id"`
	KasirID    int        `json:"kasir_id"`
	KasirName  string     `json:"kasir_name"`
	MemberID   int        `json:"member_id"`
	MemberName string     `json:"member_name"`
	Total      int64      `json:"total"`
	TotalItems int        `json:"total_items"`
	DateAdded  time.Time  `json:"date_added"`
	Items      []SaleItem `json:"items,omitempty"`
}

type SaleItem struct {
	ID          int    `json:"id"`
	SaleID      int    `json:"sale_id"`
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	Unit        string `json:"satuan"`
	Price       int64  `json:"harga"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"sub_total"`
}
