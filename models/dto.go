package models

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin kasir"`
}

type ProductRequest struct {
	Name         string        `json:"name" binding:"required"`
	Unit         string        `json:"satuan" binding:"required"`
	Cost         int64         `json:"modal" binding:"min=0"`
	Price        int64         `json:"harga" binding:"min=0"`
	Barcode      string        `json:"barcode" binding:"required"`
	Note         string        `json:"note"`
	Expired      string        `json:"expired"`
	MemberPrices []MemberPrice `json:"member_prices"`
	BulkTiers    []BulkTier    `json:"harga_grosir"`
}

// ToProduct copies the request into a product without an id.
func (r ProductRequest) ToProduct() Product {
	return Product{
		Name:         r.Name,
		Unit:         r.Unit,
		Cost:         r.Cost,
		Price:        r.Price,
		Barcode:      r.Barcode,
		Note:         r.Note,
		Expired:      r.Expired,
		MemberPrices: r.MemberPrices,
		BulkTiers:    r.BulkTiers,
	}
}

type MemberRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Note    string `json:"note"`
}

// SaleLineRequest is one line of a sale submission.
type SaleLineRequest struct {
	ProductID int   `json:"product_id" binding:"required,min=1"`
	Price     int64 `json:"harga" binding:"min=0"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest is the payload accepted by the sales recorder.
type CreateSaleRequest struct {
	KasirID  int               `json:"kasir_id"`
	MemberID int               `json:"member_id" binding:"min=0"`
	Total    int64             `json:"total" binding:"min=0"`
	Products []SaleLineRequest `json:"products" binding:"required,min=1,dive"`
}

type OpenSessionRequest struct {
	MemberID int `json:"member_id" binding:"min=0"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required,min=1"`
}

// ChangeQuantityRequest is left unconstrained so the cart can reject bad quantities itself.
type ChangeQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetPriceRequest pins a manual unit price; a null harga clears it.
type SetPriceRequest struct {
	Price *int64 `json:"harga"`
}

type ChangeMemberRequest struct {
	MemberID int `json:"member_id" binding:"min=0"`
}
