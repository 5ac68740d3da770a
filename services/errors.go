package services

import "errors"

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrInvalidProduct        = errors.New("invalid product")
	ErrDuplicateBarcode      = errors.New("barcode already used by another product")
	ErrUnknownMember         = errors.New("member price references an unknown member")
	ErrMemberNotFound        = errors.New("member not found")
	ErrMemberInUse           = errors.New("member still has member prices")
	ErrMemberHasSales        = errors.New("member is referenced by recorded sales")
	ErrInvalidMember         = errors.New("invalid member")
	ErrGeneralMemberReadOnly = errors.New("the general member cannot be changed")
	ErrSaleNotFound          = errors.New("sale not found")
	ErrInvalidSale           = errors.New("invalid sale")
	ErrTotalMismatch         = errors.New("sale total does not match its lines")
	ErrSessionNotFound       = errors.New("cashier session not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrSessionForbidden      = errors.New("cashier session belongs to another kasir")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUsernameTaken         = errors.New("username already registered")
	ErrUserNotFound          = errors.New("user not found")
)

