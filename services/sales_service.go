package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"sinar-terang/models"
	"sinar-terang/pricing"
	"sinar-terang/repositories"
	"sinar-terang/utils"
)

// SalesService records finished checkouts. It trusts the submitted unit
// prices but not the arithmetic: every subtotal and the grand total are
// recomputed and must agree with what the cashier showed.
type SalesService struct {
	repo   SaleStore
	logger *zap.Logger
}

func NewSalesService(repo SaleStore, logger *zap.Logger) *SalesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesService{repo: repo, logger: logger}
}

func (s *SalesService) Record(ctx context.Context, req models.CreateSaleRequest) (*models.Sale, error) {
	sale, err := buildSale(req)
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(ctx, sale)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("%w: %v", ErrProductNotFound, err)
	case errors.Is(err, repositories.ErrInvalidReference):
		return nil, fmt.Errorf("%w: unknown kasir or member", ErrInvalidSale)
	case err != nil:
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.Int("sale_id", sale.ID),
		zap.Int("kasir_id", sale.KasirID),
		zap.Int("member_id", sale.MemberID),
		zap.Int64("total", sale.Total),
		zap.Int("total_items", sale.TotalItems),
	)
	return sale, nil
}

func (s *SalesService) List(ctx context.Context, page, limit int, search string) (models.Page[models.Sale], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	sales, total, err := s.repo.List(ctx, page, limit, strings.TrimSpace(search))
	if err != nil {
		return models.Page[models.Sale]{}, err
	}
	if sales == nil {
		sales = []models.Sale{}
	}
	return models.Page[models.Sale]{Items: sales, Meta: utils.NewPaginationMeta(page, limit, total)}, nil
}

func (s *SalesService) Get(ctx context.Context, id int) (*models.Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrSaleNotFound
	}
	return sale, err
}

func buildSale(req models.CreateSaleRequest) (*models.Sale, error) {
	if req.KasirID < 1 {
		return nil, fmt.Errorf("%w: kasir is required", ErrInvalidSale)
	}
	if req.MemberID < 0 {
		return nil, fmt.Errorf("%w: member_id must not be negative", ErrInvalidSale)
	}
	if len(req.Products) == 0 {
		return nil, ErrEmptyCart
	}

	sale := &models.Sale{
		KasirID:  req.KasirID,
		MemberID: req.MemberID,
		Items:    make([]models.SaleItem, 0, len(req.Products)),
	}
	seen := make(map[int]bool, len(req.Products))
	for i, line := range req.Products {
		switch {
		case line.ProductID < 1:
			return nil, fmt.Errorf("%w: line %d has no product", ErrInvalidSale, i)
		case line.Quantity < 1:
			return nil, fmt.Errorf("%w: line %d quantity must be at least 1", ErrInvalidSale, i)
		case line.Price < 0:
			return nil, fmt.Errorf("%w: line %d harga must not be negative", ErrInvalidSale, i)
		case seen[line.ProductID]:
			return nil, fmt.Errorf("%w: product %d appears twice", ErrInvalidSale, line.ProductID)
		}
		seen[line.ProductID] = true

		subtotal, ok := pricing.LineTotal(line.Quantity, line.Price)
		if !ok {
			return nil, fmt.Errorf("%w: line %d subtotal is out of range", ErrInvalidSale, i)
		}
		total, ok := pricing.AddAmount(sale.Total, subtotal)
		if !ok {
			return nil, fmt.Errorf("%w: total is out of range", ErrInvalidSale)
		}
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		sale.Total = total
		sale.TotalItems += line.Quantity
	}

	if sale.Total != req.Total {
		return nil, fmt.Errorf("%w: submitted %d, lines add up to %d", ErrTotalMismatch, req.Total, sale.Total)
	}
	return sale, nil
}
