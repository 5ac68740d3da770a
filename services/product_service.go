package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"sinar-terang/models"
	"sinar-terang/pricing"
	"sinar-terang/repositories"
	"sinar-terang/utils"
)

const searchLimit = 20

type ProductService struct {
	repo   ProductStore
	cache  ProductCache
	logger *zap.Logger
}

func NewProductService(repo ProductStore, cache ProductCache, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{repo: repo, cache: cache, logger: logger}
}

// ImportError points at the first rejected row of an import.
type ImportError struct {
	Row int
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

func (s *ProductService) List(ctx context.Context, page, limit int, search string) (models.Page[models.Product], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	search = strings.TrimSpace(search)

	var out models.Page[models.Product]
	key := fmt.Sprintf("list:p%d:l%d:q%s", page, limit, strings.ToLower(search))
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}

	products, total, err := s.repo.List(ctx, page, limit, search)
	if err != nil {
		return out, err
	}

	out = models.Page[models.Product]{Items: products, Meta: utils.NewPaginationMeta(page, limit, total)}
	s.cacheSet(ctx, key, out)
	return out, nil
}

// Search is the catalog lookup used at the cashier.
func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Product{}, nil
	}

	var out []models.Product
	key := "search:" + strings.ToLower(term)
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}

	out, err := s.repo.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, out)
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	product := req.ToProduct()
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &product); err != nil {
		return nil, translateProductError(err)
	}
	s.invalidate(ctx)
	s.logger.Info("product created", zap.Int("product_id", product.ID), zap.String("barcode", product.Barcode))
	return s.Get(ctx, product.ID)
}

func (s *ProductService) Update(ctx context.Context, id int, req models.ProductRequest) (*models.Product, error) {
	product := req.ToProduct()
	product.ID = id
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &product); err != nil {
		return nil, translateProductError(err)
	}
	s.invalidate(ctx)
	s.logger.Info("product updated", zap.Int("product_id", id))
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translateProductError(err)
	}
	s.invalidate(ctx)
	s.logger.Info("product deleted", zap.Int("product_id", id))
	return nil
}

// Import validates every row before writing any of them.
func (s *ProductService) Import(ctx context.Context, rows []models.ProductRequest) (int, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("%w: no rows to import", ErrInvalidProduct)
	}

	products := make([]models.Product, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		p := row.ToProduct()
		if err := validateProduct(p); err != nil {
			return 0, &ImportError{Row: i, Err: err}
		}
		if first, ok := seen[p.Barcode]; ok {
			return 0, &ImportError{Row: i, Err: fmt.Errorf("%w: barcode %q repeats row %d", ErrInvalidProduct, p.Barcode, first)}
		}
		seen[p.Barcode] = i
		products = append(products, p)
	}

	n, err := s.repo.Import(ctx, products)
	if err != nil {
		return 0, translateProductError(err)
	}
	s.invalidate(ctx)
	s.logger.Info("products imported", zap.Int("count", n))
	return n, nil
}

var exportHeader = []string{"id", "name", "satuan", "modal", "harga", "barcode", "note", "expired", "member_prices", "harga_grosir"}

// Export writes the whole catalog as CSV. Tier cells hold "key:harga" pairs separated by "|".
func (s *ProductService) Export(ctx context.Context, w io.Writer) error {
	products, err := s.repo.All(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Unit,
			strconv.FormatInt(p.Cost, 10),
			strconv.FormatInt(p.Price, 10),
			p.Barcode,
			p.Note,
			p.Expired,
			formatMemberPrices(p.MemberPrices),
			formatBulkTiers(p.BulkTiers),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func validateProduct(p models.Product) error {
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(p.Unit) == "" {
		problems = append(problems, "satuan is required")
	}
	if strings.TrimSpace(p.Barcode) == "" {
		problems = append(problems, "barcode is required")
	}
	if p.Cost < 0 {
		problems = append(problems, "modal must not be negative")
	}
	if p.Price < 0 {
		problems = append(problems, "harga must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProduct, strings.Join(problems, ", "))
	}
	return pricing.ValidateTiers(p.MemberPrices, p.BulkTiers).Err()
}

func translateProductError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrProductNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrDuplicateBarcode
	case errors.Is(err, repositories.ErrInvalidReference):
		return ErrUnknownMember
	}
	return err
}

func formatMemberPrices(prices []models.MemberPrice) string {
	parts := make([]string, 0, len(prices))
	for _, mp := range prices {
		parts = append(parts, fmt.Sprintf("%d:%d", mp.MemberID, mp.Price))
	}
	return strings.Join(parts, "|")
}

func formatBulkTiers(tiers []models.BulkTier) string {
	parts := make([]string, 0, len(tiers))
	for _, t := range tiers {
		parts = append(parts, fmt.Sprintf("%d:%d", t.MinQty, t.Price))
	}
	return strings.Join(parts, "|")
}

func (s *ProductService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		s.logger.Warn("product cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *ProductService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("product cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.Error(err))
	}
}
