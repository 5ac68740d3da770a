package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sinar-terang/models"
)

var ErrNotFound = errors.New("record not found")

const productColumns = `p.id, p.name, p.satuan, p.modal, p.harga, p.barcode, COALESCE(p.note, ''), COALESCE(p.expired, ''), p.created_at, p.updated_at`

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Unit, &p.Cost, &p.Price, &p.Barcode, &p.Note, &p.Expired, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProductRepository) List(ctx context.Context, page, limit int, search string) ([]models.Product, int, error) {
	offset := (page - 1) * limit
	pattern := containsPattern(search)

	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM products p WHERE $1 = '%%' OR p.name ILIKE $1 OR p.barcode ILIKE $1`,
		pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products p
		 WHERE $1 = '%%' OR p.name ILIKE $1 OR p.barcode ILIKE $1
		 ORDER BY p.name LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	products, err := r.collect(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Search is the cashier's catalog lookup: exact barcode first, then name matches.
func (r *ProductRepository) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products p
		 WHERE p.barcode = $1 OR p.name ILIKE $3 OR CAST(p.id AS TEXT) = $1
		 ORDER BY (p.barcode = $1) DESC, p.name LIMIT $2`,
		term, limit, containsPattern(term))
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return r.collect(ctx, rows)
}

func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products p ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	return r.collect(ctx, rows)
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	products := []models.Product{p}
	if err := r.attachTiers(ctx, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertProduct(ctx, tx, product); err != nil {
		return translateError(err)
	}
	return tx.Commit(ctx)
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	product.UpdatedAt = time.Now()
	tag, err := tx.Exec(ctx,
		`UPDATE products SET name = $1, satuan = $2, modal = $3, harga = $4, barcode = $5,
		 note = $6, expired = $7, updated_at = $8 WHERE id = $9`,
		product.Name, product.Unit, product.Cost, product.Price, product.Barcode,
		product.Note, product.Expired, product.UpdatedAt, product.ID)
	if err != nil {
		return translateError(fmt.Errorf("update product %d: %w", product.ID, err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM product_member_prices WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("clear member prices: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM product_bulk_prices WHERE product_id = $1`, product.ID); err != nil {
		return fmt.Errorf("clear harga grosir: %w", err)
	}
	if err := insertTiers(ctx, tx, product); err != nil {
		return translateError(err)
	}
	return tx.Commit(ctx)
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translateError(fmt.Errorf("delete product %d: %w", id, err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Import upserts by barcode in a single transaction and returns the number of rows written.
func (r *ProductRepository) Import(ctx context.Context, products []models.Product) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for i := range products {
		p := &products[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO products (name, satuan, modal, harga, barcode, note, expired, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			 ON CONFLICT (barcode) DO UPDATE SET name = EXCLUDED.name, satuan = EXCLUDED.satuan,
			   modal = EXCLUDED.modal, harga = EXCLUDED.harga, note = EXCLUDED.note,
			   expired = EXCLUDED.expired, updated_at = EXCLUDED.updated_at
			 RETURNING id, created_at, updated_at`,
			p.Name, p.Unit, p.Cost, p.Price, p.Barcode, p.Note, p.Expired, now,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return 0, translateError(fmt.Errorf("import row %d: %w", i, err))
		}
		if p.MemberPrices == nil && p.BulkTiers == nil {
			continue
		}
		if _, err := tx.Exec(ctx, `DELETE FROM product_member_prices WHERE product_id = $1`, p.ID); err != nil {
			return 0, fmt.Errorf("import row %d: %w", i, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM product_bulk_prices WHERE product_id = $1`, p.ID); err != nil {
			return 0, fmt.Errorf("import row %d: %w", i, err)
		}
		if err := insertTiers(ctx, tx, p); err != nil {
			return 0, translateError(fmt.Errorf("import row %d: %w", i, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(products), nil
}

// CountByMember counts the products carrying a member price for memberID.
func (r *ProductRepository) CountByMember(ctx context.Context, memberID int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM product_member_prices WHERE member_id = $1`, memberID).Scan(&n)
	return n, err
}

func insertProduct(ctx context.Context, tx pgx.Tx, product *models.Product) error {
	now := time.Now()
	err := tx.QueryRow(ctx,
		`INSERT INTO products (name, satuan, modal, harga, barcode, note, expired, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		 RETURNING id, created_at, updated_at`,
		product.Name, product.Unit, product.Cost, product.Price, product.Barcode,
		product.Note, product.Expired, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return insertTiers(ctx, tx, product)
}

func insertTiers(ctx context.Context, tx pgx.Tx, product *models.Product) error {
	batch := &pgx.Batch{}
	for _, mp := range product.MemberPrices {
		batch.Queue(`INSERT INTO product_member_prices (product_id, member_id, harga) VALUES ($1, $2, $3)`,
			product.ID, mp.MemberID, mp.Price)
	}
	for _, t := range product.BulkTiers {
		batch.Queue(`INSERT INTO product_bulk_prices (product_id, min_qty, harga) VALUES ($1, $2, $3)`,
			product.ID, t.MinQty, t.Price)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert tiers for product %d: %w", product.ID, err)
	}
	return nil
}

func (r *ProductRepository) collect(ctx context.Context, rows pgx.Rows) ([]models.Product, error) {
	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Product, error) {
		return scanProduct(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	if err := r.attachTiers(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) attachTiers(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]int, len(products))
	byID := make(map[int]*models.Product, len(products))
	for i := range products {
		ids[i] = products[i].ID
		byID[products[i].ID] = &products[i]
		products[i].MemberPrices = []models.MemberPrice{}
		products[i].BulkTiers = []models.BulkTier{}
	}

	rows, err := r.db.Query(ctx,
		`SELECT mp.product_id, mp.member_id, m.name, mp.harga
		 FROM product_member_prices mp JOIN members m ON m.id = mp.member_id
		 WHERE mp.product_id = ANY($1) ORDER BY mp.product_id, m.name`, ids)
	if err != nil {
		return fmt.Errorf("load member prices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID int
		var mp models.MemberPrice
		if err := rows.Scan(&productID, &mp.MemberID, &mp.MemberName, &mp.Price); err != nil {
			return fmt.Errorf("scan member price: %w", err)
		}
		p := byID[productID]
		p.MemberPrices = append(p.MemberPrices, mp)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	rows, err = r.db.Query(ctx,
		`SELECT product_id, min_qty, harga FROM product_bulk_prices
		 WHERE product_id = ANY($1) ORDER BY product_id, min_qty`, ids)
	if err != nil {
		return fmt.Errorf("load harga grosir: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var productID int
		var t models.BulkTier
		if err := rows.Scan(&productID, &t.MinQty, &t.Price); err != nil {
			return fmt.Errorf("scan harga grosir: %w", err)
		}
		p := byID[productID]
		p.BulkTiers = append(p.BulkTiers, t)
	}
	return rows.Err()
}
