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

type SaleRepository struct {
	db *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create stores the sale header and its lines atomically. Product names and
// units are copied from the catalog so receipts survive later catalog edits.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var memberID *int
	if sale.MemberID != models.GeneralMemberID {
		memberID = &sale.MemberID
	}

	sale.DateAdded = time.Now()
	err = tx.QueryRow(ctx,
		`INSERT INTO sales (kasir_id, member_id, total, total_items, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		sale.KasirID, memberID, sale.Total, sale.TotalItems, sale.DateAdded,
	).Scan(&sale.ID)
	if err != nil {
		return translateError(fmt.Errorf("insert sale: %w", err))
	}

	for i := range sale.Items {
		item := &sale.Items[i]
		item.SaleID = sale.ID
		err := tx.QueryRow(ctx,
			`INSERT INTO sale_items (sale_id, product_id, product_name, satuan, harga, quantity, sub_total)
			 SELECT $1, p.id, p.name, p.satuan, $3, $4, $5 FROM products p WHERE p.id = $2
			 RETURNING id, product_name, satuan`,
			sale.ID, item.ProductID, item.Price, item.Quantity, item.Subtotal,
		).Scan(&item.ID, &item.ProductName, &item.Unit)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("sale line %d: product %d: %w", i, item.ProductID, ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("insert sale line %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *SaleRepository) List(ctx context.Context, page, limit int, search string) ([]models.Sale, int, error) {
	offset := (page - 1) * limit
	pattern := containsPattern(search)
	where := `WHERE CAST(s.id AS TEXT) LIKE $1 OR COALESCE(m.name, '') ILIKE $1 OR u.full_name ILIKE $1`

	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM sales s
		 JOIN users u ON u.id = s.kasir_id
		 LEFT JOIN members m ON m.id = s.member_id `+where, pattern).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.kasir_id, u.full_name, COALESCE(s.member_id, 0), COALESCE(m.name, $4),
		        s.total, s.total_items, s.created_at
		 FROM sales s
		 JOIN users u ON u.id = s.kasir_id
		 LEFT JOIN members m ON m.id = s.member_id `+where+`
		 ORDER BY s.created_at DESC LIMIT $2 OFFSET $3`,
		pattern, limit, offset, models.GeneralMemberName)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	sales, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Sale, error) {
		var s models.Sale
		err := row.Scan(&s.ID, &s.KasirID, &s.KasirName, &s.MemberID, &s.MemberName, &s.Total, &s.TotalItems, &s.DateAdded)
		return s, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan sales: %w", err)
	}
	return sales, total, nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id int) (*models.Sale, error) {
	var s models.Sale
	err := r.db.QueryRow(ctx,
		`SELECT s.id, s.kasir_id, u.full_name, COALESCE(s.member_id, 0), COALESCE(m.name, $2),
		        s.total, s.total_items, s.created_at
		 FROM sales s
		 JOIN users u ON u.id = s.kasir_id
		 LEFT JOIN members m ON m.id = s.member_id
		 WHERE s.id = $1`, id, models.GeneralMemberName,
	).Scan(&s.ID, &s.KasirID, &s.KasirName, &s.MemberID, &s.MemberName, &s.Total, &s.TotalItems, &s.DateAdded)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get sale %d: %w", id, err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, sale_id, product_id, product_name, satuan, harga, quantity, sub_total
		 FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	s.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SaleItem, error) {
		var it models.SaleItem
		err := row.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Unit, &it.Price, &it.Quantity, &it.Subtotal)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan sale items: %w", err)
	}
	return &s, nil
}
