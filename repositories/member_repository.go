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

type MemberRepository struct {
	db *pgxpool.Pool
}

func NewMemberRepository(db *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{db: db}
}

const memberColumns = `id, name, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(note, ''), created_at, updated_at`

func scanMember(row pgx.Row) (models.Member, error) {
	var m models.Member
	err := row.Scan(&m.ID, &m.Name, &m.Address, &m.Phone, &m.Note, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *MemberRepository) List(ctx context.Context, page, limit int, search string) ([]models.Member, int, error) {
	offset := (page - 1) * limit
	pattern := containsPattern(search)

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM members WHERE name ILIKE $1 OR phone ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count members: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+memberColumns+` FROM members WHERE name ILIKE $1 OR phone ILIKE $1
		 ORDER BY name LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Member, error) {
		return scanMember(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("scan members: %w", err)
	}
	return members, total, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id int) (*models.Member, error) {
	m, err := scanMember(r.db.QueryRow(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get member %d: %w", id, err)
	}
	return &m, nil
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	now := time.Now()
	return r.db.QueryRow(ctx,
		`INSERT INTO members (name, address, phone, note, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $5) RETURNING id, created_at, updated_at`,
		member.Name, member.Address, member.Phone, member.Note, now,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
}

func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now()
	tag, err := r.db.Exec(ctx,
		`UPDATE members SET name = $1, address = $2, phone = $3, note = $4, updated_at = $5 WHERE id = $6`,
		member.Name, member.Address, member.Phone, member.Note, member.UpdatedAt, member.ID)
	if err != nil {
		return fmt.Errorf("update member %d: %w", member.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return translateError(fmt.Errorf("delete member %d: %w", id, err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
