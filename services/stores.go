package services

import (
	"context"

	"sinar-terang/models"
)

// The stores below are satisfied by the postgres repositories and by in-memory fakes in tests.

type ProductStore interface {
	List(ctx context.Context, page, limit int, search string) ([]models.Product, int, error)
	Search(ctx context.Context, term string, limit int) ([]models.Product, error)
	All(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error
	Import(ctx context.Context, products []models.Product) (int, error)
	CountByMember(ctx context.Context, memberID int) (int, error)
}

type ProductCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}

type MemberStore interface {
	List(ctx context.Context, page, limit int, search string) ([]models.Member, int, error)
	GetByID(ctx context.Context, id int) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id int) error
}

type SaleStore interface {
	Create(ctx context.Context, sale *models.Sale) error
	List(ctx context.Context, page, limit int, search string) ([]models.Sale, int, error)
	GetByID(ctx context.Context, id int) (*models.Sale, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}
