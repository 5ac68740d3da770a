package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"sinar-terang/models"
	"sinar-terang/repositories"
	"sinar-terang/utils"
)

type MemberService struct {
	repo     MemberStore
	products ProductStore
	cache    ProductCache
	logger   *zap.Logger
}

// NewMemberService takes the catalog cache because cached products carry
// member names. cache may be nil.
func NewMemberService(repo MemberStore, products ProductStore, cache ProductCache, logger *zap.Logger) *MemberService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemberService{repo: repo, products: products, cache: cache, logger: logger}
}

// List pages through registered members. With withGeneral the "Umum" entry
// is prepended to the first page so the cashier can always pick it.
func (s *MemberService) List(ctx context.Context, page, limit int, search string, withGeneral bool) (models.Page[models.Member], error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	members, total, err := s.repo.List(ctx, page, limit, strings.TrimSpace(search))
	if err != nil {
		return models.Page[models.Member]{}, err
	}
	if withGeneral && page == 1 {
		members = append([]models.Member{models.GeneralMember()}, members...)
	}
	if members == nil {
		members = []models.Member{}
	}
	return models.Page[models.Member]{Items: members, Meta: utils.NewPaginationMeta(page, limit, total)}, nil
}

func (s *MemberService) Get(ctx context.Context, id int) (*models.Member, error) {
	if id == models.GeneralMemberID {
		m := models.GeneralMember()
		return &m, nil
	}
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

func (s *MemberService) Create(ctx context.Context, req models.MemberRequest) (*models.Member, error) {
	m := memberFromRequest(req)
	if m.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidMember)
	}
	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, err
	}
	s.logger.Info("member created", zap.Int("member_id", m.ID))
	return &m, nil
}

func (s *MemberService) Update(ctx context.Context, id int, req models.MemberRequest) (*models.Member, error) {
	if id == models.GeneralMemberID {
		return nil, ErrGeneralMemberReadOnly
	}
	m := memberFromRequest(req)
	m.ID = id
	if m.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidMember)
	}
	if err := s.repo.Update(ctx, &m); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	s.logger.Info("member updated", zap.Int("member_id", id))
	s.invalidateCatalog(ctx)
	return s.Get(ctx, id)
}

// Delete refuses members that still own member prices on some product.
func (s *MemberService) Delete(ctx context.Context, id int) error {
	if id == models.GeneralMemberID {
		return ErrGeneralMemberReadOnly
	}
	n, err := s.products.CountByMember(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d products", ErrMemberInUse, n)
	}

	err = s.repo.Delete(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrMemberNotFound
	case errors.Is(err, repositories.ErrInvalidReference):
		return ErrMemberHasSales
	case err != nil:
		return err
	}
	s.logger.Info("member deleted", zap.Int("member_id", id))
	s.invalidateCatalog(ctx)
	return nil
}

func (s *MemberService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("product cache invalidation failed", zap.Error(err))
	}
}

func memberFromRequest(req models.MemberRequest) models.Member {
	return models.Member{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Phone:   strings.TrimSpace(req.Phone),
		Note:    req.Note,
	}
}
