package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"sinar-terang/models"
	"sinar-terang/repositories"
)

type memProductStore struct {
	mu       sync.Mutex
	nextID   int
	products map[int]models.Product
	// members known to the store, for foreign key checks on member prices
	members map[int]bool
	calls   map[string]int
}

func newMemProductStore(memberIDs ...int) *memProductStore {
	s := &memProductStore{products: map[int]models.Product{}, members: map[int]bool{}, calls: map[string]int{}}
	for _, id := range memberIDs {
		s.members[id] = true
	}
	return s
}

func (s *memProductStore) sorted() []models.Product {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memProductStore) List(ctx context.Context, page, limit int, search string) ([]models.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["List"]++

	var matched []models.Product
	for _, p := range s.sorted() {
		if search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) || p.Barcode == search {
			matched = append(matched, p)
		}
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], len(matched), nil
}

func (s *memProductStore) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	items, _, err := s.List(ctx, 1, limit, term)
	return items, err
}

func (s *memProductStore) All(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(), nil
}

func (s *memProductStore) GetByID(ctx context.Context, id int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p = p.Clone()
	return &p, nil
}

func (s *memProductStore) check(p *models.Product) error {
	for _, existing := range s.products {
		if existing.Barcode == p.Barcode && existing.ID != p.ID {
			return errors.Join(repositories.ErrDuplicate, errors.New("products_barcode_key"))
		}
	}
	for _, mp := range p.MemberPrices {
		if !s.members[mp.MemberID] {
			return errors.Join(repositories.ErrInvalidReference, errors.New("member_id fkey"))
		}
	}
	return nil
}

func (s *memProductStore) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(p); err != nil {
		return err
	}
	s.nextID++
	p.ID = s.nextID
	s.products[p.ID] = p.Clone()
	return nil
}

func (s *memProductStore) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	if err := s.check(p); err != nil {
		return err
	}
	s.products[p.ID] = p.Clone()
	return nil
}

func (s *memProductStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *memProductStore) Import(ctx context.Context, products []models.Product) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range products {
		p := &products[i]
		for _, existing := range s.products {
			if existing.Barcode == p.Barcode {
				p.ID = existing.ID
			}
		}
		if p.ID == 0 {
			s.nextID++
			p.ID = s.nextID
		}
		s.products[p.ID] = p.Clone()
	}
	return len(products), nil
}

func (s *memProductStore) CountByMember(ctx context.Context, memberID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.products {
		for _, mp := range p.MemberPrices {
			if mp.MemberID == memberID {
				n++
			}
		}
	}
	return n, nil
}

type memCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string][]byte{}
	c.invalidated++
	return nil
}

type memMemberStore struct {
	mu      sync.Mutex
	nextID  int
	members map[int]models.Member
	// ids referenced by sales; deleting them trips the foreign key
	withSales map[int]bool
}

func newMemMemberStore(names ...string) *memMemberStore {
	s := &memMemberStore{members: map[int]models.Member{}, withSales: map[int]bool{}}
	for _, name := range names {
		m := models.Member{Name: name}
		_ = s.Create(context.Background(), &m)
	}
	return s
}

func (s *memMemberStore) List(ctx context.Context, page, limit int, search string) ([]models.Member, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Member
	for _, m := range s.members {
		if search == "" || strings.Contains(strings.ToLower(m.Name), strings.ToLower(search)) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	total := len(out)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (s *memMemberStore) GetByID(ctx context.Context, id int) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &m, nil
}

func (s *memMemberStore) Create(ctx context.Context, m *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	m.ID = s.nextID
	s.members[m.ID] = *m
	return nil
}

func (s *memMemberStore) Update(ctx context.Context, m *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[m.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.members[m.ID] = *m
	return nil
}

func (s *memMemberStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return repositories.ErrNotFound
	}
	if s.withSales[id] {
		return errors.Join(repositories.ErrInvalidReference, errors.New("sales_member_id_fkey"))
	}
	delete(s.members, id)
	return nil
}

type memSaleStore struct {
	mu     sync.Mutex
	sales  []models.Sale
	fail   error
	known  map[int]bool
	nextID int
}

func (s *memSaleStore) Create(ctx context.Context, sale *models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	for _, it := range sale.Items {
		if s.known != nil && !s.known[it.ProductID] {
			return repositories.ErrNotFound
		}
	}
	s.nextID++
	sale.ID = s.nextID
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}
	s.sales = append(s.sales, *sale)
	return nil
}

func (s *memSaleStore) List(ctx context.Context, page, limit int, search string) ([]models.Sale, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Sale(nil), s.sales...), len(s.sales), nil
}

func (s *memSaleStore) GetByID(ctx context.Context, id int) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sale := range s.sales {
		if sale.ID == id {
			return &sale, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type memUserStore struct {
	mu     sync.Mutex
	nextID int
	users  []models.User
}

func (s *memUserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return errors.Join(repositories.ErrDuplicate, errors.New("users_username_key"))
		}
	}
	s.nextID++
	u.ID = s.nextID
	s.users = append(s.users, *u)
	return nil
}

func (s *memUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memUserStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...), nil
}
