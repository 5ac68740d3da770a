package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"sinar-terang/controllers"
	"sinar-terang/models"
	"sinar-terang/repositories"
	"sinar-terang/services"
	"sinar-terang/utils"
)

const testSecret = "routes-secret"

type productStore struct {
	mu       sync.Mutex
	products []models.Product
}

func (s *productStore) List(ctx context.Context, page, limit int, search string) ([]models.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Product(nil), s.products...), len(s.products), nil
}

func (s *productStore) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.products {
		if p.Barcode == term {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *productStore) All(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Product(nil), s.products...), nil
}

func (s *productStore) GetByID(ctx context.Context, id int) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			p = p.Clone()
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *productStore) Create(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.Barcode == p.Barcode {
			return repositories.ErrDuplicate
		}
	}
	p.ID = len(s.products) + 1
	s.products = append(s.products, p.Clone())
	return nil
}

func (s *productStore) Update(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p.Clone()
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *productStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *productStore) Import(ctx context.Context, products []models.Product) (int, error) {
	for i := range products {
		if err := s.Create(ctx, &products[i]); err != nil {
			return 0, err
		}
	}
	return len(products), nil
}

func (s *productStore) CountByMember(ctx context.Context, memberID int) (int, error) {
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

type memberStore struct {
	mu      sync.Mutex
	members []models.Member
}

func (s *memberStore) List(ctx context.Context, page, limit int, search string) ([]models.Member, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Member(nil), s.members...), len(s.members), nil
}

func (s *memberStore) GetByID(ctx context.Context, id int) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memberStore) Create(ctx context.Context, m *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = len(s.members) + 1
	s.members = append(s.members, *m)
	return nil
}

func (s *memberStore) Update(ctx context.Context, m *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == m.ID {
			s.members[i] = *m
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *memberStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.members {
		if s.members[i].ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type saleStore struct {
	mu    sync.Mutex
	sales []models.Sale
}

func (s *saleStore) Create(ctx context.Context, sale *models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sale.ID = len(s.sales) + 1
	s.sales = append(s.sales, *sale)
	return nil
}

func (s *saleStore) List(ctx context.Context, page, limit int, search string) ([]models.Sale, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Sale(nil), s.sales...), len(s.sales), nil
}

func (s *saleStore) GetByID(ctx context.Context, id int) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sale := range s.sales {
		if sale.ID == id {
			return &sale, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type userStore struct {
	mu    sync.Mutex
	users []models.User
}

func (s *userStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return repositories.ErrDuplicate
		}
	}
	u.ID = len(s.users) + 1
	s.users = append(s.users, *u)
	return nil
}

func (s *userStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *userStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...), nil
}

type testServer struct {
	router   *gin.Engine
	products *productStore
	members  *memberStore
	sales    *saleStore
	users    *userStore
}

// newTestServer serves the production route table from in-memory stores.
// Admin has user id 1 and kasir has user id 2.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &testServer{
		products: &productStore{},
		members:  &memberStore{},
		sales:    &saleStore{},
		users:    &userStore{},
	}

	productSvc := services.NewProductService(ts.products, nil, nil)
	memberSvc := services.NewMemberService(ts.members, ts.products, nil, nil)
	salesSvc := services.NewSalesService(ts.sales, nil)
	authSvc := services.NewAuthService(ts.users, testSecret, time.Hour, nil)
	cashierSvc := services.NewCashierService(productSvc, memberSvc, salesSvc, time.Hour, nil)

	ctx := context.Background()
	_, err := authSvc.CreateUser(ctx, models.CreateUserRequest{Username: "admin", Password: "admin123", FullName: "Admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = authSvc.CreateUser(ctx, models.CreateUserRequest{Username: "sari", Password: "kasir123", FullName: "Sari"})
	require.NoError(t, err)

	ts.router = gin.New()
	SetupRoutes(ts.router, Controllers{
		Auth:    controllers.NewAuthController(authSvc),
		User:    controllers.NewUserController(authSvc),
		Product: controllers.NewProductController(productSvc),
		Member:  controllers.NewMemberController(memberSvc),
		Sales:   controllers.NewSalesController(salesSvc),
		Cashier: controllers.NewCashierController(cashierSvc),
	}, testSecret)
	return ts
}

func bearer(t *testing.T, userID int, role string) string {
	t.Helper()
	tok, err := utils.GenerateToken(testSecret, time.Hour, userID, "user", role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (ts *testServer) adminToken(t *testing.T) string { return bearer(t, 1, models.RoleAdmin) }
func (ts *testServer) kasirToken(t *testing.T) string { return bearer(t, 2, models.RoleKasir) }

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// envelope decodes the standard response and returns its data as raw JSON.
func envelope(t *testing.T, w *httptest.ResponseRecorder) (map[string]any, json.RawMessage) {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out, raw["data"]
}
