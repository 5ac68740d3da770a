package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sinar-terang/models"
	"sinar-terang/services"
)

func createMember(t *testing.T, ts *testServer, name string) models.Member {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/members", ts.adminToken(t), models.MemberRequest{Name: name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, data := envelope(t, w)
	var m models.Member
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func createProduct(t *testing.T, ts *testServer, req models.ProductRequest) models.Product {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/products", ts.adminToken(t), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, data := envelope(t, w)
	var p models.Product
	require.NoError(t, json.Unmarshal(data, &p))
	return p
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/auth/login", "", models.LoginRequest{Username: "sari", Password: "kasir123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, data := envelope(t, w)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleKasir, resp.User.Role)

	w = ts.do(t, http.MethodGet, "/auth/profile", "Bearer "+resp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"sari"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = ts.do(t, http.MethodPost, "/auth/login", "", models.LoginRequest{Username: "sari", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(t, http.MethodPost, "/auth/login", "", `{"username":"sari"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/api/products", "", nil).Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/api/products", ts.kasirToken(t), nil).Code)
}

func TestProductWritesRequireAdmin(t *testing.T) {
	ts := newTestServer(t)
	req := models.ProductRequest{Name: "Gula", Unit: "kg", Price: 15000, Barcode: "g1"}

	w := ts.do(t, http.MethodPost, "/api/products", ts.kasirToken(t), req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	p := createProduct(t, ts, req)
	assert.Equal(t, 1, p.ID)

	w = ts.do(t, http.MethodPost, "/api/products", ts.adminToken(t), req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateProductValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/products", ts.adminToken(t), `{"satuan":"kg","harga":100}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body, _ := envelope(t, w)
	details, ok := body["details"].(map[string]any)
	require.True(t, ok, w.Body.String())
	assert.Contains(t, details, "Name")
	assert.Contains(t, details, "Barcode")

	w = ts.do(t, http.MethodPost, "/api/products", ts.adminToken(t), models.ProductRequest{
		Name: "Beras", Unit: "kg", Price: 12000, Barcode: "b1",
		BulkTiers: []models.BulkTier{{MinQty: 5, Price: 11500}, {MinQty: 5, Price: 11000}, {MinQty: 1, Price: 1}},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body, _ = envelope(t, w)
	details, ok = body["details"].(map[string]any)
	require.True(t, ok, w.Body.String())
	assert.Equal(t, []any{float64(1)}, details["duplicate_grosir_rows"])
	assert.Equal(t, []any{float64(2)}, details["invalid_grosir_rows"])
}

func TestProductLookupAndExport(t *testing.T) {
	ts := newTestServer(t)
	createProduct(t, ts, models.ProductRequest{Name: "Gula", Unit: "kg", Price: 15000, Barcode: "g1"})

	w := ts.do(t, http.MethodGet, "/api/products/1", ts.kasirToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"harga":15000`)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/products/9", ts.kasirToken(t), nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/products/abc", ts.kasirToken(t), nil).Code)

	w = ts.do(t, http.MethodGet, "/api/products/search?q=g1", ts.kasirToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Gula"`)

	w = ts.do(t, http.MethodGet, "/api/products", ts.kasirToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body, _ := envelope(t, w)
	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(1), meta["total_items"])

	w = ts.do(t, http.MethodGet, "/api/products/export", ts.kasirToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "1,Gula,kg,0,15000,g1"))
}

func TestImportProducts(t *testing.T) {
	ts := newTestServer(t)

	rows := []models.ProductRequest{
		{Name: "Gula", Unit: "kg", Price: 15000, Barcode: "g1"},
		{Name: "Teh", Unit: "pak", Price: 5000, Barcode: "t1", BulkTiers: []models.BulkTier{{MinQty: 0, Price: 1}}},
	}
	w := ts.do(t, http.MethodPost, "/api/products/import", ts.adminToken(t), rows)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	body, _ := envelope(t, w)
	details := body["details"].(map[string]any)
	assert.Equal(t, float64(1), details["row"])
	assert.Empty(t, ts.products.products)

	rows[1].BulkTiers = nil
	w = ts.do(t, http.MethodPost, "/api/products/import", ts.adminToken(t), rows)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, ts.products.products, 2)
}

func TestMembers(t *testing.T) {
	ts := newTestServer(t)
	m := createMember(t, ts, "Toko Budi")

	w := ts.do(t, http.MethodGet, "/api/members?with_general=true", ts.kasirToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := envelope(t, w)
	var members []models.Member
	require.NoError(t, json.Unmarshal(data, &members))
	require.Len(t, members, 2)
	assert.Equal(t, models.GeneralMemberName, members[0].Name)
	assert.Equal(t, "Toko Budi", members[1].Name)

	createProduct(t, ts, models.ProductRequest{
		Name: "Gula", Unit: "kg", Price: 15000, Barcode: "g1",
		MemberPrices: []models.MemberPrice{{MemberID: m.ID, Price: 14000}},
	})
	w = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/members/%d", m.ID), ts.adminToken(t), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodDelete, "/api/members/0", ts.adminToken(t), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = ts.do(t, http.MethodGet, "/api/members/0", ts.kasirToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Umum"`)
}

func TestCashierCheckout(t *testing.T) {
	ts := newTestServer(t)
	m := createMember(t, ts, "Toko Budi")
	createProduct(t, ts, models.ProductRequest{
		Name: "Minyak Goreng", Unit: "pcs", Price: 10000, Barcode: "m1",
		MemberPrices: []models.MemberPrice{{MemberID: m.ID, Price: 8500}},
		BulkTiers:    []models.BulkTier{{MinQty: 10, Price: 9000}},
	})
	kasir := ts.kasirToken(t)

	w := ts.do(t, http.MethodPost, "/api/cashier/sessions", kasir, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, data := envelope(t, w)
	var view services.SessionView
	require.NoError(t, json.Unmarshal(data, &view))
	base := "/api/cashier/sessions/" + view.ID

	read := func(code int, method, path string, body any) services.SessionView {
		t.Helper()
		w := ts.do(t, method, path, kasir, body)
		require.Equal(t, code, w.Code, w.Body.String())
		_, data := envelope(t, w)
		var v services.SessionView
		require.NoError(t, json.Unmarshal(data, &v))
		return v
	}

	view = read(http.StatusOK, http.MethodPost, base+"/items", models.AddCartItemRequest{ProductID: 1})
	assert.Equal(t, int64(10000), view.Cart.GrandTotal)

	view = read(http.StatusOK, http.MethodPatch, base+"/items/1", models.ChangeQuantityRequest{Quantity: 10})
	assert.Equal(t, int64(90000), view.Cart.GrandTotal)

	view = read(http.StatusOK, http.MethodPut, base+"/member", models.ChangeMemberRequest{MemberID: m.ID})
	assert.Equal(t, int64(85000), view.Cart.GrandTotal)
	assert.Equal(t, "Toko Budi", view.MemberName)

	view = read(http.StatusOK, http.MethodPut, base+"/items/1/price", `{"harga":7000}`)
	assert.Equal(t, int64(70000), view.Cart.GrandTotal)
	require.Len(t, view.Cart.Lines, 1)
	assert.Equal(t, int64(10000), view.Cart.Lines[0].BasePrice)

	view = read(http.StatusOK, http.MethodDelete, base+"/items/1/price", nil)
	assert.Equal(t, int64(85000), view.Cart.GrandTotal)

	w = ts.do(t, http.MethodPatch, base+"/items/1", kasir, models.ChangeQuantityRequest{Quantity: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodPut, base+"/items/1/price", kasir, `{"harga":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = ts.do(t, http.MethodPatch, base+"/items/9", kasir, models.ChangeQuantityRequest{Quantity: 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = ts.do(t, http.MethodGet, base, ts.adminToken(t), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(t, http.MethodPost, base+"/submit", kasir, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	_, data = envelope(t, w)
	var sale models.Sale
	require.NoError(t, json.Unmarshal(data, &sale))
	assert.Equal(t, int64(85000), sale.Total)
	assert.Equal(t, 2, sale.KasirID)
	assert.Equal(t, m.ID, sale.MemberID)

	view = read(http.StatusOK, http.MethodGet, base, nil)
	assert.Empty(t, view.Cart.Lines)
	assert.Equal(t, models.GeneralMemberID, view.Cart.MemberID)

	w = ts.do(t, http.MethodPost, base+"/submit", kasir, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/sales/1", kasir, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":85000`)

	w = ts.do(t, http.MethodDelete, base, kasir, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(t, http.MethodGet, base, kasir, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSaleDirect(t *testing.T) {
	ts := newTestServer(t)
	createProduct(t, ts, models.ProductRequest{Name: "Gula", Unit: "kg", Price: 15000, Barcode: "g1"})

	req := models.CreateSaleRequest{
		Total:    30000,
		Products: []models.SaleLineRequest{{ProductID: 1, Price: 15000, Quantity: 2}},
	}
	w := ts.do(t, http.MethodPost, "/api/sales", ts.kasirToken(t), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	req.Total = 29000
	w = ts.do(t, http.MethodPost, "/api/sales", ts.kasirToken(t), req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodPost, "/api/sales", ts.kasirToken(t), `{"total":0,"products":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(t, http.MethodGet, "/api/sales", ts.kasirToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body, _ := envelope(t, w)
	assert.Equal(t, float64(1), body["meta"].(map[string]any)["total_items"])
}

func TestUsers(t *testing.T) {
	ts := newTestServer(t)
	req := models.CreateUserRequest{Username: "dewi", Password: "rahasia1", FullName: "Dewi"}

	assert.Equal(t, http.StatusForbidden, ts.do(t, http.MethodPost, "/api/users", ts.kasirToken(t), req).Code)

	w := ts.do(t, http.MethodPost, "/api/users", ts.adminToken(t), req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"role":"kasir"`)

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, "/api/users", ts.adminToken(t), req).Code)

	req.Role = "owner"
	req.Username = "eka"
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPost, "/api/users", ts.adminToken(t), req).Code)

	w = ts.do(t, http.MethodGet, "/api/users", ts.adminToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := envelope(t, w)
	var users []models.User
	require.NoError(t, json.Unmarshal(data, &users))
	assert.Len(t, users, 3)
}
