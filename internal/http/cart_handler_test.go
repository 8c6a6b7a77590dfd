package http

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"shop-api/internal/domain"
)

type mockCartRepo struct {
	carts map[string][]domain.CartItem
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string][]domain.CartItem)}
}

func (m *mockCartRepo) GetOrCreate(_ context.Context, email string) (domain.Cart, error) {
	if _, ok := m.carts[email]; !ok {
		m.carts[email] = nil
	}
	return domain.Cart{Email: email, Items: m.carts[email], CreatedAt: time.Now().UTC()}, nil
}

func (m *mockCartRepo) AddItem(_ context.Context, email string, item domain.CartItem) error {
	items := m.carts[email]
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity++
			m.carts[email] = items
			return nil
		}
	}
	m.carts[email] = append(items, item)
	return nil
}

func (m *mockCartRepo) ChangeQuantity(_ context.Context, email, productID string, delta int) error {
	items := m.carts[email]
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		items[i].Quantity += delta
		if items[i].Quantity <= 0 {
			m.carts[email] = append(items[:i], items[i+1:]...)
		} else {
			m.carts[email] = items
		}
		return nil
	}
	return pgx.ErrNoRows
}

func (m *mockCartRepo) RemoveItem(_ context.Context, email, productID string) error {
	items := m.carts[email]
	for i := range items {
		if items[i].ProductID == productID {
			m.carts[email] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func newCartRouter(t *testing.T) (*gin.Engine, *mockCartRepo, *mockProductRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	carts := newMockCartRepo()
	products := newMockProductRepo()
	handler := NewCartHandler(zap.NewNop(), carts, products)

	r := gin.New()
	r.GET("/cart/:email", handler.GetCart)
	r.POST("/cart/:email/items", handler.AddItem)
	r.PUT("/cart/:email/items/:id/increase", handler.IncreaseItem)
	r.PUT("/cart/:email/items/:id/decrease", handler.DecreaseItem)
	r.DELETE("/cart/:email/items/:id", handler.RemoveItem)
	return r, carts, products
}

func TestGetCart_FirstAccessReturnsEmptyCart(t *testing.T) {
	r, _, _ := newCartRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/cart/user@example.com", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items array, got %s", rec.Body.String())
	}
}

func TestCartAddItem_SnapshotsProduct(t *testing.T) {
	r, carts, products := newCartRouter(t)
	if err := products.Create(context.Background(), domain.Product{
		ID:        "p1",
		Heading:   "Red Shoes",
		Price:     1500,
		InStock:   true,
		ImagePath: []string{"/uploads/itemImages/red.jpg"},
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/cart/user@example.com/items", `{"id":"p1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	items := carts.carts["user@example.com"]
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.Heading != "Red Shoes" || item.Price != 1500 || item.Quantity != 1 {
		t.Fatalf("unexpected snapshot: %+v", item)
	}
	if item.ImagePath != "/uploads/itemImages/red.jpg" {
		t.Fatalf("expected first image path, got %q", item.ImagePath)
	}
}

func TestCartAddItem_UnknownProduct(t *testing.T) {
	r, _, _ := newCartRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/cart/user@example.com/items", `{"id":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartQuantity_DecreaseToZeroRemovesItem(t *testing.T) {
	r, carts, products := newCartRouter(t)
	if err := products.Create(context.Background(), domain.Product{ID: "p1", Heading: "Red Shoes", Price: 1500}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	doJSON(t, r, http.MethodPost, "/cart/user@example.com/items", `{"id":"p1"}`)
	if rec := doJSON(t, r, http.MethodPut, "/cart/user@example.com/items/p1/increase", ""); rec.Code != http.StatusOK {
		t.Fatalf("increase failed: %d", rec.Code)
	}
	if got := carts.carts["user@example.com"][0].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}

	doJSON(t, r, http.MethodPut, "/cart/user@example.com/items/p1/decrease", "")
	doJSON(t, r, http.MethodPut, "/cart/user@example.com/items/p1/decrease", "")
	if got := len(carts.carts["user@example.com"]); got != 0 {
		t.Fatalf("expected item removed at zero, got %d items", got)
	}
}

func TestCartRemoveItem_NotFound(t *testing.T) {
	r, _, _ := newCartRouter(t)

	req := doJSON(t, r, http.MethodDelete, "/cart/user@example.com/items/ghost", "")
	if req.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", req.Code)
	}
}
