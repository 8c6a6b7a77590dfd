package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shop-api/internal/domain"
)

type mockImageStore struct {
	saved []string
}

func (m *mockImageStore) Save(filename string, _ io.Reader) (string, error) {
	public := "/uploads/itemImages/" + filename
	m.saved = append(m.saved, public)
	return public, nil
}

func newProductRouter(t *testing.T) (*gin.Engine, *mockProductRepo, *mockImageStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := newMockProductRepo()
	images := &mockImageStore{}
	handler := NewProductHandler(zap.NewNop(), products, images)

	r := gin.New()
	r.GET("/products", handler.ListProducts)
	r.GET("/products/:id", handler.GetProduct)
	r.POST("/products", handler.CreateProduct)
	r.PUT("/products/:id", handler.UpdateProduct)
	r.POST("/products/updateIsLiked/:id", handler.UpdateIsLiked)
	r.DELETE("/products/:id", handler.DeleteProduct)
	r.GET("/properties/predefinedKeys", handler.PredefinedPropertyKeys)
	return r, products, images
}

func TestListProducts_EmptyCatalogReturnsArray(t *testing.T) {
	r, _, _ := newProductRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/products", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", rec.Body.String())
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	r, _, _ := newProductRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/products/ghost", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateProduct_MultipartWithImages(t *testing.T) {
	r, products, images := newProductRouter(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("heading", "Red Shoes")
	w.WriteField("category", "shoes")
	w.WriteField("price", "1500")
	w.WriteField("oldPrice", "1990")
	w.WriteField("inStock", "true")
	w.WriteField("altText", "red-shoes")
	w.WriteField("altText", "crimson-shoes")
	w.WriteField("properties", `[{"key":"Color","value":"Red"}]`)
	fw, err := w.CreateFormFile("imagePath", "red.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("fake-image-bytes"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" || created.Heading != "Red Shoes" || created.Price != 1500 {
		t.Fatalf("unexpected product: %+v", created)
	}
	if len(created.AltText) != 2 || created.AltText[0] != "red-shoes" {
		t.Fatalf("unexpected altText: %+v", created.AltText)
	}
	if created.OldPrice == nil || *created.OldPrice != 1990 {
		t.Fatalf("expected oldPrice 1990, got %+v", created.OldPrice)
	}
	if len(images.saved) != 1 || created.ImagePath[0] != "/uploads/itemImages/red.jpg" {
		t.Fatalf("expected stored image path, got %+v", created.ImagePath)
	}
	if _, err := products.GetByID(context.Background(), created.ID); err != nil {
		t.Fatalf("expected product persisted: %v", err)
	}
}

func TestCreateProduct_MissingHeading(t *testing.T) {
	r, _, _ := newProductRouter(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("category", "shoes")
	w.WriteField("price", "1500")
	w.WriteField("inStock", "true")
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/products", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateProduct_PatchSemantics(t *testing.T) {
	r, products, _ := newProductRouter(t)
	if err := products.Create(context.Background(), domain.Product{
		ID:       "p1",
		Heading:  "Red Shoes",
		Price:    1500,
		Category: "shoes",
		AltText:  []string{"red-shoes"},
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	rec := doJSON(t, r, http.MethodPut, "/products/p1", `{"price":1200}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	updated, err := products.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("load product: %v", err)
	}
	if updated.Price != 1200 {
		t.Fatalf("expected price updated, got %v", updated.Price)
	}
	if updated.Heading != "Red Shoes" || updated.Category != "shoes" {
		t.Fatalf("expected untouched fields preserved, got %+v", updated)
	}
}

func TestUpdateIsLiked(t *testing.T) {
	r, products, _ := newProductRouter(t)
	if err := products.Create(context.Background(), domain.Product{ID: "p1", Heading: "Red Shoes"}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/products/updateIsLiked/p1", `{"isLiked":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	product, _ := products.GetByID(context.Background(), "p1")
	if !product.IsLiked {
		t.Fatalf("expected isLiked true")
	}

	rec = doJSON(t, r, http.MethodPost, "/products/updateIsLiked/p1", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing isLiked, got %d", rec.Code)
	}
}

func TestDeleteProduct(t *testing.T) {
	r, products, _ := newProductRouter(t)
	if err := products.Create(context.Background(), domain.Product{ID: "p1", Heading: "Red Shoes"}); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	rec := doJSON(t, r, http.MethodDelete, "/products/p1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodDelete, "/products/p1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestPredefinedPropertyKeys(t *testing.T) {
	r, _, _ := newProductRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/properties/predefinedKeys", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var keys []string
	if err := json.Unmarshal(rec.Body.Bytes(), &keys); err != nil {
		t.Fatalf("decode keys: %v", err)
	}
	if len(keys) == 0 || keys[0] != "Color" {
		t.Fatalf("unexpected keys: %+v", keys)
	}
}
