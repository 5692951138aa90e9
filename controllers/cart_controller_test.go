package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	apperrors "github.com/MahmoudEasa/ijar/errors"
	"github.com/MahmoudEasa/ijar/middleware"
	"github.com/MahmoudEasa/ijar/models"
	"github.com/MahmoudEasa/ijar/repository"
	"github.com/MahmoudEasa/ijar/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memCartRepo struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.CartItem
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{items: make(map[primitive.ObjectID]models.CartItem)}
}

func (m *memCartRepo) Insert(ctx context.Context, item *models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = primitive.NewObjectID()
	m.items[item.ID] = *item
	return nil
}

func (m *memCartRepo) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.CartItem{}
	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *memCartRepo) DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok || item.UserID != userID {
		return repository.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memCartRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, id)
	return nil
}

type memCarRepo struct {
	mu   sync.Mutex
	cars map[primitive.ObjectID]models.Car
}

func newMemCarRepo() *memCarRepo {
	return &memCarRepo{cars: make(map[primitive.ObjectID]models.Car)}
}

func (m *memCarRepo) put(car models.Car) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if car.ID.IsZero() {
		car.ID = primitive.NewObjectID()
	}
	m.cars[car.ID] = car
	return car.ID
}

func (m *memCarRepo) Create(ctx context.Context, car *models.Car) error {
	car.Available = true
	car.ID = m.put(*car)
	return nil
}

func (m *memCarRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	car, ok := m.cars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &car, nil
}

func (m *memCarRepo) FindAll(ctx context.Context) ([]models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Car{}
	for _, car := range m.cars {
		out = append(out, car)
	}
	return out, nil
}

func (m *memCarRepo) Update(ctx context.Context, id, ownerID primitive.ObjectID, updates bson.M) (*models.Car, error) {
	return nil, errors.New("not implemented")
}

func (m *memCarRepo) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	return errors.New("not implemented")
}

func (m *memCarRepo) Reserve(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	car, ok := m.cars[id]
	if !ok || !car.Available {
		return nil, repository.ErrCarUnavailable
	}
	car.Available = false
	m.cars[id] = car
	return &car, nil
}

// asUser injects the authenticated user id the way AuthMiddleware does.
func asUser(userID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, userID.Hex())
		c.Next()
	}
}

func newCartTestRouter(userID primitive.ObjectID, carts *memCartRepo, cars *memCarRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewCartController(services.NewCartService(carts, cars, nil))

	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	api := r.Group("/api/cart", asUser(userID))
	api.POST("/add", controller.AddToCart)
	api.GET("/view", controller.GetCart)
	api.DELETE("/:id", controller.DeleteFromCart)
	api.POST("/checkout", controller.Checkout)
	return r
}

func TestAddToCartIgnoresClientCost(t *testing.T) {
	carts := newMemCartRepo()
	cars := newMemCarRepo()
	carID := cars.put(models.Car{BrandName: "Toyota", Price: 40, Available: true})
	userID := primitive.NewObjectID()
	router := newCartTestRouter(userID, carts, cars)

	body, _ := json.Marshal(map[string]interface{}{
		"carId":      carID.Hex(),
		"rentalTerm": 2,
		"totalCost":  1, // client-supplied rate must not be trusted
	})
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var item models.CartItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if item.TotalCost != 80 {
		t.Errorf("expected totalCost 80 (2 x 40), got %v", item.TotalCost)
	}
}

func TestAddToCartUnknownCar(t *testing.T) {
	router := newCartTestRouter(primitive.NewObjectID(), newMemCartRepo(), newMemCarRepo())

	body, _ := json.Marshal(map[string]interface{}{"carId": primitive.NewObjectID().Hex()})
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteFromCartForeignItemAnswers401(t *testing.T) {
	carts := newMemCartRepo()
	cars := newMemCarRepo()
	owner := primitive.NewObjectID()
	item := models.CartItem{UserID: owner, CarID: primitive.NewObjectID(), RentalTerm: 1}
	if err := carts.Insert(context.Background(), &item); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Request as a different user.
	router := newCartTestRouter(primitive.NewObjectID(), carts, cars)
	req := httptest.NewRequest(http.MethodDelete, "/api/cart/"+item.ID.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["error"] != "Not found" {
		t.Errorf("unexpected error message: %q", resp["error"])
	}
	if len(carts.items) != 1 {
		t.Error("foreign delete mutated the store")
	}
}

func TestCheckoutEndpointAggregates(t *testing.T) {
	carts := newMemCartRepo()
	cars := newMemCarRepo()
	carID := cars.put(models.Car{BrandName: "Tesla", Price: 100, Available: true})
	userID := primitive.NewObjectID()
	item := models.CartItem{UserID: userID, CarID: carID, RentalTerm: 1}
	if err := carts.Insert(context.Background(), &item); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	router := newCartTestRouter(userID, carts, cars)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result models.CheckoutResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(result.Messages) != 1 || result.Messages[0] != "Tesla Booked Successfully" {
		t.Errorf("unexpected messages: %v", result.Messages)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestGetCartEmpty(t *testing.T) {
	router := newCartTestRouter(primitive.NewObjectID(), newMemCartRepo(), newMemCarRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/cart/view", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]" {
		t.Errorf("expected empty JSON array, got %s", body)
	}
}
