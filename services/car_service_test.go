package services

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/MahmoudEasa/ijar/models"
	"github.com/MahmoudEasa/ijar/repository"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newTestRedisClient returns a client whose connections always fail, so the
// cache layer degrades to store reads.
func newTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
	})
}

func TestCarServiceFallsBackToStoreWhenCacheCold(t *testing.T) {
	cars := newFakeCarRepo()
	carID := cars.add(models.Car{BrandName: "Volvo", Price: 60, Available: true})

	svc := NewCarService(cars, NewCarCache(newTestRedisClient(), time.Minute))

	car, err := svc.GetCar(context.Background(), carID)
	if err != nil {
		t.Fatalf("GetCar: %v", err)
	}
	if car.BrandName != "Volvo" {
		t.Errorf("unexpected car: %+v", car)
	}

	list, err := svc.ListCars(context.Background())
	if err != nil {
		t.Fatalf("ListCars: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 listing, got %d", len(list))
	}
}

func TestCarServiceGetMissing(t *testing.T) {
	svc := NewCarService(newFakeCarRepo(), NewCarCache(newTestRedisClient(), time.Minute))

	_, err := svc.GetCar(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateCarMarksAvailable(t *testing.T) {
	cars := newFakeCarRepo()
	svc := NewCarService(cars, NewCarCache(newTestRedisClient(), time.Minute))

	car := &models.Car{BrandName: "Mazda", Price: 45, OwnerID: primitive.NewObjectID()}
	if err := svc.CreateCar(context.Background(), car); err != nil {
		t.Fatalf("CreateCar: %v", err)
	}
	if car.ID.IsZero() {
		t.Error("expected created car to have an id")
	}
	stored, ok := cars.get(car.ID)
	if !ok {
		t.Fatal("car not persisted")
	}
	if !stored.Available {
		t.Error("new listing must start available")
	}
}
