package services

import (
	"context"

	"github.com/MahmoudEasa/ijar/models"
	"github.com/MahmoudEasa/ijar/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarService handles listing CRUD with a Redis read cache in front of the
// car store. The cache is best-effort: a cold or down Redis degrades to
// store reads.
type CarService struct {
	cars  repository.CarRepo
	cache *CarCache
}

func NewCarService(cars repository.CarRepo, cache *CarCache) *CarService {
	return &CarService{cars: cars, cache: cache}
}

func (s *CarService) CreateCar(ctx context.Context, car *models.Car) error {
	if err := s.cars.Create(ctx, car); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, "")
	return nil
}

func (s *CarService) GetCar(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	if car, ok := s.cache.GetCar(ctx, id.Hex()); ok {
		return car, nil
	}

	car, err := s.cars.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetCarAsync(id.Hex(), car)
	return car, nil
}

func (s *CarService) ListCars(ctx context.Context) ([]models.Car, error) {
	if cars, ok := s.cache.GetCarList(ctx); ok {
		return cars, nil
	}

	cars, err := s.cars.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetCarListAsync(cars)
	return cars, nil
}

func (s *CarService) UpdateCar(ctx context.Context, id, ownerID primitive.ObjectID, updates bson.M) (*models.Car, error) {
	car, err := s.cars.Update(ctx, id, ownerID, updates)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id.Hex())
	return car, nil
}

func (s *CarService) DeleteCar(ctx context.Context, id, ownerID primitive.ObjectID) error {
	if err := s.cars.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id.Hex())
	return nil
}
