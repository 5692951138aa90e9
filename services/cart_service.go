package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MahmoudEasa/ijar/models"
	"github.com/MahmoudEasa/ijar/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// CartService orchestrates cart operations across the cart and car stores.
type CartService struct {
	carts repository.CartRepo
	cars  repository.CarRepo
	cache *CarCache
	now   func() time.Time
}

// NewCartService wires the cart service. cache may be nil; it is only used
// to drop stale listing entries after a booking flips availability.
func NewCartService(carts repository.CartRepo, cars repository.CarRepo, cache *CarCache) *CartService {
	return &CartService{carts: carts, cars: cars, cache: cache, now: time.Now}
}

// AddToCart prices the selection from the stored listing, never from client
// input, and persists a new cart item.
func (s *CartService) AddToCart(ctx context.Context, userID, carID primitive.ObjectID, rentalTerm int) (*models.CartItem, error) {
	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	item := &models.CartItem{
		UserID:     userID,
		CarID:      car.ID,
		RentalTerm: rentalTerm,
		TotalCost:  float64(rentalTerm) * car.Price,
		EndDate:    now.Add(time.Duration(rentalTerm) * 24 * time.Hour),
	}
	if err := s.carts.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListCart returns every cart item owned by userID, empty slice if none.
func (s *CartService) ListCart(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error) {
	return s.carts.FindByUser(ctx, userID)
}

// RemoveFromCart deletes an item only when owned by userID.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, itemID primitive.ObjectID) error {
	return s.carts.DeleteOwned(ctx, itemID, userID)
}

// Checkout resolves every cart item owned by userID and returns the
// aggregated result only once all items have completed. Items are resolved
// concurrently; the availability flip itself is a single conditional update
// in the car store, so two checkouts racing on one listing produce exactly
// one booking.
func (s *CartService) Checkout(ctx context.Context, userID primitive.ObjectID) (*models.CheckoutResult, error) {
	items, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &models.CheckoutResult{
		Messages: []string{},
		Errors:   []string{},
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, item := range items {
		wg.Add(1)
		go func(item models.CartItem) {
			defer wg.Done()

			msg, booked, err := s.resolveItem(ctx, item)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			if booked {
				result.Messages = append(result.Messages, msg)
			} else {
				result.Errors = append(result.Errors, msg)
			}
		}(item)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

// resolveItem attempts to book one cart item. The item is removed from the
// cart on every outcome; booked reports whether the reservation won.
func (s *CartService) resolveItem(ctx context.Context, item models.CartItem) (msg string, booked bool, err error) {
	car, err := s.cars.Reserve(ctx, item.CarID)
	if err == nil {
		s.dropItem(ctx, item)
		if s.cache != nil {
			s.cache.Invalidate(ctx, car.ID.Hex())
		}
		return fmt.Sprintf("%s Booked Successfully", car.BrandName), true, nil
	}
	if !errors.Is(err, repository.ErrCarUnavailable) {
		return "", false, err
	}

	// Reservation lost: the listing is absent, already booked, or a
	// concurrent checkout won the flip. Look it up to tell which.
	car, err = s.cars.FindByID(ctx, item.CarID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.dropItem(ctx, item)
		return "Not found", false, nil
	case err != nil:
		return "", false, err
	default:
		s.dropItem(ctx, item)
		return fmt.Sprintf("%s is not available", car.BrandName), false, nil
	}
}

func (s *CartService) dropItem(ctx context.Context, item models.CartItem) {
	if err := s.carts.Delete(ctx, item.ID); err != nil {
		zap.L().Warn("failed to remove cart item after checkout",
			zap.String("cart_item_id", item.ID.Hex()),
			zap.Error(err),
		)
	}
}
