package repository

import (
	"context"
	"errors"

	"github.com/MahmoudEasa/ijar/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrCarUnavailable is returned by Reserve when the listing did not match
	// the available=true condition: it is either absent, already booked, or
	// was booked by a concurrent checkout.
	ErrCarUnavailable = errors.New("car not available")
)

// UserRepo defines data access for user accounts.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// CarRepo defines data access for car listings.
type CarRepo interface {
	Create(ctx context.Context, car *models.Car) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
	FindAll(ctx context.Context) ([]models.Car, error)
	Update(ctx context.Context, id, ownerID primitive.ObjectID, updates bson.M) (*models.Car, error)
	Delete(ctx context.Context, id, ownerID primitive.ObjectID) error
	// Reserve atomically flips available true->false and returns the updated
	// listing. At most one caller can win the flip for a given listing.
	Reserve(ctx context.Context, id primitive.ObjectID) (*models.Car, error)
}

// CartRepo defines data access for cart items.
type CartRepo interface {
	Insert(ctx context.Context, item *models.CartItem) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.CartItem, error)
	DeleteOwned(ctx context.Context, id, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
