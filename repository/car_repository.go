package repository

import (
	"context"
	"time"

	"github.com/MahmoudEasa/ijar/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CarRepository struct {
	collection *mongo.Collection
}

func NewCarRepository(db *mongo.Database) *CarRepository {
	return &CarRepository{collection: db.Collection("cars")}
}

func (r *CarRepository) Create(ctx context.Context, car *models.Car) error {
	now := time.Now().UTC()
	car.CreatedAt = now
	car.UpdatedAt = now
	car.Available = true

	res, err := r.collection.InsertOne(ctx, car)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		car.ID = id
	}
	return nil
}

func (r *CarRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	var car models.Car
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&car)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *CarRepository) FindAll(ctx context.Context) ([]models.Car, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	cars := []models.Car{}
	if err = cursor.All(ctx, &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// Update applies a field update scoped to the owning user and returns the
// updated listing. A non-owner sees ErrNotFound, not the document.
func (r *CarRepository) Update(ctx context.Context, id, ownerID primitive.ObjectID, updates bson.M) (*models.Car, error) {
	updates["updatedAt"] = time.Now().UTC()

	filter := bson.M{"_id": id, "ownerId": ownerID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var car models.Car
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": updates}, opts).Decode(&car)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *CarRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Reserve is the single test-and-set that guards against double booking: the
// filter requires available=true, so concurrent checkouts touching the same
// listing see exactly one winner.
func (r *CarRepository) Reserve(ctx context.Context, id primitive.ObjectID) (*models.Car, error) {
	filter := bson.M{"_id": id, "available": true}
	update := bson.M{"$set": bson.M{"available": false, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var car models.Car
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&car)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCarUnavailable
	}
	if err != nil {
		return nil, err
	}
	return &car, nil
}
