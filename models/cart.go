package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a user's pending rental selection for one listing. It is
// created on add, deleted on removal or checkout resolution, never updated.
type CartItem struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	CarID      primitive.ObjectID `json:"carId" bson:"carId"`
	RentalTerm int                `json:"rentalTerm" bson:"rentalTerm"`
	TotalCost  float64            `json:"totalCost" bson:"totalCost"`
	EndDate    time.Time          `json:"endDate" bson:"endDate"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// CheckoutResult aggregates per-item outcomes of a checkout call.
type CheckoutResult struct {
	Messages []string `json:"messages"`
	Errors   []string `json:"errors"`
}
