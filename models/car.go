package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Car is a rentable vehicle listing. Price is the per-day rental rate.
type Car struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	OwnerID            primitive.ObjectID `json:"ownerId" bson:"ownerId"`
	BrandName          string             `json:"brandName" bson:"brandName"`
	Model              string             `json:"model" bson:"model"`
	Type               string             `json:"type" bson:"type"`
	Color              string             `json:"color" bson:"color"`
	Fuel               string             `json:"fuel" bson:"fuel"`
	EngineID           string             `json:"engineId" bson:"engineId"`
	LicensePlateNumber string             `json:"licensePlateNumber" bson:"licensePlateNumber"`
	Location           string             `json:"location" bson:"location"`
	MaxSpeed           int                `json:"maxSpeed" bson:"maxSpeed"`
	Description        string             `json:"description" bson:"description"`
	Photos             []string           `json:"photos" bson:"photos"`
	Price              float64            `json:"price" bson:"price"`
	Available          bool               `json:"available" bson:"available"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}
