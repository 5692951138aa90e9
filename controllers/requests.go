package controllers

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type SignUpRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateCarRequest defines the expected structure for creating a listing.
type CreateCarRequest struct {
	BrandName          string   `json:"brandName" validate:"required"`
	Model              string   `json:"model" validate:"required"`
	Type               string   `json:"type" validate:"required"`
	Color              string   `json:"color"`
	Fuel               string   `json:"fuel"`
	EngineID           string   `json:"engineId"`
	LicensePlateNumber string   `json:"licensePlateNumber" validate:"required"`
	Location           string   `json:"location" validate:"required"`
	MaxSpeed           int      `json:"maxSpeed" validate:"gte=0"`
	Description        string   `json:"description"`
	Photos             []string `json:"photos"`
	Price              float64  `json:"price" validate:"required,gt=0"`
}

// UpdateCarRequest carries optional listing fields; nil means unchanged.
type UpdateCarRequest struct {
	BrandName   *string   `json:"brandName"`
	Model       *string   `json:"model"`
	Type        *string   `json:"type"`
	Color       *string   `json:"color"`
	Fuel        *string   `json:"fuel"`
	Location    *string   `json:"location"`
	MaxSpeed    *int      `json:"maxSpeed"`
	Description *string   `json:"description"`
	Photos      *[]string `json:"photos"`
	Price       *float64  `json:"price" validate:"omitempty,gt=0"`
	Available   *bool     `json:"available"`
}

// AddToCartRequest mirrors the original wire body. TotalCost is accepted for
// compatibility but ignored: pricing always comes from the stored listing.
type AddToCartRequest struct {
	CarID      string  `json:"carId" binding:"required"`
	RentalTerm int     `json:"rentalTerm" binding:"omitempty,min=1"`
	TotalCost  float64 `json:"totalCost"`
}
