package controllers

import (
	"errors"
	"net/http"

	apperrors "github.com/MahmoudEasa/ijar/errors"
	"github.com/MahmoudEasa/ijar/middleware"
	"github.com/MahmoudEasa/ijar/models"
	"github.com/MahmoudEasa/ijar/repository"
	"github.com/MahmoudEasa/ijar/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CarController struct {
	cars *services.CarService
}

func NewCarController(cars *services.CarService) *CarController {
	return &CarController{cars: cars}
}

// PostCar creates a listing owned by the authenticated user.
func (cc *CarController) PostCar(c *gin.Context) {
	ownerID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.ErrUnauthorized)
		return
	}

	var req CreateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, err.Error(), err))
		return
	}

	car := &models.Car{
		OwnerID:            ownerID,
		BrandName:          req.BrandName,
		Model:              req.Model,
		Type:               req.Type,
		Color:              req.Color,
		Fuel:               req.Fuel,
		EngineID:           req.EngineID,
		LicensePlateNumber: req.LicensePlateNumber,
		Location:           req.Location,
		MaxSpeed:           req.MaxSpeed,
		Description:        req.Description,
		Photos:             req.Photos,
		Price:              req.Price,
	}
	if err := cc.cars.CreateCar(c.Request.Context(), car); err != nil {
		zap.L().Error("failed to create car", zap.Error(err))
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, car)
}

// GetCars lists all listings. Public.
func (cc *CarController) GetCars(c *gin.Context) {
	cars, err := cc.cars.ListCars(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to list cars", zap.Error(err))
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.JSON(http.StatusOK, cars)
}

// GetCar returns one listing. Public.
func (cc *CarController) GetCar(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("carId"))
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "Invalid car id", err))
		return
	}

	car, err := cc.cars.GetCar(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Error(apperrors.Wrap(apperrors.ErrNotFound, err))
			return
		}
		zap.L().Error("failed to get car", zap.Error(err))
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.JSON(http.StatusOK, car)
}

// UpdateCar applies a partial update, owner only.
func (cc *CarController) UpdateCar(c *gin.Context) {
	ownerID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.ErrUnauthorized)
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("carId"))
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "Invalid car id", err))
		return
	}

	var req UpdateCarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, err.Error(), err))
		return
	}

	updates := carUpdates(req)
	if len(updates) == 0 {
		c.Error(apperrors.New(http.StatusBadRequest, "No fields to update", nil))
		return
	}

	car, err := cc.cars.UpdateCar(c.Request.Context(), id, ownerID, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Error(apperrors.Wrap(apperrors.ErrNotFound, err))
			return
		}
		zap.L().Error("failed to update car", zap.Error(err))
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.JSON(http.StatusOK, car)
}

// DeleteCar removes a listing, owner only.
func (cc *CarController) DeleteCar(c *gin.Context) {
	ownerID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.ErrUnauthorized)
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("carId"))
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "Invalid car id", err))
		return
	}

	if err := cc.cars.DeleteCar(c.Request.Context(), id, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Error(apperrors.Wrap(apperrors.ErrNotFound, err))
			return
		}
		zap.L().Error("failed to delete car", zap.Error(err))
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

// carUpdates maps non-nil request fields onto a whitelisted update document.
func carUpdates(req UpdateCarRequest) bson.M {
	updates := bson.M{}
	if req.BrandName != nil {
		updates["brandName"] = *req.BrandName
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Fuel != nil {
		updates["fuel"] = *req.Fuel
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.MaxSpeed != nil {
		updates["maxSpeed"] = *req.MaxSpeed
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Photos != nil {
		updates["photos"] = *req.Photos
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Available != nil {
		updates["available"] = *req.Available
	}
	return updates
}
