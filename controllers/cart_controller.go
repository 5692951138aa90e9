package controllers

import (
	"errors"
	"net/http"

	apperrors "github.com/MahmoudEasa/ijar/errors"
	"github.com/MahmoudEasa/ijar/middleware"
	"github.com/MahmoudEasa/ijar/repository"
	"github.com/MahmoudEasa/ijar/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// AddToCart adds a listing to the user's cart. The price is derived from the
// stored listing; the client-supplied totalCost field is ignored.
func (cc *CartController) AddToCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.ErrUnauthorized)
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}
	carID, err := primitive.ObjectIDFromHex(req.CarID)
	if err != nil {
		c.Error(apperrors.New(http.StatusBadRequest, "Invalid car id", err))
		return
	}
	if req.RentalTerm == 0 {
		req.RentalTerm = 1
	}

	item, err := cc.cart.AddToCart(c.Request.Context(), userID, carID, req.RentalTerm)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Error(apperrors.Wrap(apperrors.ErrNotFound, err))
			return
		}
		zap.L().Error("failed to add to cart", zap.Error(err))
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetCart returns all cart items owned by the user.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.ErrUnauthorized)
		return
	}

	items, err := cc.cart.ListCart(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("failed to get cart", zap.Error(err))
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, items)
}

// DeleteFromCart removes a cart item owned by the user. A missing item and
// another user's item both answer 401 Not found, matching the original wire
// contract.
func (cc *CartController) DeleteFromCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.ErrUnauthorized)
		return
	}
	itemID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.Error(apperrors.New(http.StatusUnauthorized, "Not found", err))
		return
	}

	if err := cc.cart.RemoveFromCart(c.Request.Context(), userID, itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Error(apperrors.New(http.StatusUnauthorized, "Not found", err))
			return
		}
		zap.L().Error("failed to delete from cart", zap.Error(err))
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

// Checkout resolves every cart item into a booking attempt and returns the
// aggregated messages and errors.
func (cc *CartController) Checkout(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.Error(apperrors.ErrUnauthorized)
		return
	}

	result, err := cc.cart.Checkout(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("checkout failed", zap.Error(err))
		c.Error(apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, result)
}
