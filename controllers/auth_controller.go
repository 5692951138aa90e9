package controllers

import (
	"errors"
	"net/http"

	apperrors "github.com/MahmoudEasa/ijar/errors"
	"github.com/MahmoudEasa/ijar/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// SignUp registers a new account.
func (ac *AuthController) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	_, err := ac.auth.SignUp(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		var appErr *apperrors.Error
		if !errors.As(err, &appErr) {
			zap.L().Error("signup failed", zap.Error(err))
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Account created successfully"})
}

// Login authenticates a user and returns a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.Wrap(apperrors.ErrBadRequest, err))
		return
	}

	token, err := ac.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var appErr *apperrors.Error
		if !errors.As(err, &appErr) {
			zap.L().Error("login failed", zap.Error(err))
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
