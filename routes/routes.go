package routes

import (
	"github.com/MahmoudEasa/ijar/controllers"
	"github.com/MahmoudEasa/ijar/middleware"
	"github.com/MahmoudEasa/ijar/services"
	"github.com/gin-gonic/gin"
)

// Register wires all HTTP routes onto the router.
func Register(
	r *gin.Engine,
	tokens *services.TokenService,
	authController *controllers.AuthController,
	carController *controllers.CarController,
	cartController *controllers.CartController,
) {
	authRequired := middleware.AuthMiddleware(tokens)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authController.SignUp)
		auth.POST("/login", authController.Login)
	}

	cars := r.Group("/cars")
	{
		cars.GET("", carController.GetCars)
		cars.GET("/:carId", carController.GetCar)
		cars.POST("", authRequired, carController.PostCar)
		cars.PUT("/:carId", authRequired, carController.UpdateCar)
		cars.DELETE("/:carId", authRequired, carController.DeleteCar)
	}

	cart := r.Group("/api/cart")
	cart.Use(authRequired)
	{
		cart.POST("/add", cartController.AddToCart)
		cart.GET("/view", cartController.GetCart)
		cart.DELETE("/:id", cartController.DeleteFromCart)
		cart.POST("/checkout", cartController.Checkout)
	}
}
