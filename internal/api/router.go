package api

import (
	"net/http"

	"github.com/SandeepaChathumina/Grocery-System/internal/api/middleware"
	"github.com/SandeepaChathumina/Grocery-System/internal/modules/deliveries"
	"github.com/SandeepaChathumina/Grocery-System/internal/modules/users"
	"github.com/SandeepaChathumina/Grocery-System/web"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	jwtSecret string,
	userHandler *users.Handler,
	deliveryHandler *deliveries.Handler,
) {
	authMiddleware := middleware.JWTAuth(jwtSecret)

	// --- Public Routes ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// The embedded dashboard client.
	e.FileFS("/", "index.html", web.FS)
	e.FileFS("/app.js", "app.js", web.FS)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", userHandler.Signup)
		authGroup.POST("/login", userHandler.Login)
	}

	// --- Delivery Routes ---
	deliveryGroup := e.Group("/deliveries", authMiddleware)
	{
		deliveryGroup.GET("", deliveryHandler.List)
		deliveryGroup.GET("/stats", deliveryHandler.Stats)
		deliveryGroup.GET("/status/:status", deliveryHandler.ListByStatus)
		deliveryGroup.GET("/:id", deliveryHandler.Get)
		deliveryGroup.POST("", deliveryHandler.Create)
		deliveryGroup.PUT("/:id", deliveryHandler.Update)
		deliveryGroup.PATCH("/:id/status", deliveryHandler.UpdateStatus)
		deliveryGroup.DELETE("/:id", deliveryHandler.Delete)
	}
}
