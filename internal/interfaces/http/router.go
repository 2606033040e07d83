package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/EddyKilonzo/shopie/internal/application/auth"
	"github.com/EddyKilonzo/shopie/internal/application/cart"
	"github.com/EddyKilonzo/shopie/internal/application/checkout"
	"github.com/EddyKilonzo/shopie/internal/application/usecase"
	"github.com/EddyKilonzo/shopie/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CartUC     *cart.CartUseCase
	CheckoutUC *checkout.CheckoutUseCase
	JWTSecret  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Products: browsing is public, writes need the admin role.
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	admin := products.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))
	admin.Post("/", productHandler.Create)
	admin.Put("/:id", productHandler.Update)
	admin.Delete("/:id", productHandler.Delete)

	// Protected routes (require Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cart (protected)
	cartGroup := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Post("/add", cartHandler.AddToCart)
	cartGroup.Get("/", cartHandler.ListCart)
	cartGroup.Get("/total", cartHandler.CartTotal)
	cartGroup.Put("/:id/increase", cartHandler.IncreaseQuantity)
	cartGroup.Put("/:id/decrease", cartHandler.DecreaseQuantity)
	cartGroup.Delete("/:id", cartHandler.RemoveFromCart)
	cartGroup.Delete("/", cartHandler.ClearCart)

	// Orders (protected)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CheckoutUC)
	orders.Post("/checkout", orderHandler.Checkout)
	orders.Get("/", orderHandler.PurchaseHistory)
}
