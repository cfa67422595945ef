package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/shopglow/storefront/internal/transport/http/handler"
	"github.com/shopglow/storefront/internal/transport/http/middleware"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	searchHandler *handler.SearchHandler,
	contactHandler *handler.ContactHandler,
	alertHandler *handler.AlertHandler,
	jwtKey []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		sloggin.New(logger),
		middleware.Metrics(),
		middleware.Security(),
	)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.Auth(jwtKey), authHandler.Me)
	}

	r.GET("/featured", catalogHandler.Featured)
	r.GET("/products", catalogHandler.Products)
	r.GET("/products/:id", catalogHandler.ProductByID)
	r.GET("/categories", catalogHandler.Categories)

	r.GET("/search", searchHandler.Search)

	cart := r.Group("/cart", middleware.ClientID(jwtKey))
	{
		cart.GET("", cartHandler.Get)
		cart.DELETE("", cartHandler.Clear)
		cart.POST("/items", cartHandler.AddItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.POST("/items/:id/increase", cartHandler.IncreaseItem)
		cart.POST("/items/:id/decrease", cartHandler.DecreaseItem)
	}

	r.POST("/contact", contactHandler.Send)

	r.GET("/alert", alertHandler.Current)
	r.DELETE("/alert", alertHandler.Dismiss)

	return r
}
