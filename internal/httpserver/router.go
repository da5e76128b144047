package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/service/cart"
	"tienda-storefront/internal/service/catalog"
	"tienda-storefront/internal/service/order"
	"tienda-storefront/internal/service/session"
	"tienda-storefront/internal/service/wishlist"
)

// Deps carries the stores the handlers project into JSON.
type Deps struct {
	Catalog  *catalog.Store
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Orders   *order.Processor
	Sessions *session.Manager
}

// buildRouter wires the storefront routes.
func buildRouter(logger *log.Logger, remote Pinger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(remote))

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps.Catalog))
		api.GET("/products/:id", productDetailHandler(deps.Catalog))
		api.POST("/products/:id/reviews", addReviewHandler(deps.Catalog, deps.Sessions))
		api.GET("/reviews/mine", myReviewsHandler(deps.Catalog, deps.Sessions))

		api.GET("/cart", getCartHandler(deps.Cart))
		api.POST("/cart/items", addCartItemHandler(deps.Cart, deps.Catalog))
		api.DELETE("/cart/items/:productId", removeCartItemHandler(deps.Cart))

		api.GET("/wishlist", getWishlistHandler(deps.Wishlist))
		api.POST("/wishlist/items", addWishlistItemHandler(deps.Wishlist, deps.Catalog))
		api.DELETE("/wishlist/items/:productId", removeWishlistItemHandler(deps.Wishlist))

		api.POST("/checkout", checkoutHandler(deps.Orders))
		api.GET("/orders", listOrdersHandler(deps.Orders, deps.Sessions))

		api.GET("/session", currentSessionHandler(deps.Sessions))
		api.POST("/auth/login", loginHandler(deps.Sessions))
		api.POST("/auth/register", registerHandler(deps.Sessions))
		api.POST("/auth/google", googleLoginHandler(deps.Sessions))
		api.POST("/auth/phone", phoneLoginHandler(deps.Sessions))
		api.POST("/auth/phone/confirm", phoneConfirmHandler(deps.Sessions))
		api.POST("/auth/logout", logoutHandler(deps.Sessions))
	}

	return router
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRemoteUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
