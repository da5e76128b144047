package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/service/catalog"
	"tienda-storefront/internal/service/wishlist"
)

func getWishlistHandler(store *wishlist.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": store.Entries()})
	}
}

type addWishlistItemRequest struct {
	ProductID string `json:"productId"`
}

func addWishlistItemHandler(store *wishlist.Store, products *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addWishlistItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		product, err := products.FindByID(req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		added, err := store.Add(c.Request.Context(), *product)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": store.Entries(), "added": added})
	}
}

func removeWishlistItemHandler(store *wishlist.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Remove(c.Request.Context(), c.Param("productId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": store.Entries()})
	}
}
