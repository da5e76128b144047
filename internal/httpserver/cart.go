package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/service/cart"
	"tienda-storefront/internal/service/catalog"
)

// Defaults applied when the storefront adds to cart without an explicit
// variant selection.
const (
	defaultSize  = "M"
	defaultColor = "Negro"
)

func getCartHandler(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"items": store.Lines(),
			"total": store.Total(),
		})
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func addCartItemHandler(store *cart.Store, products *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if strings.TrimSpace(req.Size) == "" {
			req.Size = defaultSize
		}
		if strings.TrimSpace(req.Color) == "" {
			req.Color = defaultColor
		}

		product, err := products.FindByID(req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := store.Add(c.Request.Context(), *product, req.Size, req.Color); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": store.Lines(), "total": store.Total()})
	}
}

func removeCartItemHandler(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := domain.LineKey{
			ProductID: c.Param("productId"),
			Size:      c.Query("size"),
			Color:     c.Query("color"),
		}
		if key.Size == "" {
			key.Size = defaultSize
		}
		if key.Color == "" {
			key.Color = defaultColor
		}
		if err := store.Remove(c.Request.Context(), key); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": store.Lines(), "total": store.Total()})
	}
}
