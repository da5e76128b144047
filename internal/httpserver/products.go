package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/service/catalog"
	"tienda-storefront/internal/service/session"
)

// listProductsHandler serves the catalog, optionally filtered by category
// and search term and ordered by the sort selector. Filters compose:
// category narrows first, then the term. The featured selection is the
// storefront's front-page strip and ignores the other parameters.
func listProductsHandler(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n := c.Query("featured"); n != "" {
			limit, err := strconv.Atoi(n)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid featured count"})
				return
			}
			featured := store.Featured(limit)
			c.JSON(http.StatusOK, gin.H{"products": featured, "total": len(featured)})
			return
		}

		category := strings.TrimSpace(c.Query("category"))
		term := strings.TrimSpace(c.Query("q"))
		sortBy := strings.TrimSpace(c.Query("sort"))

		var products []domain.Product
		if category != "" {
			products = store.ByCategory(category)
		} else {
			products = store.Products()
		}
		if term != "" {
			matched := make(map[string]bool)
			for _, p := range store.Search(term) {
				matched[p.ID] = true
			}
			kept := products[:0]
			for _, p := range products {
				if matched[p.ID] {
					kept = append(kept, p)
				}
			}
			products = kept
		}
		if sortBy != "" {
			products = store.SortedBy(products, catalog.SortCriterion(sortBy))
		}

		c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
	}
}

func productDetailHandler(store *catalog.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := store.FindByID(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		reviews := store.ReviewsFor(product.ID)
		c.JSON(http.StatusOK, gin.H{"product": product, "reviews": reviews})
	}
}

func myReviewsHandler(store *catalog.Store, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := sessions.Current()
		if current == nil {
			respondError(c, domain.ErrNotAuthenticated)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": store.ReviewsBy(current.UserID)})
	}
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func addReviewHandler(store *catalog.Store, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		review := domain.Review{
			ProductID: c.Param("id"),
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if current := sessions.Current(); current != nil {
			review.UserID = current.UserID
			review.User = current.Name
		}
		if err := store.AddReview(c.Request.Context(), review); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "review added"})
	}
}
