package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/service/order"
	"tienda-storefront/internal/service/session"
)

func checkoutHandler(orders *order.Processor) gin.HandlerFunc {
	return func(c *gin.Context) {
		placed, err := orders.Checkout(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": placed})
	}
}

func listOrdersHandler(orders *order.Processor, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.Current() == nil {
			respondError(c, domain.ErrNotAuthenticated)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders.History()})
	}
}
