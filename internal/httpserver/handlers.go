package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"agrimart/internal/domain"
	"agrimart/internal/service/catalog"
	"agrimart/internal/service/order"
	"github.com/gin-gonic/gin"
)

type addLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *handler) listProducts(c *gin.Context) {
	category := domain.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		badRequest(c, "unknown category")
		return
	}
	products := catalog.FilterByCategory(h.catalog.ListProducts(c.Request.Context()), category)
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, h.money.product(p))
	}
	c.JSON(http.StatusOK, gin.H{"products": out, "count": len(out)})
}

func (h *handler) getCart(c *gin.Context) {
	h.renderCart(c, http.StatusOK)
}

func (h *handler) addLine(c *gin.Context) {
	var req addLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "productId required")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if err := h.cart.AddOrIncrement(c.Request.Context(), sessionID(c), req.ProductID, qty); err != nil {
		h.logger.Printf("cart: add session=%s product=%s err=%v", sessionID(c), req.ProductID, err)
		writeError(c, err)
		return
	}
	h.renderCart(c, http.StatusOK)
}

func (h *handler) setQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "quantity required")
		return
	}
	lineID := c.Param("lineId")
	if err := h.cart.SetQuantity(c.Request.Context(), lineID, *req.Quantity); err != nil {
		h.logger.Printf("cart: set quantity line=%s err=%v", lineID, err)
		writeError(c, err)
		return
	}
	h.renderCart(c, http.StatusOK)
}

func (h *handler) removeLine(c *gin.Context) {
	lineID := c.Param("lineId")
	if err := h.cart.RemoveLine(c.Request.Context(), lineID); err != nil {
		h.logger.Printf("cart: remove line=%s err=%v", lineID, err)
		writeError(c, err)
		return
	}
	h.renderCart(c, http.StatusOK)
}

func (h *handler) checkout(c *gin.Context) {
	var in order.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid checkout body")
		return
	}
	ctx := c.Request.Context()
	session := sessionID(c)

	lines, err := h.cart.ListLines(ctx, session)
	if err != nil {
		h.logger.Printf("checkout: list cart session=%s err=%v", session, err)
		writeError(c, err)
		return
	}
	id, err := h.orders.PlaceOrder(ctx, session, lines, in)
	if err != nil {
		h.logger.Printf("checkout: session=%s err=%v", session, err)
		writeError(c, err)
		return
	}
	total := domain.CartTotal(lines)
	c.JSON(http.StatusCreated, gin.H{
		"orderId":      id,
		"total":        total.StringFixed(2),
		"totalDisplay": h.money.format(total),
		"message": fmt.Sprintf("Thank you for your order, %s! Your order has been placed successfully. We'll contact you at %s for confirmation.",
			strings.TrimSpace(in.Name), strings.TrimSpace(in.Email)),
	})
}

func (h *handler) getOrder(c *gin.Context) {
	o, err := h.orders.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.money.order(*o))
}

// renderCart re-reads the session's cart and writes it. A failing read is
// shown as an empty cart.
func (h *handler) renderCart(c *gin.Context, status int) {
	session := sessionID(c)
	lines, err := h.cart.ListLines(c.Request.Context(), session)
	if err != nil {
		h.logger.Printf("cart: list session=%s err=%v", session, err)
		lines = nil
	}
	c.JSON(status, h.money.cart(session, lines))
}
