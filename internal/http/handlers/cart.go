package handlers

import (
	"net/http"
	"strconv"

	"backend/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GetCart returns the authenticated user's cart with computed totals.
func GetCart(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	svc := cartService(c)
	cart, err := svc.Get(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	totals, err := svc.Totals(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart, "totals": totals})
}

// CartTotals returns subtotal, tax and total for the order review screen.
func CartTotals(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	totals, err := cartService(c).Totals(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totals": totals})
}

func AddCartItem(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	var in models.CartItemInput
	if !BindJSONOrError(c, &in) {
		return
	}
	item, err := cartService(c).AddItem(c.Request.Context(), userID, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func RemoveCartItem(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid item id", err)
		return
	}
	if err := cartService(c).RemoveItem(c.Request.Context(), userID, itemID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}

func ClearCart(c *gin.Context) {
	userID, ok := MustUserID(c)
	if !ok {
		return
	}
	if err := cartService(c).Clear(c.Request.Context(), userID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
