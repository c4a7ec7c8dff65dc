package clients

import (
	"context"
	"fmt"
	"net/http"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// CartClient talks to the cart backend, the source of truth for cart
// contents. Every mutation goes through it; no optimistic local state
// survives a refresh unvalidated.
type CartClient struct {
	api apiClient
}

func NewCartClient(baseURL, serviceKey string) *CartClient {
	return &CartClient{api: newAPIClient(baseURL, serviceKey)}
}

func (c *CartClient) Get(ctx context.Context, userID int64) (models.Cart, error) {
	var out models.Cart
	if err := c.api.getJSON(ctx, fmt.Sprintf("/carts/%d", userID), &out); err != nil {
		return models.Cart{}, err
	}
	out.UserID = userID
	return out, nil
}

func (c *CartClient) AddItem(ctx context.Context, userID int64, in models.CartItemInput) (models.CartItem, error) {
	var out models.CartItem
	if err := c.api.doJSON(ctx, http.MethodPost, fmt.Sprintf("/carts/%d/items", userID), in, &out); err != nil {
		return models.CartItem{}, err
	}
	return out, nil
}

func (c *CartClient) RemoveItem(ctx context.Context, userID, itemID int64) error {
	err := c.api.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/carts/%d/items/%d", userID, itemID), nil, nil)
	if domain.IsNotFound(err) {
		return domain.NotFoundError{Resource: "cart item"}
	}
	return err
}

func (c *CartClient) Clear(ctx context.Context, userID int64) error {
	return c.api.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/carts/%d/items", userID), nil, nil)
}
