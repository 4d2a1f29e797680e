package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"warroom/internal/model"
)

type ProductQuery struct {
	Search string
	SKU    string
	Limit  int
	Offset int
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]model.Product, error) {
	query := url.Values{}
	if strings.TrimSpace(q.Search) != "" {
		query.Set("search", strings.TrimSpace(q.Search))
	}
	if strings.TrimSpace(q.SKU) != "" {
		query.Set("sku", strings.TrimSpace(q.SKU))
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Set("offset", strconv.Itoa(q.Offset))
	}

	var products []model.Product
	if err := c.do(ctx, http.MethodGet, "/api/crm/products", query, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (model.Product, error) {
	var product model.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/crm/products/%d", id), nil, nil, &product)
	return product, err
}

func (c *Client) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	if err := in.Validate(); err != nil {
		return model.Product{}, err
	}
	var product model.Product
	err := c.do(ctx, http.MethodPost, "/api/crm/products", nil, in, &product)
	return product, err
}

func (c *Client) UpdateProduct(ctx context.Context, id int, in model.ProductInput) (model.Product, error) {
	if err := in.Validate(); err != nil {
		return model.Product{}, err
	}
	var product model.Product
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/crm/products/%d", id), nil, in, &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/crm/products/%d", id), nil, nil, nil)
}

// ProductSuggestion is the autocomplete row from the search endpoint.
type ProductSuggestion struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	SKU     string `json:"sku,omitempty"`
	Price   string `json:"price,omitempty"`
	Display string `json:"display"`
}

func (c *Client) SearchProducts(ctx context.Context, q string, limit int) ([]ProductSuggestion, error) {
	query := url.Values{}
	query.Set("q", strings.TrimSpace(q))
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var suggestions []ProductSuggestion
	if err := c.do(ctx, http.MethodGet, "/api/crm/products/search", query, nil, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}
