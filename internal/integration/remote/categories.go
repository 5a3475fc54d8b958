package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/expense-tracker/core/internal/application/adapter"
	"github.com/expense-tracker/core/internal/domain/entity"
)

// categoryClient implements the adapter.RemoteCategoryClient interface.
type categoryClient struct {
	client *Client
}

// NewCategoryClient creates a new remote category client.
func NewCategoryClient(client *Client) adapter.RemoteCategoryClient {
	return &categoryClient{
		client: client,
	}
}

// List fetches the full remote category snapshot for the user.
func (c *categoryClient) List(ctx context.Context, userID string) ([]*entity.Category, error) {
	body := struct {
		UserID string `json:"userId"`
	}{UserID: userID}

	var dtos []categoryDTO
	if err := c.client.doJSON(ctx, http.MethodPost, "/api/categories/get", body, &dtos); err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(dtos))
	for i, d := range dtos {
		categories[i] = d.toEntity()
	}
	return categories, nil
}

// Create pushes a whole-record create.
func (c *categoryClient) Create(ctx context.Context, userID string, category *entity.Category) error {
	body := struct {
		UserID   string      `json:"userId"`
		Category categoryDTO `json:"category"`
	}{UserID: userID, Category: categoryToDTO(category)}

	var status statusResponse
	if err := c.client.doJSON(ctx, http.MethodPost, "/api/categories/create", body, &status); err != nil {
		return err
	}
	return statusErr(status)
}

// Update pushes a whole-record update.
func (c *categoryClient) Update(ctx context.Context, userID string, category *entity.Category) error {
	body := struct {
		UserID   string      `json:"userId"`
		Category categoryDTO `json:"category"`
	}{UserID: userID, Category: categoryToDTO(category)}

	var status statusResponse
	path := fmt.Sprintf("/api/categories/%d", category.ID)
	if err := c.client.doJSON(ctx, http.MethodPut, path, body, &status); err != nil {
		return err
	}
	return statusErr(status)
}

// Delete removes the remote record.
func (c *categoryClient) Delete(ctx context.Context, userID string, id int64) error {
	body := struct {
		UserID string `json:"userId"`
	}{UserID: userID}

	var status statusResponse
	path := fmt.Sprintf("/api/categories/%d", id)
	if err := c.client.doJSON(ctx, http.MethodPost, path, body, &status); err != nil {
		return err
	}
	return statusErr(status)
}

// SeedInitial uploads the whole live category set in one call.
func (c *categoryClient) SeedInitial(ctx context.Context, userID string, categories []*entity.Category) error {
	dtos := make([]categoryDTO, len(categories))
	for i, cat := range categories {
		dtos[i] = categoryToDTO(cat)
	}
	body := struct {
		UserID     string        `json:"userId"`
		Categories []categoryDTO `json:"categories"`
	}{UserID: userID, Categories: dtos}

	var status statusResponse
	if err := c.client.doJSON(ctx, http.MethodPost, "/api/categories/initial", body, &status); err != nil {
		return err
	}
	return statusErr(status)
}
